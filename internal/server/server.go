package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"connectly/internal/config"
	"connectly/internal/handlers"
	"connectly/internal/mailer"
	"connectly/internal/middlewares"
	"connectly/internal/repositories"
	"connectly/internal/routes"
	"connectly/internal/services"
	"connectly/internal/utils"
)

type Server struct {
	cfg  *config.Config
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  *zap.Logger
	http *http.Server
}

// New wires repositories, services and handlers around pool. The pool stays
// owned by the caller.
func New(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *zap.Logger) (*Server, error) {
	s := &Server{cfg: cfg, pool: pool, log: log}

	var denylist services.TokenDenylist = repositories.NoopDenylist{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		// Test Redis connection and fail fast with a clear message
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		s.rdb = rdb
		denylist = repositories.NewRedisRepository(rdb)
	} else {
		log.Warn("REDIS_ADDR not set, logged out tokens stay valid until they expire")
	}

	m, err := mailer.New(cfg.SMTP, log)
	if err != nil {
		return nil, err
	}

	router := s.newRouter(denylist, m)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s, nil
}

func (s *Server) newRouter(denylist services.TokenDenylist, m mailer.Mailer) *gin.Engine {
	// Dependency injection
	userRepo := repositories.NewUserRepository(s.pool)
	refRepo := repositories.NewReferenceRepository(s.pool)
	linkRepo := repositories.NewSkillLinkRepository(s.pool)
	eduRepo := repositories.NewEducationRepository(s.pool)
	expRepo := repositories.NewExperienceRepository(s.pool)
	postRepo := repositories.NewPostRepository(s.pool)
	commentRepo := repositories.NewCommentRepository(s.pool)
	likeRepo := repositories.NewLikeRepository(s.pool)
	jobRepo := repositories.NewJobRepository(s.pool)

	hasher := utils.Argon2Hasher{}
	tokens := utils.NewTokenManager(s.cfg.Auth.AccessTokenSecret, s.cfg.Auth.AccessTokenTTL)
	reconciler := services.NewSkillReconciler(refRepo, linkRepo)

	authService := services.NewAuthService(s.pool, userRepo, hasher, tokens, denylist, s.log)
	userService := services.NewUserService(s.pool, services.UserRepositories{
		Users:      userRepo,
		Education:  eduRepo,
		Experience: expRepo,
		References: refRepo,
		SkillLinks: linkRepo,
		Posts:      postRepo,
		Comments:   commentRepo,
		Likes:      likeRepo,
	}, hasher, authService, s.log)
	educationService := services.NewEducationService(s.pool, eduRepo, refRepo, userRepo, reconciler, s.log)
	experienceService := services.NewExperienceService(s.pool, expRepo, refRepo, reconciler, s.log)
	skillService := services.NewSkillService(refRepo)
	postService := services.NewPostService(s.pool, postRepo, commentRepo, likeRepo, userRepo, s.log)
	commentService := services.NewCommentService(s.pool, commentRepo, postRepo)
	likeService := services.NewLikeService(s.pool, likeRepo, postRepo)
	jobService := services.NewJobService(jobRepo, m, s.cfg.Jobs.ApplyRecipient, s.log)

	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger(s.log), cors.New(corsConfig(s.cfg.CORS)))

	routes.RegisterRoutes(router, routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService, s.log),
		User:       handlers.NewUserHandler(userService, s.log),
		Education:  handlers.NewEducationHandler(educationService, s.log),
		Experience: handlers.NewExperienceHandler(experienceService, s.log),
		Skill:      handlers.NewSkillHandler(skillService, s.log),
		Post:       handlers.NewPostHandler(postService, s.log),
		Comment:    handlers.NewCommentHandler(commentService, s.log),
		Like:       handlers.NewLikeHandler(likeService, s.log),
		Job:        handlers.NewJobHandler(jobService, s.log),
	},
		middlewares.Authenticate(tokens, denylist, s.log),
		middlewares.RequireExistingUser(userRepo, s.pool, s.log),
	)

	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || utils.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
		c.AllowCredentials = true
	}
	return c
}

func (s *Server) Addr() string {
	return s.http.Addr
}

func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the Redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.rdb != nil {
		if cerr := s.rdb.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
