package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"connectly/internal/mailer"
	"connectly/internal/models"
	"connectly/internal/repositories"
)

type JobService struct {
	jobRepo   *repositories.JobRepository
	mailer    mailer.Mailer
	recipient string
	log       *zap.Logger
}

func NewJobService(jobRepo *repositories.JobRepository, m mailer.Mailer, recipient string, log *zap.Logger) *JobService {
	return &JobService{jobRepo: jobRepo, mailer: m, recipient: recipient, log: log}
}

type ApplyJobRequest struct {
	Link string `json:"link" binding:"required"`
}

func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Apply mails the applicant's resume link to the hiring recipient. Delivery
// is attempted once.
func (s *JobService) Apply(ctx context.Context, userID uuid.UUID, req ApplyJobRequest) error {
	link := strings.TrimSpace(req.Link)
	if link == "" {
		return validationError("Link is required")
	}
	if err := ValidateLink(link); err != nil {
		return err
	}
	if s.recipient == "" {
		return fmt.Errorf("no job application recipient configured")
	}

	body := fmt.Sprintf("Please find my resume link for the job application: %s", link)
	if err := s.mailer.Send(ctx, s.recipient, "Application for Job", body); err != nil {
		return fmt.Errorf("failed to send resume: %w", err)
	}

	s.log.Info("job application sent", zap.String("user_id", userID.String()))
	return nil
}
