package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectly/internal/models"
)

func TestGetProfileAggregatesEverything(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	_, err := e.education.Create(ctx, userID, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go", "SQL"},
	})
	require.NoError(t, err)
	_, err = e.experience.Create(ctx, userID, CreateExperienceRequest{
		Company: "Acme", Branch: "Berlin", JobRole: "Engineer",
		StartDate: date(t, "2022-01-01"), Skills: models.SkillList{"Go", "Kubernetes"},
	})
	require.NoError(t, err)
	_, err = e.post.Create(ctx, userID, CreatePostRequest{Description: "hello"})
	require.NoError(t, err)

	profile, err := e.user.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "a@gmail.com", profile.User.Email)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, []string{"Go", "SQL"}, profile.Education[0].Skills)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, []string{"Go", "Kubernetes"}, profile.Experience[0].Skills)
	require.Len(t, profile.Posts, 1)

	var names []string
	for _, s := range profile.Skills {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Go", "Kubernetes", "SQL"}, names)
}

func TestGetProfileUnknownUser(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.user.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.user.GetUserDetails(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProfileOfNewUserHasEmptyLists(t *testing.T) {
	e := newTestEnv(t)
	userID := e.signup(t, "a@gmail.com")

	profile, err := e.user.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, profile.Education)
	assert.NotNil(t, profile.Experience)
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Posts)
}

func TestUpdateProfileKeepsUnsuppliedFields(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	_, err := e.user.UpdateProfile(ctx, userID, UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	details, err := e.user.UpdateProfile(ctx, userID, UpdateProfileRequest{About: ptr("Mathematician")})
	require.NoError(t, err)
	assert.Equal(t, "Ada", details.FirstName)
	assert.Equal(t, "Lovelace", details.LastName)
	assert.Equal(t, "Mathematician", *details.About)

	_, err = e.user.UpdateProfile(ctx, uuid.New(), UpdateProfileRequest{About: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	err := e.user.ChangePassword(ctx, userID, ChangePasswordRequest{OldPassword: testPassword, NewPassword: testPassword})
	assert.ErrorIs(t, err, ErrValidation)

	err = e.user.ChangePassword(ctx, userID, ChangePasswordRequest{OldPassword: "Wrongpass1", NewPassword: "Newpass123"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = e.user.ChangePassword(ctx, userID, ChangePasswordRequest{OldPassword: testPassword, NewPassword: "weak"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, e.user.ChangePassword(ctx, userID, ChangePasswordRequest{OldPassword: testPassword, NewPassword: "Newpass123"}))

	_, err = e.auth.Login(ctx, LoginRequest{Email: "a@gmail.com", Password: testPassword})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = e.auth.Login(ctx, LoginRequest{Email: "a@gmail.com", Password: "Newpass123"})
	assert.NoError(t, err)
}

func TestDeleteAccountLeavesNoOrphans(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "alice@gmail.com")
	bob := e.signup(t, "bob@gmail.com")

	_, err := e.education.Create(ctx, alice, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go"},
	})
	require.NoError(t, err)
	_, err = e.experience.Create(ctx, alice, CreateExperienceRequest{
		Company: "Acme", Branch: "Berlin", JobRole: "Engineer",
		StartDate: date(t, "2022-01-01"), Skills: models.SkillList{"SQL"},
	})
	require.NoError(t, err)

	alicePost, err := e.post.Create(ctx, alice, CreatePostRequest{Description: "alice's post"})
	require.NoError(t, err)
	bobPost, err := e.post.Create(ctx, bob, CreatePostRequest{Description: "bob's post"})
	require.NoError(t, err)

	// Bob reacts to Alice's post and Alice reacts to Bob's.
	_, err = e.comment.Add(ctx, bob, AddCommentRequest{PostID: alicePost.ID.String(), Description: "nice"})
	require.NoError(t, err)
	_, err = e.like.Like(ctx, bob, alicePost.ID)
	require.NoError(t, err)
	_, err = e.comment.Add(ctx, alice, AddCommentRequest{PostID: bobPost.ID.String(), Description: "thanks"})
	require.NoError(t, err)
	_, err = e.like.Like(ctx, alice, bobPost.ID)
	require.NoError(t, err)

	session := e.session(t, alice)
	require.NoError(t, e.user.DeleteAccount(ctx, session))

	for _, q := range []string{
		`SELECT COUNT(*) FROM users WHERE user_id = $1`,
		`SELECT COUNT(*) FROM posts WHERE user_id = $1`,
		`SELECT COUNT(*) FROM comments WHERE user_id = $1`,
		`SELECT COUNT(*) FROM likes WHERE user_id = $1`,
		`SELECT COUNT(*) FROM education_details WHERE user_id = $1`,
		`SELECT COUNT(*) FROM experience_details WHERE user_id = $1`,
		`SELECT COUNT(*) FROM user_institutions WHERE user_id = $1`,
	} {
		assert.Zero(t, e.count(t, q, alice), q)
	}
	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, alicePost.ID))
	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, alicePost.ID))
	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM contact_information WHERE email = 'alice@gmail.com'`))
	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM education_skills`))
	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM experience_skills`))

	// Shared reference rows survive, Bob is untouched.
	assert.Equal(t, 2, e.count(t, `SELECT COUNT(*) FROM skills`))
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM institutions`))
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM users WHERE user_id = $1`, bob))
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM posts WHERE post_id = $1`, bobPost.ID))

	revoked, err := e.denylist.IsBlacklisted(ctx, session.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	err = e.user.DeleteAccount(ctx, session)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAccountRollsBackOnFailure(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "alice@gmail.com")
	bob := e.signup(t, "bob@gmail.com")

	_, err := e.education.Create(ctx, alice, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go"},
	})
	require.NoError(t, err)
	post, err := e.post.Create(ctx, alice, CreatePostRequest{Description: "hello"})
	require.NoError(t, err)
	_, err = e.comment.Add(ctx, bob, AddCommentRequest{PostID: post.ID.String(), Description: "hi"})
	require.NoError(t, err)

	// Fail the last statement of the cascade.
	_, err = testPG.Pool.Exec(ctx, `
		CREATE OR REPLACE FUNCTION reject_user_delete() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'user delete rejected';
		END;
		$$ LANGUAGE plpgsql;
		CREATE TRIGGER reject_user_delete BEFORE DELETE ON users
			FOR EACH ROW EXECUTE FUNCTION reject_user_delete();
	`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = testPG.Pool.Exec(context.Background(), `
			DROP TRIGGER IF EXISTS reject_user_delete ON users;
			DROP FUNCTION IF EXISTS reject_user_delete();
		`)
	})

	session := e.session(t, alice)
	err = e.user.DeleteAccount(ctx, session)
	require.Error(t, err)

	for _, q := range []string{
		`SELECT COUNT(*) FROM users WHERE user_id = $1`,
		`SELECT COUNT(*) FROM posts WHERE user_id = $1`,
		`SELECT COUNT(*) FROM education_details WHERE user_id = $1`,
		`SELECT COUNT(*) FROM user_institutions WHERE user_id = $1`,
	} {
		assert.Equal(t, 1, e.count(t, q, alice), q)
	}
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, post.ID))
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM education_skills`))
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM contact_information WHERE email = 'alice@gmail.com'`))

	revoked, err := e.denylist.IsBlacklisted(ctx, session.TokenID)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestDeleteAccountLocksPosts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "alice@gmail.com")
	bob := e.signup(t, "bob@gmail.com")
	post, err := e.post.Create(ctx, alice, CreatePostRequest{Description: "hello"})
	require.NoError(t, err)

	tx, err := testPG.Pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	ids, err := e.posts.LockIDsByUser(ctx, tx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{post.ID}, ids)

	// A comment on a locked post waits for the deleting transaction.
	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = e.comment.Add(waitCtx, bob, AddCommentRequest{PostID: post.ID.String(), Description: "late"})
	assert.Error(t, err)
	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM comments`))

	require.NoError(t, tx.Rollback(ctx))
	_, err = e.comment.Add(ctx, bob, AddCommentRequest{PostID: post.ID.String(), Description: "after"})
	assert.NoError(t, err)
}
