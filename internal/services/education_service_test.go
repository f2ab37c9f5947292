package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectly/internal/database"
	"connectly/internal/models"
	"connectly/internal/repositories"
)

func TestEducationScenario(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	edu, err := e.education.Create(ctx, userID, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, edu.Skills)

	_, err = e.education.Update(ctx, userID, edu.ID, UpdateEducationRequest{Skills: models.SkillList{"Go"}})
	require.NoError(t, err)

	profile, err := e.user.GetProfile(ctx, userID)
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, []string{"Go"}, profile.Education[0].Skills)
	require.Len(t, profile.Skills, 1)
	assert.Equal(t, "Go", profile.Skills[0].Name)
}

func TestEducationCreateRequiresFields(t *testing.T) {
	e := newTestEnv(t)
	userID := e.signup(t, "a@gmail.com")

	_, err := e.education.Create(context.Background(), userID, CreateEducationRequest{Name: "MIT", Branch: "EECS"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM institutions`))
}

func TestEducationPartialUpdateKeepsOtherFields(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	edu, err := e.education.Create(ctx, userID, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", School: ptr("Engineering"),
		StartDate: date(t, "2015-09-01"), EndDate: date(t, "2019-06-01"), Grade: ptr("A"),
	})
	require.NoError(t, err)

	updated, err := e.education.Update(ctx, userID, edu.ID, UpdateEducationRequest{Description: ptr("x")})
	require.NoError(t, err)

	assert.Equal(t, "x", *updated.Description)
	assert.Equal(t, "BS", updated.Degree)
	assert.Equal(t, "Engineering", *updated.School)
	assert.Equal(t, "2015-09-01", updated.StartDate.String())
	assert.Equal(t, "2019-06-01", updated.EndDate.String())
	assert.Equal(t, "A", *updated.Grade)
	assert.Equal(t, edu.InstitutionID, updated.InstitutionID)
}

func TestEducationUpdateMovesInstitution(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	edu, err := e.education.Create(ctx, userID, CreateEducationRequest{Name: "MIT", Branch: "EECS", Degree: "BS"})
	require.NoError(t, err)

	updated, err := e.education.Update(ctx, userID, edu.ID, UpdateEducationRequest{Branch: ptr("Physics")})
	require.NoError(t, err)
	assert.Equal(t, "MIT", updated.InstitutionName)
	assert.Equal(t, "Physics", updated.InstitutionBranch)
	assert.NotEqual(t, edu.InstitutionID, updated.InstitutionID)

	// The old institution row stays, the user link follows the entry.
	assert.Equal(t, 2, e.count(t, `SELECT COUNT(*) FROM institutions`))
	ids, err := e.users.InstitutionIDs(ctx, testPG.Pool, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{updated.InstitutionID}, ids)
}

func TestEducationOwnership(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "alice@gmail.com")
	bob := e.signup(t, "bob@gmail.com")

	edu, err := e.education.Create(ctx, alice, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go"},
	})
	require.NoError(t, err)

	_, err = e.education.Update(ctx, bob, edu.ID, UpdateEducationRequest{Degree: ptr("PhD")})
	assert.ErrorIs(t, err, ErrForbidden)
	err = e.education.Delete(ctx, bob, edu.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = e.education.Update(ctx, alice, uuid.New(), UpdateEducationRequest{Degree: ptr("PhD")})
	assert.ErrorIs(t, err, ErrNotFound)
	err = e.education.Delete(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	// A rejected update changes nothing, skills included.
	list, err := e.education.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "BS", list[0].Degree)
	assert.Equal(t, []string{"Go"}, list[0].Skills)
}

func TestEducationDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	first, err := e.education.Create(ctx, userID, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go"},
	})
	require.NoError(t, err)
	_, err = e.education.Create(ctx, userID, CreateEducationRequest{Name: "MIT", Branch: "EECS", Degree: "MS"})
	require.NoError(t, err)

	require.NoError(t, e.education.Delete(ctx, userID, first.ID))

	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM education_skills WHERE education_id = $1`, first.ID))
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM skills WHERE skill_name = 'Go'`))
	// The second entry still refers to MIT, so the link stays.
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM user_institutions WHERE user_id = $1`, userID))
}

func TestReferenceDeduplication(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "alice@gmail.com")
	bob := e.signup(t, "bob@gmail.com")

	a, err := e.education.Create(ctx, alice, CreateEducationRequest{Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go"}})
	require.NoError(t, err)
	b, err := e.education.Create(ctx, bob, CreateEducationRequest{Name: "MIT", Branch: "EECS", Degree: "MS", Skills: models.SkillList{"Go"}})
	require.NoError(t, err)

	assert.Equal(t, a.InstitutionID, b.InstitutionID)
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM institutions`))
	assert.Equal(t, 1, e.count(t, `SELECT COUNT(*) FROM skills`))
}

func TestReconcileIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	edu, err := e.education.Create(ctx, userID, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Rust"},
	})
	require.NoError(t, err)

	names := models.SkillList{"Go", " SQL ", "Go", "", "go"}
	reconcile := func() []uuid.UUID {
		err := database.WithTx(ctx, testPG.Pool, func(tx pgx.Tx) error {
			return e.reconciler.Reconcile(ctx, tx, repositories.EducationSkills, edu.ID, names)
		})
		require.NoError(t, err)
		ids, err := e.links.SkillIDs(ctx, testPG.Pool, repositories.EducationSkills, edu.ID)
		require.NoError(t, err)
		return ids
	}

	first := reconcile()
	second := reconcile()
	assert.ElementsMatch(t, first, second)
	// "Go" and "go" are different skills.
	assert.Len(t, first, 3)

	got, err := e.education.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Go", "SQL", "go"}, got[0].Skills)
}

func TestReconcileWithNoNamesClearsLinks(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	edu, err := e.education.Create(ctx, userID, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go"},
	})
	require.NoError(t, err)

	updated, err := e.education.Update(ctx, userID, edu.ID, UpdateEducationRequest{})
	require.NoError(t, err)
	assert.Empty(t, updated.Skills)
}
