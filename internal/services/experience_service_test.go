package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectly/internal/models"
)

func TestExperienceAcceptsCommaSeparatedSkills(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	var req CreateExperienceRequest
	body := `{"company":"Acme","branch":"Berlin","job_role":"Engineer","start_date":"2022-01-01","skills":"Go, SQL ,Go"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	exp, err := e.experience.Create(ctx, userID, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, exp.Skills)
	assert.Equal(t, "Acme", exp.CompanyName)
}

func TestExperienceRejectsEndBeforeStart(t *testing.T) {
	e := newTestEnv(t)
	userID := e.signup(t, "a@gmail.com")

	_, err := e.experience.Create(context.Background(), userID, CreateExperienceRequest{
		Company: "Acme", Branch: "Berlin", JobRole: "Engineer",
		StartDate: date(t, "2022-01-01"), EndDate: date(t, "2021-01-01"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExperienceUpdateAndDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.signup(t, "alice@gmail.com")
	bob := e.signup(t, "bob@gmail.com")

	exp, err := e.experience.Create(ctx, alice, CreateExperienceRequest{
		Company: "Acme", Branch: "Berlin", JobRole: "Engineer", JobType: ptr("Full-time"),
		StartDate: date(t, "2022-01-01"), Skills: models.SkillList{"Go", "SQL"},
	})
	require.NoError(t, err)

	updated, err := e.experience.Update(ctx, alice, exp.ID, UpdateExperienceRequest{
		Description: ptr("Built things"), Skills: models.SkillList{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineer", updated.JobRole)
	assert.Equal(t, "Full-time", *updated.JobType)
	assert.Equal(t, "2022-01-01", updated.StartDate.String())
	assert.Equal(t, []string{"Go"}, updated.Skills)

	moved, err := e.experience.Update(ctx, alice, exp.ID, UpdateExperienceRequest{Company: ptr("Globex")})
	require.NoError(t, err)
	assert.Equal(t, "Globex", moved.CompanyName)
	assert.Equal(t, "Berlin", moved.CompanyBranch)

	_, err = e.experience.Update(ctx, bob, exp.ID, UpdateExperienceRequest{JobRole: ptr("CEO")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, e.experience.Delete(ctx, bob, exp.ID), ErrForbidden)
	assert.ErrorIs(t, e.experience.Delete(ctx, alice, uuid.New()), ErrNotFound)

	require.NoError(t, e.experience.Delete(ctx, alice, exp.ID))
	list, err := e.experience.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, e.count(t, `SELECT COUNT(*) FROM experience_skills`))
}

func TestSkillsForEntries(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	edu, err := e.education.Create(ctx, userID, CreateEducationRequest{
		Name: "MIT", Branch: "EECS", Degree: "BS", Skills: models.SkillList{"Go", "SQL"},
	})
	require.NoError(t, err)
	exp, err := e.experience.Create(ctx, userID, CreateExperienceRequest{
		Company: "Acme", Branch: "Berlin", JobRole: "Engineer",
		StartDate: date(t, "2022-01-01"), Skills: models.SkillList{"Go", "Docker"},
	})
	require.NoError(t, err)

	_, err = e.skill.ForEntries(ctx, nil, nil)
	assert.ErrorIs(t, err, ErrValidation)

	skills, err := e.skill.ForEntries(ctx, &edu.ID, nil)
	require.NoError(t, err)
	assert.Len(t, skills, 2)

	skills, err = e.skill.ForEntries(ctx, &edu.ID, &exp.ID)
	require.NoError(t, err)
	var names []string
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Docker", "Go", "SQL"}, names)
}
