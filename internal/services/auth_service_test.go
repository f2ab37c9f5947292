package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupCreatesUserWithContact(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	userID, err := e.auth.Signup(ctx, SignupRequest{
		Email:     "a@gmail.com",
		Website:   ptr("https://ada.dev"),
		FirstName: "Ada",
		LastName:  "Lovelace",
		About:     ptr("  analyst  "),
		Password:  testPassword,
	})
	require.NoError(t, err)

	n := e.count(t, `
		SELECT COUNT(*) FROM users u
		JOIN contact_information c ON u.contact_id = c.contact_id
		WHERE u.user_id = $1 AND c.email = $2`, userID, "a@gmail.com")
	assert.Equal(t, 1, n)

	details, err := e.users.GetDetails(ctx, testPG.Pool, userID)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "analyst", *details.About)
	assert.Equal(t, "https://ada.dev", *details.Website)

	user, err := e.users.FindUserByID(ctx, testPG.Pool, userID)
	require.NoError(t, err)
	assert.NotEqual(t, testPassword, user.PasswordHash)
}

func TestSignupTrimsNames(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	userID, err := e.auth.Signup(ctx, SignupRequest{
		Email:     "a@gmail.com",
		FirstName: "  Ada ",
		LastName:  "\tLovelace  ",
		Password:  testPassword,
	})
	require.NoError(t, err)

	details, err := e.users.GetDetails(ctx, testPG.Pool, userID)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "Ada", details.FirstName)
	assert.Equal(t, "Lovelace", details.LastName)
}

func TestSignupDuplicateEmailIsConflict(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.signup(t, "a@gmail.com")

	users, err := e.users.Count(ctx)
	require.NoError(t, err)
	contacts, err := e.users.CountContacts(ctx)
	require.NoError(t, err)

	_, err = e.auth.Signup(ctx, SignupRequest{
		Email:     "a@gmail.com",
		FirstName: "Other",
		LastName:  "Person",
		Password:  "Zyxwvu98",
	})
	assert.ErrorIs(t, err, ErrConflict)

	usersAfter, err := e.users.Count(ctx)
	require.NoError(t, err)
	contactsAfter, err := e.users.CountContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, usersAfter)
	assert.Equal(t, contacts, contactsAfter)
}

func TestSignupValidatesBeforeStorage(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	tests := map[string]SignupRequest{
		"missing names":  {Email: "a@gmail.com", Password: testPassword},
		"non gmail":      {Email: "a@yahoo.com", FirstName: "A", LastName: "B", Password: testPassword},
		"weak password":  {Email: "a@gmail.com", FirstName: "A", LastName: "B", Password: "abc"},
		"missing passwd": {Email: "a@gmail.com", FirstName: "A", LastName: "B"},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := e.auth.Signup(ctx, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	n, err := e.users.CountContacts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoginAndLogout(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	userID := e.signup(t, "a@gmail.com")

	_, err := e.auth.Login(ctx, LoginRequest{Email: "a@gmail.com", Password: "Wrongpass1"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = e.auth.Login(ctx, LoginRequest{Email: "nobody@gmail.com", Password: testPassword})
	assert.ErrorIs(t, err, ErrUnauthorized)

	result, err := e.auth.Login(ctx, LoginRequest{Email: "a@gmail.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, userID, result.User.UserID)
	assert.Equal(t, "a@gmail.com", result.User.Email)

	claims, err := e.tokens.Verify(result.Token)
	require.NoError(t, err)
	session, err := claims.Session()
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)

	require.NoError(t, e.auth.Logout(ctx, session))
	revoked, err := e.denylist.IsBlacklisted(ctx, session.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
