package services

import (
	"context"
	"testing"

	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/isdelr/lexilearn-be/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService() (*UserService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewUserService(st).WithHashCost(bcrypt.MinCost), st
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestUserService()

	id, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stored, err := st.GetIdentityByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.NotEqual(t, "pw", stored.PasswordHash)
	assert.Equal(t, models.DefaultPreferences(), stored.Preferences)

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrConflict)

	other, err := svc.Register(ctx, "bob", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestUserService_Register_InvalidInput(t *testing.T) {
	svc, _ := newTestUserService()
	for _, tc := range []struct{ username, password string }{
		{"", "pw"},
		{"alice", ""},
		{"", ""},
	} {
		_, err := svc.Register(context.Background(), tc.username, tc.password)
		assert.ErrorIs(t, err, ErrInvalidInput, "username=%q password=%q", tc.username, tc.password)
	}
}

func TestUserService_VerifyCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()
	id, err := svc.Register(ctx, "alice", "correct horse")
	require.NoError(t, err)

	got, ok := svc.VerifyCredentials(ctx, "alice", "correct horse")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	wrongID, wrongOK := svc.VerifyCredentials(ctx, "alice", "battery staple")
	unknownID, unknownOK := svc.VerifyCredentials(ctx, "mallory", "correct horse")
	assert.False(t, wrongOK)
	assert.False(t, unknownOK)
	assert.Equal(t, wrongID, unknownID)
	assert.Empty(t, wrongID)
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()
	id, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.Profile{ID: id, Username: "alice", Preferences: models.DefaultPreferences()}, profile)

	_, err = svc.GetProfile(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdatePreferences(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()
	id, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	easy := models.DifficultyEasy
	topics := []string{"reading_strategies"}
	profile, err := svc.UpdatePreferences(ctx, id, models.PreferencesPatch{PreferredTopics: &topics, DifficultyLevel: &easy})
	require.NoError(t, err)
	assert.Equal(t, topics, profile.PreferredTopics)
	assert.Equal(t, models.DifficultyEasy, profile.DifficultyLevel)

	impossible := "impossible"
	profile, err = svc.UpdatePreferences(ctx, id, models.PreferencesPatch{DifficultyLevel: &impossible})
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyEasy, profile.DifficultyLevel)
	assert.Equal(t, topics, profile.PreferredTopics)

	assert.Equal(t, models.DifficultyEasy, svc.Preferences(ctx, id).DifficultyLevel)
	assert.Equal(t, models.DefaultPreferences(), svc.Preferences(ctx, "unknown"))

	_, err = svc.UpdatePreferences(ctx, "unknown", models.PreferencesPatch{DifficultyLevel: &easy})
	assert.ErrorIs(t, err, ErrNotFound)
}
