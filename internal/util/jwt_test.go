package util

import (
	"testing"
	"time"

	"roadmap_learner_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		UUIDBase:    model.UUIDBase{ID: model.GenerateUUID()},
		Email:       "learner@example.com",
		IsSuperuser: true,
	}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.IsSuperuser)
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{UUIDBase: model.UUIDBase{ID: model.GenerateUUID()}}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{UUIDBase: model.UUIDBase{ID: model.GenerateUUID()}}

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}
