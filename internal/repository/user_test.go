package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/studyokr/internal/db/dbtest"
	"github.com/templui/studyokr/internal/model"
)

func TestUserRepository(t *testing.T) {
	database := dbtest.New(t)
	repo := NewUserRepository(database)
	ctx := context.Background()

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        "learner@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, user))

	dup := *user
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Create(ctx, &dup), ErrDuplicateEmail)

	got, err := repo.ByEmail(ctx, "learner@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.False(t, got.IsVerified())

	require.NoError(t, repo.MarkVerified(ctx, user.ID, time.Now().UTC()))
	got, err = repo.ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified())

	_, err = repo.ByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTokenRepositoryConsumeOnce(t *testing.T) {
	database := dbtest.New(t)
	repo := NewTokenRepository(database)
	ctx := context.Background()
	userID := dbtest.User(t, database, "learner@example.com")

	token := &model.Token{
		UserID:    userID,
		Type:      model.TokenTypeEmailVerify,
		Token:     "abc123",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, token))

	consumed, err := repo.ConsumeToken(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, userID, consumed.UserID)
	assert.True(t, consumed.IsUsed())

	_, err = repo.ConsumeToken(ctx, "abc123")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRepositoryRejectsExpired(t *testing.T) {
	database := dbtest.New(t)
	repo := NewTokenRepository(database)
	ctx := context.Background()
	userID := dbtest.User(t, database, "learner@example.com")

	require.NoError(t, repo.Create(ctx, &model.Token{
		UserID:    userID,
		Type:      model.TokenTypeEmailVerify,
		Token:     "stale",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	_, err := repo.ConsumeToken(ctx, "stale")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
