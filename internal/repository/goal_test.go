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

func newGoal(userID string) *model.LearningGoal {
	now := time.Now().UTC().Truncate(time.Second)
	deadline := now.AddDate(0, 1, 0)
	return &model.LearningGoal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Objective: "Master data structures and algorithms",
		KeyResults: model.KeyResults{
			{Text: "Finish 50 tree problems", Deadline: &deadline, Priority: model.PriorityHigh},
			{Text: "Read two chapters a week", Priority: model.PriorityLow},
		},
		Timeframe: model.Timeframe3Months,
		Category:  model.CategoryTechnical,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestGoalRepositoryRoundTrip(t *testing.T) {
	database := dbtest.New(t)
	repo := NewGoalRepository(database)
	ctx := context.Background()
	userID := dbtest.User(t, database, "alice@example.com")

	goal := newGoal(userID)
	require.NoError(t, repo.Create(ctx, goal))

	got, err := repo.ByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, goal.ID, got.ID)
	assert.Equal(t, goal.Objective, got.Objective)
	require.Len(t, got.KeyResults, 2)
	assert.Equal(t, "Finish 50 tree problems", got.KeyResults[0].Text)
	assert.Equal(t, model.PriorityHigh, got.KeyResults[0].Priority)
	require.NotNil(t, got.KeyResults[0].Deadline)
	assert.True(t, goal.KeyResults[0].Deadline.Equal(*got.KeyResults[0].Deadline))
	assert.Nil(t, got.KeyResults[1].Deadline)
	assert.Nil(t, got.KeyResults[1].Progress)
	assert.Equal(t, model.Timeframe3Months, got.Timeframe)
	assert.Equal(t, model.CategoryTechnical, got.Category)
}

func TestGoalRepositoryOneGoalPerUser(t *testing.T) {
	database := dbtest.New(t)
	repo := NewGoalRepository(database)
	ctx := context.Background()
	userID := dbtest.User(t, database, "bob@example.com")

	require.NoError(t, repo.Create(ctx, newGoal(userID)))
	err := repo.Create(ctx, newGoal(userID))
	assert.ErrorIs(t, err, ErrGoalExists)
}

func TestGoalRepositoryNotFound(t *testing.T) {
	database := dbtest.New(t)
	repo := NewGoalRepository(database)
	ctx := context.Background()
	userID := dbtest.User(t, database, "carol@example.com")

	_, err := repo.ByUser(ctx, userID)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	err = repo.Update(ctx, newGoal(userID))
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalRepositoryUpdateIsScopedToOwner(t *testing.T) {
	database := dbtest.New(t)
	repo := NewGoalRepository(database)
	ctx := context.Background()
	owner := dbtest.User(t, database, "owner@example.com")
	other := dbtest.User(t, database, "other@example.com")

	goal := newGoal(owner)
	require.NoError(t, repo.Create(ctx, goal))

	_, err := repo.ByID(ctx, other, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	hijack := *goal
	hijack.UserID = other
	hijack.Objective = "Something else entirely"
	assert.ErrorIs(t, repo.Update(ctx, &hijack), ErrGoalNotFound)

	progress := 40
	goal.KeyResults[1].Progress = &progress
	goal.Objective = "Master data structures, algorithms and systems"
	require.NoError(t, repo.Update(ctx, goal))

	got, err := repo.ByID(ctx, owner, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.Objective, got.Objective)
	require.NotNil(t, got.KeyResults[1].Progress)
	assert.Equal(t, 40, *got.KeyResults[1].Progress)
}
