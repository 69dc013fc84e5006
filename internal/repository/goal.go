package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/templui/studyokr/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrGoalExists   = errors.New("user already has a goal")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.LearningGoal) error
	ByUser(ctx context.Context, userID string) (*model.LearningGoal, error)
	ByID(ctx context.Context, userID, goalID string) (*model.LearningGoal, error)
	Update(ctx context.Context, goal *model.LearningGoal) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.LearningGoal) error {
	query := `INSERT INTO learning_goals (id, user_id, objective, key_results, timeframe, category, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Objective,
		goal.KeyResults,
		goal.Timeframe,
		goal.Category,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrGoalExists
		}
		return err
	}

	return nil
}

func (r *goalRepository) ByUser(ctx context.Context, userID string) (*model.LearningGoal, error) {
	goal := &model.LearningGoal{}
	query := `SELECT * FROM learning_goals WHERE user_id = $1`

	err := r.db.GetContext(ctx, goal, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) ByID(ctx context.Context, userID, goalID string) (*model.LearningGoal, error) {
	goal := &model.LearningGoal{}
	query := `SELECT * FROM learning_goals WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Update overwrites the goal in place. The row must belong to goal.UserID.
func (r *goalRepository) Update(ctx context.Context, goal *model.LearningGoal) error {
	query := `UPDATE learning_goals
	          SET objective = $1, key_results = $2, timeframe = $3, category = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.ExecContext(ctx, query,
		goal.Objective,
		goal.KeyResults,
		goal.Timeframe,
		goal.Category,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
