package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/studyokr/internal/metrics"
	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/repository"
	"github.com/templui/studyokr/internal/validation"
)

const DeadlineLayout = "2006-01-02"

// GoalInput is the unvalidated form of a learning goal.
type GoalInput struct {
	Objective  string           `json:"objective"`
	KeyResults []KeyResultInput `json:"key_results"`
	Timeframe  string           `json:"timeframe"`
	Category   string           `json:"category"`
}

type KeyResultInput struct {
	Text     string `json:"text"`
	Deadline string `json:"deadline"`
	Priority string `json:"priority"`
}

// InputFromGoal lets the edit form start from the stored goal.
func InputFromGoal(goal *model.LearningGoal) GoalInput {
	input := GoalInput{
		Objective: goal.Objective,
		Timeframe: string(goal.Timeframe),
		Category:  string(goal.Category),
	}
	for _, kr := range goal.KeyResults {
		item := KeyResultInput{Text: kr.Text, Priority: string(kr.Priority)}
		if kr.Deadline != nil {
			item.Deadline = kr.Deadline.Format(DeadlineLayout)
		}
		input.KeyResults = append(input.KeyResults, item)
	}
	return input
}

// Validate checks every field and returns the first problem found.
func (in GoalInput) Validate() error {
	_, _, _, _, err := in.normalize()
	return err
}

// ValidateStep checks only the fields entered on one wizard step.
func (in GoalInput) ValidateStep(step int) error {
	switch step {
	case 1:
		_, _, _, err := in.normalizeBasics()
		return err
	case 2:
		_, err := in.normalizeKeyResults()
		return err
	}
	return in.Validate()
}

func (in GoalInput) normalize() (string, model.Timeframe, model.Category, model.KeyResults, error) {
	objective, timeframe, category, err := in.normalizeBasics()
	if err != nil {
		return "", "", "", nil, err
	}
	keyResults, err := in.normalizeKeyResults()
	if err != nil {
		return "", "", "", nil, err
	}
	return objective, timeframe, category, keyResults, nil
}

func (in GoalInput) normalizeBasics() (string, model.Timeframe, model.Category, error) {
	objective := strings.TrimSpace(in.Objective)
	err := validation.ValidateObjective(objective)
	if err != nil {
		return "", "", "", invalid("objective", err)
	}

	timeframe := model.Timeframe(strings.TrimSpace(in.Timeframe))
	if timeframe != "" && !timeframe.Valid() {
		return "", "", "", &ValidationError{Field: "timeframe", Message: "choose a valid timeframe"}
	}

	category := model.Category(strings.TrimSpace(in.Category))
	if category != "" && !category.Valid() {
		return "", "", "", &ValidationError{Field: "category", Message: "choose a valid category"}
	}

	return objective, timeframe, category, nil
}

func (in GoalInput) normalizeKeyResults() (model.KeyResults, error) {
	err := validation.ValidateKeyResultCount(len(in.KeyResults))
	if err != nil {
		return nil, invalid("key_results", err)
	}

	keyResults := make(model.KeyResults, 0, len(in.KeyResults))
	for i, item := range in.KeyResults {
		field := fmt.Sprintf("key_results.%d", i)

		text := strings.TrimSpace(item.Text)
		err := validation.ValidateKeyResultText(text)
		if err != nil {
			return nil, invalid(field+".text", err)
		}

		priority := model.Priority(strings.TrimSpace(item.Priority))
		if priority == "" {
			priority = model.PriorityMedium
		}
		if !priority.Valid() {
			return nil, &ValidationError{Field: field + ".priority", Message: "priority must be high, medium or low"}
		}

		kr := model.KeyResult{Text: text, Priority: priority}
		if d := strings.TrimSpace(item.Deadline); d != "" {
			deadline, err := time.Parse(DeadlineLayout, d)
			if err != nil {
				return nil, &ValidationError{Field: field + ".deadline", Message: "deadline must be a date (YYYY-MM-DD)"}
			}
			kr.Deadline = &deadline
		}

		keyResults = append(keyResults, kr)
	}

	return keyResults, nil
}

type GoalService struct {
	repo repository.GoalRepository
	now  func() time.Time
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Goal returns the user's goal, or nil when none exists yet.
func (s *GoalService) Goal(ctx context.Context, userID string) (*model.LearningGoal, error) {
	goal, err := s.repo.ByUser(ctx, userID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, transient("load goal", err)
	}
	return goal, nil
}

func (s *GoalService) Create(ctx context.Context, userID string, input GoalInput) (goal *model.LearningGoal, err error) {
	defer func() { metrics.RecordGoalOperation("create", metrics.Status(err)) }()

	objective, timeframe, category, keyResults, err := input.normalize()
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal = &model.LearningGoal{
		ID:         uuid.New().String(),
		UserID:     userID,
		Objective:  objective,
		KeyResults: keyResults,
		Timeframe:  timeframe,
		Category:   category,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.repo.Create(ctx, goal)
	if errors.Is(err, repository.ErrGoalExists) {
		return nil, ErrGoalExists
	}
	if err != nil {
		return nil, transient("create goal", err)
	}

	slog.InfoContext(ctx, "goal created", "user_id", userID, "goal_id", goal.ID, "key_results", len(keyResults))
	return goal, nil
}

// Update replaces the goal's content. Progress already recorded for a key
// result carries over when its text is unchanged.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, input GoalInput) (goal *model.LearningGoal, err error) {
	defer func() { metrics.RecordGoalOperation("update", metrics.Status(err)) }()

	objective, timeframe, category, keyResults, err := input.normalize()
	if err != nil {
		return nil, err
	}

	goal, err = s.owned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	progress := make(map[string]*int, len(goal.KeyResults))
	for _, kr := range goal.KeyResults {
		progress[kr.Text] = kr.Progress
	}
	for i := range keyResults {
		keyResults[i].Progress = progress[keyResults[i].Text]
	}

	goal.Objective = objective
	goal.KeyResults = keyResults
	goal.Timeframe = timeframe
	goal.Category = category
	goal.UpdatedAt = s.now()

	err = s.save(ctx, goal)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "goal updated", "user_id", userID, "goal_id", goal.ID)
	return goal, nil
}

// UpdateProgress records the progress of one key result.
func (s *GoalService) UpdateProgress(ctx context.Context, userID, goalID string, index, percent int) (goal *model.LearningGoal, err error) {
	defer func() { metrics.RecordGoalOperation("progress", metrics.Status(err)) }()

	err = validation.ValidateProgress(percent)
	if err != nil {
		return nil, invalid("progress", err)
	}

	goal, err = s.owned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(goal.KeyResults) {
		return nil, fmt.Errorf("key result %d: %w", index, ErrNotFound)
	}

	goal.KeyResults[index].Progress = &percent
	goal.UpdatedAt = s.now()

	err = s.save(ctx, goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) owned(ctx context.Context, userID, goalID string) (*model.LearningGoal, error) {
	goal, err := s.repo.ByID(ctx, userID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
	}
	if err != nil {
		return nil, transient("load goal", err)
	}
	return goal, nil
}

func (s *GoalService) save(ctx context.Context, goal *model.LearningGoal) error {
	err := s.repo.Update(ctx, goal)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return fmt.Errorf("goal %s: %w", goal.ID, ErrNotFound)
	}
	if err != nil {
		return transient("save goal", err)
	}
	return nil
}
