package service

import (
	"context"
	"time"

	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/repository"
)

type DashboardService struct {
	goalService *GoalService
	chatRepo    repository.ChatRepository
	now         func() time.Time
}

func NewDashboardService(goalService *GoalService, chatRepo repository.ChatRepository) *DashboardService {
	return &DashboardService{
		goalService: goalService,
		chatRepo:    chatRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Overview derives the dashboard statistics from stored data.
func (s *DashboardService) Overview(ctx context.Context, userID string) (*model.Overview, error) {
	goal, err := s.goalService.Goal(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &model.Overview{Goal: goal}

	overview.MessageCount, err = s.chatRepo.CountMessages(ctx, userID)
	if err != nil {
		return nil, transient("count chat messages", err)
	}

	overview.SessionCount, err = s.chatRepo.CountSessions(ctx, userID)
	if err != nil {
		return nil, transient("count chat sessions", err)
	}

	if goal == nil {
		return overview, nil
	}

	overview.KeyResultCount = len(goal.KeyResults)
	overview.TrackedCount = goal.TrackedCount()
	overview.CompletedCount = goal.CompletedCount()

	sum := 0
	for _, kr := range goal.KeyResults {
		if kr.Tracked() {
			sum += *kr.Progress
		}
	}
	if overview.TrackedCount > 0 {
		overview.AverageProgress = sum / overview.TrackedCount
	}

	// Nearest deadline that is today or later and not yet completed
	today := s.now().Truncate(24 * time.Hour)
	for _, kr := range goal.KeyResults {
		if kr.Deadline == nil || kr.Completed() || kr.Deadline.Before(today) {
			continue
		}
		if overview.NextDeadline == nil || kr.Deadline.Before(*overview.NextDeadline) {
			deadline := *kr.Deadline
			overview.NextDeadline = &deadline
			overview.NextDeadlineText = kr.Text
		}
	}

	return overview, nil
}
