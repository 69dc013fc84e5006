package service

import (
	"math/rand/v2"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/templui/studyokr/internal/assistant"
	"github.com/templui/studyokr/internal/db/dbtest"
	"github.com/templui/studyokr/internal/repository"
)

type fixture struct {
	db        *sqlx.DB
	goals     *GoalService
	chat      *ChatService
	dashboard *DashboardService
	email     *EmailService
}

func newFixture(t *testing.T, mode SessionMode) *fixture {
	t.Helper()

	database := dbtest.New(t)
	goals := NewGoalService(repository.NewGoalRepository(database))
	chatRepo := repository.NewChatRepository(database)
	responder := assistant.NewResponder(nil, rand.New(rand.NewPCG(1, 2)))

	return &fixture{
		db:        database,
		goals:     goals,
		chat:      NewChatService(chatRepo, goals, responder, mode),
		dashboard: NewDashboardService(goals, chatRepo),
		email:     NewEmailService("", "noreply@example.com", "http://localhost:8090", "StudyOKR", true),
	}
}

func bstInput() GoalInput {
	return GoalInput{
		Objective: "Master binary search trees and B+ tree indexing this quarter",
		KeyResults: []KeyResultInput{
			{Text: "Implement a BST from scratch", Priority: "high", Deadline: "2030-01-15"},
			{Text: "Explain B+ tree node splitting"},
		},
		Timeframe: "3months",
		Category:  "technical",
	}
}
