package handler

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	studyokr "github.com/templui/studyokr"
	"github.com/templui/studyokr/internal/assistant"
	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/db/dbtest"
	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/repository"
	"github.com/templui/studyokr/internal/service"
)

type fixture struct {
	user      *model.User
	users     repository.UserRepository
	auth      *service.AuthService
	goals     *service.GoalService
	chat      *service.ChatService
	dashboard *service.DashboardService
	export    *service.ExportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database := dbtest.New(t)
	users := repository.NewUserRepository(database)
	chatRepo := repository.NewChatRepository(database)

	kb, err := assistant.LoadKnowledge(studyokr.KnowledgeFS, "content/knowledge")
	require.NoError(t, err)
	responder := assistant.NewResponder(kb, rand.New(rand.NewPCG(7, 7)))

	email := service.NewEmailService("", "noreply@example.com", "http://localhost:8090", "StudyOKR", true)
	goals := service.NewGoalService(repository.NewGoalRepository(database))
	chat := service.NewChatService(chatRepo, goals, responder, service.SessionModeConversation)

	userID := dbtest.User(t, database, "learner@example.com")
	user, err := users.ByID(context.Background(), userID)
	require.NoError(t, err)

	return &fixture{
		user:      user,
		users:     users,
		auth:      service.NewAuthService(users, repository.NewTokenRepository(database), email, "test-secret", false, time.Hour, time.Hour),
		goals:     goals,
		chat:      chat,
		dashboard: service.NewDashboardService(goals, chatRepo),
		export:    service.NewExportService(goals, chat, email, nil),
	}
}

func (f *fixture) createGoal(t *testing.T) *model.LearningGoal {
	t.Helper()
	goal, err := f.goals.Create(context.Background(), f.user.ID, service.GoalInput{
		Objective: "Master binary search trees and B+ tree indexing",
		KeyResults: []service.KeyResultInput{
			{Text: "Implement a BST from scratch", Priority: "high"},
			{Text: "Explain B+ tree node splitting", Priority: "low"},
		},
		Timeframe: "3months",
		Category:  "technical",
	})
	require.NoError(t, err)
	return goal
}

// newRequest builds an anonymous request. A non-nil form is sent url-encoded.
func newRequest(method, target string, form url.Values) *http.Request {
	if form == nil {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// request builds a request signed in as the fixture user.
func (f *fixture) request(method, target string, form url.Values) *http.Request {
	req := newRequest(method, target, form)
	return req.WithContext(ctxkeys.WithUser(req.Context(), f.user))
}

func htmx(req *http.Request) *http.Request {
	req.Header.Set("HX-Request", "true")
	return req
}
