package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/studyokr/internal/service"
)

func TestSignup(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.auth)

	t.Run("valid account asks for verification", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Signup(rec, httptest.NewRequest(http.MethodPost, "/auth/signup", nil))
		assert.Contains(t, rec.Body.String(), "email address is required")

		form := url.Values{"email": {"new@example.com"}, "password": {"Study2026"}}
		req := newRequest(http.MethodPost, "/auth/signup", form)
		rec = httptest.NewRecorder()
		h.Signup(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Check your email")
		assert.Contains(t, rec.Body.String(), "new@example.com")
	})

	t.Run("weak password is shown next to the field", func(t *testing.T) {
		form := url.Values{"email": {"weak@example.com"}, "password": {"short"}}
		rec := httptest.NewRecorder()
		h.Signup(rec, newRequest(http.MethodPost, "/auth/signup", form))

		body := rec.Body.String()
		assert.Contains(t, body, "password must be at least 8 characters")
		assert.Contains(t, body, `value="weak@example.com"`)
	})

	t.Run("duplicate email", func(t *testing.T) {
		form := url.Values{"email": {"learner@example.com"}, "password": {"Study2026"}}
		rec := httptest.NewRecorder()
		h.Signup(rec, newRequest(http.MethodPost, "/auth/signup", form))

		assert.Contains(t, rec.Body.String(), service.ErrEmailAlreadyExists.Error())
	})
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.auth)
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, "pending@example.com", "Study2026")
	require.NoError(t, err)

	login := func(email, password string) *httptest.ResponseRecorder {
		form := url.Values{"email": {email}, "password": {password}}
		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(http.MethodPost, "/auth", form))
		return rec
	}

	rec := login("pending@example.com", "Study2026")
	assert.Contains(t, rec.Body.String(), "verify your email")
	assert.Contains(t, rec.Body.String(), `action="/auth/verify/resend"`)

	rec = login("pending@example.com", "Wrong2026")
	assert.Contains(t, rec.Body.String(), "Invalid email or password")

	pending, err := f.users.ByEmail(ctx, "pending@example.com")
	require.NoError(t, err)
	require.NoError(t, f.users.MarkVerified(ctx, pending.ID, time.Now().UTC()))

	rec = login("Pending@Example.com", "Study2026")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/dashboard", rec.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == service.AuthCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	user, err := f.auth.UserFromToken(ctx, session.Value)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, user.ID)
}

func TestVerifyEmailRejectsUnknownToken(t *testing.T) {
	f := newFixture(t)
	h := NewAuthHandler(f.auth)

	req := httptest.NewRequest(http.MethodGet, "/auth/verify/nope", nil)
	req.SetPathValue("token", "nope")
	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or has expired")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	NewAuthHandler(f.auth).Logout(rec, f.request(http.MethodPost, "/auth/logout", url.Values{}))

	assert.Equal(t, "/", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, service.AuthCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}
