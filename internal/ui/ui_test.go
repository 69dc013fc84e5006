package ui

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, fn func(ctx context.Context, w *Writer)) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Component(fn).Render(context.Background(), &buf))
	return buf.String()
}

func TestWriterEscapesText(t *testing.T) {
	out := render(t, func(_ context.Context, w *Writer) {
		w.Raw(`<p title="`)
		w.Raw(Esc(`"quoted"`))
		w.Raw(`">`)
		w.Text(`<script>alert(1)</script>`)
		w.Raw(`</p>`)
	})

	assert.Equal(t, `<p title="&#34;quoted&#34;">&lt;script&gt;alert(1)&lt;/script&gt;</p>`, out)
}

type failingWriter struct{ writes int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("closed")
}

func TestWriterStopsAfterFirstError(t *testing.T) {
	out := &failingWriter{}
	w := NewWriter(out)
	w.Raw("a")
	w.Text("b")
	w.Rawf("%s", "c")

	assert.EqualError(t, w.Err(), "closed")
	assert.Equal(t, 1, out.writes)
}

func TestMarkdownEscapesRawHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("**bold** <img src=x onerror=alert(1)>").Render(context.Background(), &buf))

	assert.Contains(t, buf.String(), "<strong>bold</strong>")
	assert.NotContains(t, buf.String(), "<img")
}

func TestClassMergesConflicts(t *testing.T) {
	assert.Equal(t, "rounded-md px-4", Class("rounded-md px-2", "px-4"))
}

func TestRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	Redirect(rec, httptest.NewRequest(http.MethodGet, "/app", nil), "/auth")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodPost, "/app/chat", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	Redirect(rec, req, "/auth")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get("HX-Redirect"))
	assert.True(t, IsHTMX(req))
}

func TestRenderOOBWrapsComponent(t *testing.T) {
	rec := httptest.NewRecorder()
	c := Component(func(_ context.Context, w *Writer) { w.Raw("<p>hi</p>") })
	RenderOOB(rec, httptest.NewRequest(http.MethodGet, "/", nil), c, "beforeend:#toast-container")

	assert.Equal(t, `<div hx-swap-oob="beforeend:#toast-container"><p>hi</p></div>`, rec.Body.String())
}
