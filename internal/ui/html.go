package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/markdown"
)

// Writer emits markup and keeps the first write error, so components can
// write a whole page and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Rawf formats trusted markup. Untrusted arguments must go through Esc.
func (w *Writer) Rawf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Text writes escaped text.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

func (w *Writer) Render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func (w *Writer) Err() error {
	return w.err
}

// Component adapts a writer function to templ.Component.
func Component(fn func(ctx context.Context, w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		fn(ctx, w)
		return w.Err()
	})
}

// Esc escapes text for use inside element content or a quoted attribute.
func Esc(s string) string {
	return templ.EscapeString(s)
}

// Class merges Tailwind classes, later classes winning over earlier ones.
func Class(classes ...string) string {
	return twmerge.Merge(strings.Join(classes, " "))
}

var md = markdown.NewParser()

// Markdown renders assistant or user text. Raw HTML in the source is escaped
// by the parser, and rendering failures fall back to plain text.
func Markdown(source string) templ.Component {
	html, err := md.Render(source)
	if err != nil {
		return Component(func(_ context.Context, w *Writer) {
			w.Raw(`<p class="whitespace-pre-wrap">`)
			w.Text(source)
			w.Raw(`</p>`)
		})
	}
	return templ.Raw(html)
}
