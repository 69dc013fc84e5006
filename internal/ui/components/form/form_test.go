package form

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/studyokr/internal/ctxkeys"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func TestInput(t *testing.T) {
	out := render(t, context.Background(), Input(InputProps{
		Name:      "email",
		Label:     "Email",
		Type:      "email",
		Value:     `a"b@example.com`,
		Error:     "email address is required",
		Required:  true,
		MaxLength: 254,
	}))

	assert.Contains(t, out, `<label for="email" class="block text-sm font-medium text-gray-700">Email</label>`)
	assert.Contains(t, out, `id="email" name="email" type="email" value="a&#34;b@example.com"`)
	assert.Contains(t, out, "border-red-400")
	assert.Contains(t, out, `maxlength="254" required>`)
	assert.Contains(t, out, `data-field-error>email address is required</p>`)
}

func TestInputDefaults(t *testing.T) {
	out := render(t, context.Background(), Input(InputProps{Name: "objective"}))

	assert.Contains(t, out, `id="objective" name="objective" type="text" value=""`)
	assert.NotContains(t, out, "<label")
	assert.NotContains(t, out, "required")
	assert.NotContains(t, out, "data-field-error")
}

func TestTextareaEscapesValue(t *testing.T) {
	out := render(t, context.Background(), Textarea(InputProps{Name: "message", Value: "<b>hi</b>"}))

	assert.Contains(t, out, `>&lt;b&gt;hi&lt;/b&gt;</textarea>`)
}

func TestSelectMarksCurrentValue(t *testing.T) {
	out := render(t, context.Background(), Select(InputProps{Name: "timeframe", Value: "3months"}, []Option{
		{Value: "1month", Label: "1 month"},
		{Value: "3months", Label: "3 months"},
	}))

	assert.Contains(t, out, `<option value="1month">1 month</option>`)
	assert.Contains(t, out, `<option value="3months" selected>3 months</option>`)
}

func TestButton(t *testing.T) {
	out := render(t, context.Background(), Button(ButtonProps{
		Label:      "Next",
		Class:      "px-2",
		Attributes: templ.Attributes{"name": "action", "value": "next"},
	}))

	assert.Contains(t, out, `<button type="submit"`)
	assert.Contains(t, out, "bg-indigo-600")
	assert.Contains(t, out, "hover:bg-indigo-700 px-2")
	assert.NotContains(t, out, "px-4")
	assert.Contains(t, out, ` name="action" value="next">Next</button>`)
}

func TestCSRFAndAlert(t *testing.T) {
	ctx := ctxkeys.WithCSRFToken(context.Background(), "token-123")

	assert.Equal(t, `<input type="hidden" name="csrf_token" value="token-123">`, render(t, ctx, CSRF()))
	assert.Empty(t, render(t, ctx, Alert("")))
	assert.Contains(t, render(t, ctx, Alert("Invalid email or password")), `role="alert"`)
}
