package toast

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToast(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Toast(Props{
		Title:       "Error",
		Description: `Could not save "goal" <now>`,
		Variant:     VariantError,
		Icon:        true,
		Dismissible: true,
	}).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, `data-variant="error"`)
	assert.Contains(t, out, "bg-red-50")
	assert.Contains(t, out, "Could not save &#34;goal&#34; &lt;now&gt;")
	assert.Contains(t, out, "data-toast-dismiss")
	assert.NotContains(t, out, "onclick")
}

func TestToastDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Toast(Props{Title: "Saved"}).Render(context.Background(), &buf))

	assert.Contains(t, buf.String(), `data-variant="default"`)
	assert.NotContains(t, buf.String(), "data-toast-dismiss")
}
