package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEscapesRawHTML(t *testing.T) {
	p := NewParser()

	html, err := p.Render("**bold** <script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestSplitFrontmatter(t *testing.T) {
	p := NewParser()
	source := []byte("---\ntitle: B+ tree\nkeys:\n  - b+ tree\n  - b-tree\norder: 1\n---\n\n## Body\n\ntext\n")

	meta, body := p.SplitFrontmatter(source)
	assert.Equal(t, "B+ tree", meta["title"])
	assert.Len(t, meta["keys"], 2)
	assert.Equal(t, "## Body\n\ntext\n", string(body))
}

func TestSplitFrontmatterWithoutFrontmatter(t *testing.T) {
	p := NewParser()
	source := []byte("plain body\n")

	meta, body := p.SplitFrontmatter(source)
	assert.Empty(t, meta)
	assert.Equal(t, "plain body\n", string(body))
}
