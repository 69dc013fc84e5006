package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

type Parser struct {
	md goldmark.Markdown
}

// NewParser never enables unsafe HTML: chat content is user supplied.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render converts a chat message to HTML.
func (p *Parser) Render(source string) (string, error) {
	html, err := p.Parse([]byte(source))
	if err != nil {
		return "", err
	}
	return string(html), nil
}

func (p *Parser) ExtractFrontmatter(source []byte) map[string]any {
	context := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(source), parser.WithContext(context))

	data := frontmatter.Get(context)
	if data == nil {
		return make(map[string]any)
	}

	var meta map[string]any
	err := data.Decode(&meta)
	if err != nil {
		return make(map[string]any)
	}
	return meta
}

// SplitFrontmatter returns the front matter and the markdown body that follows it.
func (p *Parser) SplitFrontmatter(source []byte) (map[string]any, []byte) {
	meta := p.ExtractFrontmatter(source)
	return meta, stripFrontmatter(source)
}

func stripFrontmatter(source []byte) []byte {
	const fence = "---"

	rest, ok := bytes.CutPrefix(source, []byte(fence+"\n"))
	if !ok {
		rest, ok = bytes.CutPrefix(source, []byte(fence+"\r\n"))
	}
	if !ok {
		return source
	}

	for len(rest) > 0 {
		line, tail, _ := bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimRight(line, "\r")) == fence {
			return bytes.TrimLeft(tail, "\r\n")
		}
		rest = tail
	}
	return source
}
