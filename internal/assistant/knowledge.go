package assistant

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/templui/studyokr/internal/markdown"
)

type Article struct {
	Slug  string
	Title string
	Keys  []string
	Order int
	Body  string
}

// KnowledgeBase answers knowledge questions with canned articles.
type KnowledgeBase struct {
	articles []*Article
}

// LoadKnowledge reads every *.md file in dir. Articles without keys are skipped
// since nothing could ever select them.
func LoadKnowledge(fsys fs.FS, dir string) (*KnowledgeBase, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}

	parser := markdown.NewParser()
	kb := &KnowledgeBase{}
	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		article := parseArticle(parser, strings.TrimSuffix(path.Base(file), ".md"), content)
		if len(article.Keys) == 0 {
			continue
		}
		kb.articles = append(kb.articles, article)
	}

	sort.SliceStable(kb.articles, func(i, j int) bool {
		if kb.articles[i].Order != kb.articles[j].Order {
			return kb.articles[i].Order < kb.articles[j].Order
		}
		return kb.articles[i].Slug < kb.articles[j].Slug
	})

	return kb, nil
}

func parseArticle(parser *markdown.Parser, slug string, content []byte) *Article {
	meta, body := parser.SplitFrontmatter(content)

	article := &Article{
		Slug:  slug,
		Title: slug,
		Body:  strings.TrimSpace(string(body)),
	}

	title, ok := meta["title"].(string)
	if ok {
		article.Title = title
	}

	order, ok := meta["order"].(int)
	if ok {
		article.Order = order
	}

	keys, ok := meta["keys"].([]any)
	if ok {
		for _, key := range keys {
			keyStr, ok := key.(string)
			if ok && strings.TrimSpace(keyStr) != "" {
				article.Keys = append(article.Keys, Normalize(keyStr))
			}
		}
	}

	return article
}

// Lookup returns the first article with a key starting a word of the utterance.
func (kb *KnowledgeBase) Lookup(utterance string) (*Article, bool) {
	if kb == nil {
		return nil, false
	}

	normalized := Normalize(utterance)
	for _, article := range kb.articles {
		if containsAnyWord(normalized, article.Keys) {
			return article, true
		}
	}
	return nil, false
}

func (kb *KnowledgeBase) Articles() []*Article {
	if kb == nil {
		return nil
	}
	return kb.articles
}

// Keys returns every article key in lookup order.
func (kb *KnowledgeBase) Keys() []string {
	if kb == nil {
		return nil
	}
	var keys []string
	for _, article := range kb.articles {
		keys = append(keys, article.Keys...)
	}
	return keys
}
