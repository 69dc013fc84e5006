package studyokr

import "embed"

// KnowledgeFS contains the assistant's knowledge base articles.
// Each article lists the phrases that select it in its front matter.
//
//go:embed content/knowledge/*.md
var KnowledgeFS embed.FS
