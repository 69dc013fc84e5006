package assistant

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

type Intent string

const (
	IntentTask      Intent = "task_recommendation"
	IntentProgress  Intent = "progress_report"
	IntentAdvice    Intent = "advice"
	IntentKnowledge Intent = "knowledge"
	IntentDefault   Intent = "default"
)

func (i Intent) Label() string {
	switch i {
	case IntentTask:
		return "Task plan"
	case IntentProgress:
		return "Progress"
	case IntentAdvice:
		return "Advice"
	case IntentKnowledge:
		return "Knowledge"
	}
	return "Chat"
}

// Rule matches when the utterance contains at least one marker from every group.
type Rule struct {
	Intent Intent
	Groups [][]string
}

func (r Rule) Match(normalized string) bool {
	if len(r.Groups) == 0 {
		return false
	}
	for _, markers := range r.Groups {
		if !containsAny(normalized, markers) {
			return false
		}
	}
	return true
}

// Rules are evaluated in order and the first match wins.
var Rules = []Rule{
	{
		Intent: IntentTask,
		Groups: [][]string{
			{"today", "今天"},
			{"what to do", "what should i do", "task", "做什么", "任务"},
		},
	},
	{
		Intent: IntentProgress,
		Groups: [][]string{
			{"progress", "completed", "进度", "完成"},
		},
	},
	{
		Intent: IntentAdvice,
		Groups: [][]string{
			{"suggest", "advice", "how to", "how do i", "建议", "如何", "怎么"},
		},
	},
	{
		Intent: IntentKnowledge,
		Groups: [][]string{
			{
				"what is", "explain", "data structure", "algorithm", "complexity",
				"b+ tree", "b-tree", "programming",
				"什么是", "解释", "数据结构", "算法", "b+树", "编程",
			},
		},
	},
}

// Classify returns the intent of the first rule matching the utterance.
// Concepts are extra knowledge markers, usually the knowledge base keys, and
// must start a word when they start with an ASCII letter or digit.
func Classify(utterance string, concepts ...string) Intent {
	normalized := Normalize(utterance)
	for _, rule := range Rules {
		if rule.Match(normalized) {
			return rule.Intent
		}
		if rule.Intent == IntentKnowledge && containsAnyWord(normalized, concepts) {
			return IntentKnowledge
		}
	}
	return IntentDefault
}

// Normalize folds full-width characters and lower-cases the utterance.
func Normalize(s string) string {
	s = width.Fold.String(s)
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if containsWord(s, w) {
			return true
		}
	}
	return false
}

// containsWord reports whether word occurs in s without an ASCII letter or
// digit right before it. "b tree" matches "a b tree" but not "web tree".
func containsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return false
		}
		start := i + j
		if start == 0 || !isWordByte(word[0]) || !isWordByte(s[start-1]) {
			return true
		}
		i = start + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
