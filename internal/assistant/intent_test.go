package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      Intent
	}{
		{"task english", "What should I do today?", IntentTask},
		{"task marker only", "what is my task", IntentKnowledge},
		{"today only", "today is sunny", IntentDefault},
		{"task chinese", "今天做什么", IntentTask},
		{"task chinese marker", "今天的任务", IntentTask},
		{"progress", "Show my progress", IntentProgress},
		{"completed", "what have I completed", IntentProgress},
		{"progress chinese", "查看我的学习进度", IntentProgress},
		{"advice", "How to study more efficiently?", IntentAdvice},
		{"advice chinese", "如何提高学习效率", IntentAdvice},
		{"knowledge", "Explain B+ tree node splitting", IntentKnowledge},
		{"knowledge chinese", "什么是数据结构", IntentKnowledge},
		{"default", "hello there", IntentDefault},
		{"empty", "", IntentDefault},
		{"full width", "ＳＨＯＷ ＭＹ ＰＲＯＧＲＥＳＳ", IntentProgress},
		{"upper case", "WHAT SHOULD I DO TODAY", IntentTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.utterance))
		})
	}
}

// Priority order decides overlaps, never specificity.
func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		utterance string
		want      Intent
	}{
		{"what task should I do today to make progress", IntentTask},
		{"how to track progress", IntentProgress},
		{"how to learn algorithms", IntentAdvice},
		{"suggest an algorithm", IntentAdvice},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.utterance))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "b+ tree", Normalize("  Ｂ＋ Tree "))
	assert.Equal(t, "今天做什么", Normalize("今天做什么"))
}

func TestRuleWithoutGroupsNeverMatches(t *testing.T) {
	assert.False(t, Rule{Intent: IntentAdvice}.Match("anything"))
}

func TestClassifyConcepts(t *testing.T) {
	concepts := []string{"binary search tree", "big o", "时间复杂度", "b tree", "btree"}

	tests := []struct {
		utterance string
		want      Intent
	}{
		{"Tell me about binary search trees", IntentKnowledge},
		{"What's big O notation?", IntentKnowledge},
		{"时间复杂度是什么", IntentKnowledge},
		{"btree vs hash index", IntentKnowledge},
		{"I like the web tree layout", IntentDefault},
		{"how to balance a binary search tree", IntentAdvice},
		{"binary search tree progress", IntentProgress},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.utterance, concepts...))
		})
	}

	assert.Equal(t, IntentDefault, Classify("Tell me about binary search trees"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("a b tree", "b tree"))
	assert.True(t, containsWord("b tree", "b tree"))
	assert.True(t, containsWord("web tree or b tree", "b tree"))
	assert.False(t, containsWord("web tree", "b tree"))
	assert.True(t, containsWord("什么是b+树", "b+树"))
	assert.True(t, containsWord("学习时间复杂度", "时间复杂度"))
	assert.False(t, containsWord("anything", ""))
}
