// Package assistant implements the study assistant: an ordered keyword rule
// table that classifies an utterance and a set of reply templates.
package assistant

import (
	"math/rand/v2"

	"github.com/templui/studyokr/internal/model"
)

// Rand is the randomness source behind difficulty labels, tip selection and
// greetings. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type Metadata struct {
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	TaskCount  int    `json:"task_count,omitempty"`
}

type Reply struct {
	Text     string   `json:"text"`
	Intent   Intent   `json:"intent"`
	Metadata Metadata `json:"metadata"`
}

type Responder struct {
	kb       *KnowledgeBase
	concepts []string
	rand     Rand
}

// NewResponder uses the goroutine-safe global source when r is nil.
// A non-nil r must not be shared between goroutines unless it is safe to.
func NewResponder(kb *KnowledgeBase, r Rand) *Responder {
	if r == nil {
		r = globalRand{}
	}
	return &Responder{kb: kb, concepts: kb.Keys(), rand: r}
}

// Respond classifies the utterance and renders the reply. goal may be nil.
func (r *Responder) Respond(utterance string, goal *model.LearningGoal) Reply {
	intent := Classify(utterance, r.concepts...)

	switch intent {
	case IntentTask:
		if goal == nil {
			return Reply{Text: NoGoalTaskText, Intent: intent}
		}
		return Reply{
			Text:     r.taskPlan(goal),
			Intent:   intent,
			Metadata: Metadata{TaskCount: len(goal.KeyResults)},
		}
	case IntentProgress:
		return Reply{Text: progressReport(goal), Intent: intent}
	case IntentAdvice:
		return Reply{Text: r.advice(utterance, goal), Intent: intent}
	case IntentKnowledge:
		return Reply{
			Text:     r.knowledge(utterance),
			Intent:   intent,
			Metadata: Metadata{Category: "technical", Difficulty: "medium"},
		}
	}

	return Reply{Text: r.greeting(), Intent: IntentDefault}
}

// pick returns n distinct items from pool in draw order.
func pick(r Rand, pool []string, n int) []string {
	items := append([]string(nil), pool...)
	if n > len(items) {
		n = len(items)
	}
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(items)-i)
		items[i], items[j] = items[j], items[i]
	}
	return items[:n]
}
