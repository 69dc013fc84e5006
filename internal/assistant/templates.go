package assistant

import (
	"fmt"
	"strings"

	"github.com/templui/studyokr/internal/model"
)

const (
	NoGoalTaskText = "You haven't set a learning goal yet. Create one first and I can recommend tasks for every day.\n\n" +
		"Use **Create goal** on the dashboard to get started!"

	NoGoalProgressText = "You haven't set a learning goal yet, so there is no progress to report. " +
		"Create a goal first and track your key results from the dashboard!"

	capabilityMenu = "🤖 **Here is what I can do:**\n" +
		"- 📋 Plan your study tasks: ask \"what should I do today\"\n" +
		"- 📊 Report your progress: ask \"show my progress\"\n" +
		"- 💡 Give study advice: ask \"how to ...\"\n" +
		"- 📚 Answer knowledge questions: just ask\n\n" +
		"What can I help you with?"

	deadlineLayout = "Jan 2, 2006"
)

var difficulties = []string{"beginner", "intermediate", "advanced"}

var tips = []string{
	"Write a clear study plan and split big goals into small tasks",
	"Use the Pomodoro technique: 25 minutes of focus, then a 5 minute break",
	"Keep structured notes and review them on a schedule",
	"Find a study spot with few distractions",
	"Study with classmates or a group and keep each other accountable",
}

var greetings = []string{
	"I understand your question! Let me help you with it.",
	"That's an interesting question, let me think it through with you.",
	"Here are some thoughts based on what you asked.",
	"I'll do my best to help you learn and grow!",
	"Let's explore this together.",
}

// SuggestedDuration maps a key result priority to a daily time budget.
func SuggestedDuration(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "3-4h"
	case model.PriorityMedium:
		return "2-3h"
	case model.PriorityLow:
		return "1-2h"
	}
	return "2-3h"
}

func priorityMarker(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "🔥"
	case model.PriorityLow:
		return "💫"
	}
	return "⚡"
}

func (r *Responder) taskPlan(goal *model.LearningGoal) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🎯 Based on your goal: \"%s\"\n\n", goal.Objective)
	sb.WriteString("📋 **Recommended tasks for today:**\n\n")

	for i, kr := range goal.KeyResults {
		fmt.Fprintf(&sb, "%s **Task %d:** %s\n", priorityMarker(kr.Priority), i+1, kr.Text)
		fmt.Fprintf(&sb, "- ⏱️ Suggested time: %s\n", SuggestedDuration(kr.Priority))
		fmt.Fprintf(&sb, "- 📊 Difficulty: %s\n", difficulties[r.rand.IntN(len(difficulties))])
		if kr.Deadline != nil {
			fmt.Fprintf(&sb, "- 📅 Deadline: %s\n", kr.Deadline.Format(deadlineLayout))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("💡 **Study tips:**\n")
	sb.WriteString("- Work through the tasks in priority order\n")
	sb.WriteString("- Take a 15 minute break after each task\n")
	sb.WriteString("- Ask me whenever you get stuck\n")
	sb.WriteString("- Write down notes and takeaways\n\n")
	sb.WriteString("Want detailed guidance on one of these tasks?")

	return sb.String()
}

// progressReport only reports progress the user recorded. Untracked key
// results are shown as such instead of inventing numbers.
func progressReport(goal *model.LearningGoal) string {
	if goal == nil {
		return NoGoalProgressText
	}

	var sb strings.Builder
	total := len(goal.KeyResults)
	tracked := goal.TrackedCount()

	sb.WriteString("📊 **Progress report**\n\n")
	fmt.Fprintf(&sb, "🎯 Goal: %s\n\n", goal.Objective)

	if tracked == 0 {
		sb.WriteString("📈 **Overall progress: not yet tracked**\n")
	} else {
		fmt.Fprintf(&sb, "📈 **Overall progress: %d%%** (%d of %d key results tracked)\n", averageProgress(goal), tracked, total)
	}
	fmt.Fprintf(&sb, "✅ Completed: %d/%d key results\n\n", goal.CompletedCount(), total)

	sb.WriteString("📋 **Key results:**\n")
	for _, kr := range goal.KeyResults {
		if !kr.Tracked() {
			fmt.Fprintf(&sb, "- ⚪ %s: not yet tracked\n", kr.Text)
			continue
		}
		fmt.Fprintf(&sb, "- %s %s: %d%%\n", progressMarker(*kr.Progress), kr.Text, *kr.Progress)
	}

	if tracked < total {
		sb.WriteString("\nRecord progress on the dashboard to keep this report accurate.")
	} else {
		sb.WriteString("\n💪 Keep it up! Focus today on the key results that are furthest behind.")
	}

	return sb.String()
}

func averageProgress(goal *model.LearningGoal) int {
	sum, n := 0, 0
	for _, kr := range goal.KeyResults {
		if kr.Tracked() {
			sum += *kr.Progress
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

func progressMarker(percent int) string {
	switch {
	case percent > 80:
		return "🟢"
	case percent > 50:
		return "🟡"
	}
	return "🔴"
}

func (r *Responder) advice(question string, goal *model.LearningGoal) string {
	var sb strings.Builder

	sb.WriteString("💡 **Personal study advice:**\n\n")
	if goal != nil {
		fmt.Fprintf(&sb, "For your goal \"%s\":\n\n", goal.Objective)
	}

	for i, tip := range pick(r.rand, tips, 3) {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, tip)
	}

	sb.WriteString("\n🎯 **About your question:**\n")
	fmt.Fprintf(&sb, "You asked \"%s\". I suggest you:\n", strings.TrimSpace(question))
	sb.WriteString("- Break the problem into small steps\n")
	sb.WriteString("- Practice to reinforce the theory\n")
	sb.WriteString("- Look for good learning resources on the topic\n\n")
	sb.WriteString("Would you like me to recommend some resources?")

	return sb.String()
}

func (r *Responder) knowledge(question string) string {
	article, ok := r.kb.Lookup(question)
	if ok {
		return article.Body
	}

	var sb strings.Builder
	sb.WriteString("🧠 **Knowledge answer**\n\n")
	fmt.Fprintf(&sb, "Good question! About \"%s\", I can help you dig into these areas:\n", strings.TrimSpace(question))
	sb.WriteString("- Data structures and algorithms\n")
	sb.WriteString("- Programming language concepts\n")
	sb.WriteString("- Database internals\n")
	sb.WriteString("- Operating systems\n")
	sb.WriteString("- Computer networks\n")
	sb.WriteString("- Software engineering\n\n")
	sb.WriteString("Tell me which topic you want to explore and I'll explain it in detail.\n\n")
	sb.WriteString("💡 **Tip:** combine theory with hands-on coding for the best results.")

	return sb.String()
}

func (r *Responder) greeting() string {
	return greetings[r.rand.IntN(len(greetings))] + "\n\n" + capabilityMenu
}

// Welcome is shown when a conversation opens. It is never persisted.
func Welcome(goal *model.LearningGoal) string {
	if goal == nil {
		return "Hi! I'm your study assistant 🤖\n\n" +
			"You haven't set a learning goal yet, but I can still:\n" +
			"- Answer questions about your subjects\n" +
			"- Give study advice\n" +
			"- Recommend learning resources\n\n" +
			"Create a goal first and I can plan your study days much more precisely!"
	}

	return fmt.Sprintf("Hi! I'm your study assistant 🤖\n\n"+
		"I know your learning goal: \"%s\"\n\n"+
		"I can help you:\n"+
		"- Plan daily study tasks\n"+
		"- Answer subject questions\n"+
		"- Give study advice\n"+
		"- Track your progress\n\n"+
		"Try asking \"what should I do today\" for a personal task plan!", goal.Objective)
}

// Suggestions are quick prompts offered before the first message.
func Suggestions(goal *model.LearningGoal) []string {
	if goal == nil {
		return []string{
			"What is a data structure?",
			"How do I start learning programming?",
			"Suggest a study plan",
			"Explain algorithm complexity",
		}
	}
	return []string{
		"What should I do today?",
		"Show my progress",
		"How to study more efficiently?",
		"Suggest learning resources",
	}
}
