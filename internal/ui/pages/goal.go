package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/components/form"
	"github.com/templui/studyokr/internal/ui/layouts"
	"github.com/templui/studyokr/internal/validation"
)

const (
	WizardStepBasics     = 1
	WizardStepKeyResults = 2
	WizardStepReview     = 3
)

var wizardSteps = []string{"Objective", "Key results", "Review"}

// GoalWizard is the state of the three step goal form. All entered values
// travel with every request, so the server keeps no wizard state.
type GoalWizard struct {
	Step   int
	Input  service.GoalInput
	GoalID string // set when editing
	Errors map[string]string
	// Message is a form level error.
	Message string
}

func (g GoalWizard) Editing() bool {
	return g.GoalID != ""
}

func GoalWizardPage(g GoalWizard) templ.Component {
	title := "Create goal"
	if g.Editing() {
		title = "Edit goal"
	}
	return layouts.Base(title, ui.Component(func(ctx context.Context, w *ui.Writer) {
		w.Raw(`<div class="mx-auto max-w-2xl"><h1 class="mb-6 text-2xl font-semibold">`)
		w.Text(title)
		w.Raw(`</h1>`)
		w.Render(ctx, GoalWizardForm(g))
		w.Raw(`</div>`)
	}))
}

// GoalWizardForm is the swappable part of the wizard.
func GoalWizardForm(g GoalWizard) templ.Component {
	if g.Step < WizardStepBasics || g.Step > WizardStepReview {
		g.Step = WizardStepBasics
	}
	if len(g.Input.KeyResults) == 0 {
		g.Input.KeyResults = []service.KeyResultInput{{Priority: string(model.PriorityMedium)}}
	}

	return ui.Component(func(ctx context.Context, w *ui.Writer) {
		submit := templ.Attributes{"hx-post": "/app/goal", "hx-disabled-elt": "this"}
		if g.Editing() {
			submit = templ.Attributes{"hx-put": "/app/goal/" + g.GoalID, "hx-disabled-elt": "this"}
		}

		w.Raw(`<form id="goal-wizard" class="rounded-lg border border-gray-200 bg-white p-6" hx-post="/app/goal/wizard" hx-target="#goal-wizard" hx-swap="outerHTML">`)
		w.Rawf(`<input type="hidden" name="step" value="%d"/>`, g.Step)
		if g.Editing() {
			w.Rawf(`<input type="hidden" name="goal_id" value="%s"/>`, ui.Esc(g.GoalID))
		}

		stepper(w, g.Step)
		w.Render(ctx, form.Alert(g.Message))

		switch g.Step {
		case WizardStepBasics:
			basicsStep(ctx, w, g)
			hiddenKeyResults(w, g.Input.KeyResults)
		case WizardStepKeyResults:
			hiddenBasics(w, g.Input)
			keyResultsStep(ctx, w, g)
		case WizardStepReview:
			hiddenBasics(w, g.Input)
			hiddenKeyResults(w, g.Input.KeyResults)
			reviewStep(w, g.Input)
		}

		w.Raw(`<div class="mt-6 flex justify-between border-t border-gray-100 pt-4">`)
		if g.Step > WizardStepBasics {
			w.Render(ctx, form.Button(form.ButtonProps{Label: "Back", Variant: form.ButtonSecondary, Attributes: action("back")}))
		} else {
			w.Raw(`<a href="/app/dashboard" class="px-4 py-2 text-sm text-gray-600 hover:text-gray-900">Cancel</a>`)
		}
		if g.Step < WizardStepReview {
			w.Render(ctx, form.Button(form.ButtonProps{Label: "Next", Attributes: action("next")}))
		} else {
			label := "Create goal"
			if g.Editing() {
				label = "Save goal"
			}
			w.Render(ctx, form.Button(form.ButtonProps{Label: label, Attributes: submit}))
		}
		w.Raw(`</div></form>`)
	})
}

func stepper(w *ui.Writer, current int) {
	w.Raw(`<ol class="mb-6 flex gap-4 text-sm">`)
	for i, name := range wizardSteps {
		step := i + 1
		class := "text-gray-400"
		switch {
		case step == current:
			class = "font-semibold text-indigo-600"
		case step < current:
			class = "text-gray-700"
		}
		w.Rawf(`<li class="%s">%d. `, class, step)
		w.Text(name)
		w.Raw(`</li>`)
	}
	w.Raw(`</ol>`)
}

func basicsStep(ctx context.Context, w *ui.Writer, g GoalWizard) {
	w.Render(ctx, form.Textarea(form.InputProps{
		Name:        "objective",
		Label:       "Objective",
		Value:       g.Input.Objective,
		Placeholder: "Master data structures and algorithms for technical interviews",
		Error:       g.Errors["objective"],
		MaxLength:   validation.MaxObjectiveLength,
		Required:    true,
	}))

	timeframes := []form.Option{{Value: "", Label: "Not set"}}
	for _, t := range model.Timeframes {
		timeframes = append(timeframes, form.Option{Value: string(t), Label: t.Label()})
	}
	w.Render(ctx, form.Select(form.InputProps{Name: "timeframe", Label: "Timeframe", Value: g.Input.Timeframe, Error: g.Errors["timeframe"]}, timeframes))

	categories := []form.Option{{Value: "", Label: "Not set"}}
	for _, c := range model.Categories {
		categories = append(categories, form.Option{Value: string(c), Label: c.Label()})
	}
	w.Render(ctx, form.Select(form.InputProps{Name: "category", Label: "Category", Value: g.Input.Category, Error: g.Errors["category"]}, categories))
}

func keyResultsStep(ctx context.Context, w *ui.Writer, g GoalWizard) {
	priorities := []form.Option{
		{Value: string(model.PriorityHigh), Label: "High"},
		{Value: string(model.PriorityMedium), Label: "Medium"},
		{Value: string(model.PriorityLow), Label: "Low"},
	}

	if msg := g.Errors["key_results"]; msg != "" {
		w.Render(ctx, form.Alert(msg))
	}

	for i, kr := range g.Input.KeyResults {
		field := fmt.Sprintf("key_results.%d", i)
		w.Raw(`<fieldset class="mb-4 rounded-md border border-gray-200 p-4">`)
		w.Raw(`<div class="mb-2 flex items-center justify-between">`)
		w.Rawf(`<legend class="text-sm font-medium">Key result %d</legend>`, i+1)
		if len(g.Input.KeyResults) > model.MinKeyResults {
			w.Render(ctx, form.Button(form.ButtonProps{
				Label:      "Remove",
				Variant:    form.ButtonGhost,
				Class:      "px-2 py-1 text-xs",
				Attributes: action(fmt.Sprintf("remove:%d", i)),
			}))
		}
		w.Raw(`</div>`)
		w.Render(ctx, form.Input(form.InputProps{
			ID:          fmt.Sprintf("kr-text-%d", i),
			Name:        "kr_text",
			Label:       "Result",
			Value:       kr.Text,
			Placeholder: "Finish 50 LeetCode medium problems",
			Error:       g.Errors[field+".text"],
			MaxLength:   validation.MaxKeyResultLength,
		}))
		w.Raw(`<div class="grid grid-cols-2 gap-4">`)
		w.Render(ctx, form.Input(form.InputProps{
			ID:    fmt.Sprintf("kr-deadline-%d", i),
			Name:  "kr_deadline",
			Label: "Deadline",
			Type:  "date",
			Value: kr.Deadline,
			Error: g.Errors[field+".deadline"],
		}))
		w.Render(ctx, form.Select(form.InputProps{
			ID:    fmt.Sprintf("kr-priority-%d", i),
			Name:  "kr_priority",
			Label: "Priority",
			Value: kr.Priority,
			Error: g.Errors[field+".priority"],
		}, priorities))
		w.Raw(`</div></fieldset>`)
	}

	if len(g.Input.KeyResults) < model.MaxKeyResults {
		w.Render(ctx, form.Button(form.ButtonProps{Label: "+ Add key result", Variant: form.ButtonSecondary, Attributes: action("add")}))
	}
}

func reviewStep(w *ui.Writer, in service.GoalInput) {
	w.Raw(`<dl class="space-y-4 text-sm">`)
	w.Raw(`<div><dt class="text-gray-500">Objective</dt><dd class="mt-1 font-medium">`)
	w.Text(in.Objective)
	w.Raw(`</dd></div>`)
	w.Raw(`<div><dt class="text-gray-500">Timeframe · Category</dt><dd class="mt-1">`)
	w.Text(model.Timeframe(in.Timeframe).Label() + " · " + model.Category(in.Category).Label())
	w.Raw(`</dd></div>`)
	w.Raw(`<div><dt class="text-gray-500">Key results</dt><dd class="mt-1"><ol class="list-decimal space-y-1 pl-5">`)
	for _, kr := range in.KeyResults {
		w.Raw(`<li>`)
		w.Text(kr.Text)
		details := []string{"priority " + kr.Priority}
		if kr.Deadline != "" {
			details = append(details, "due "+kr.Deadline)
		}
		w.Raw(` <span class="text-gray-500">(`)
		w.Text(strings.Join(details, ", "))
		w.Raw(`)</span></li>`)
	}
	w.Raw(`</ol></dd></div></dl>`)
}

func hiddenBasics(w *ui.Writer, in service.GoalInput) {
	hidden(w, "objective", in.Objective)
	hidden(w, "timeframe", in.Timeframe)
	hidden(w, "category", in.Category)
}

func hiddenKeyResults(w *ui.Writer, krs []service.KeyResultInput) {
	for _, kr := range krs {
		hidden(w, "kr_text", kr.Text)
		hidden(w, "kr_deadline", kr.Deadline)
		hidden(w, "kr_priority", kr.Priority)
	}
}

// action names the wizard button that submitted the form.
func action(value string) templ.Attributes {
	return templ.Attributes{"name": "action", "value": value}
}

func hidden(w *ui.Writer, name, value string) {
	w.Rawf(`<input type="hidden" name="%s" value="%s"/>`, ui.Esc(name), ui.Esc(value))
}
