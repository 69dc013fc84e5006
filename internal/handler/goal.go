package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/pages"
)

type GoalHandler struct {
	goalService      *service.GoalService
	dashboardService *service.DashboardService
}

func NewGoalHandler(goalService *service.GoalService, dashboardService *service.DashboardService) *GoalHandler {
	return &GoalHandler{
		goalService:      goalService,
		dashboardService: dashboardService,
	}
}

func (h *GoalHandler) NewGoalPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.Goal(r.Context(), user.ID)
	if err != nil {
		pageError(w, r, "load goal", err, "user_id", user.ID)
		return
	}
	if goal != nil {
		http.Redirect(w, r, "/app/goal/edit", http.StatusSeeOther)
		return
	}

	ui.Render(w, r, pages.GoalWizardPage(pages.GoalWizard{Step: pages.WizardStepBasics}))
}

func (h *GoalHandler) EditGoalPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.Goal(r.Context(), user.ID)
	if err != nil {
		pageError(w, r, "load goal", err, "user_id", user.ID)
		return
	}
	if goal == nil {
		http.Redirect(w, r, "/app/goal/new", http.StatusSeeOther)
		return
	}

	ui.Render(w, r, pages.GoalWizardPage(pages.GoalWizard{
		Step:   pages.WizardStepBasics,
		Input:  service.InputFromGoal(goal),
		GoalID: goal.ID,
	}))
}

// Wizard moves between the steps of the goal form. Each step is validated
// before the user may continue; nothing is stored until the final submit.
func (h *GoalHandler) Wizard(w http.ResponseWriter, r *http.Request) {
	wizard := pages.GoalWizard{
		Input:  goalInputFromForm(r),
		GoalID: r.FormValue("goal_id"),
	}
	wizard.Step, _ = strconv.Atoi(r.FormValue("step"))

	action := r.FormValue("action")
	switch {
	case action == "back":
		wizard.Step--
	case action == "add":
		if len(wizard.Input.KeyResults) < model.MaxKeyResults {
			wizard.Input.KeyResults = append(wizard.Input.KeyResults, service.KeyResultInput{Priority: string(model.PriorityMedium)})
		}
	case strings.HasPrefix(action, "remove:"):
		i, err := strconv.Atoi(strings.TrimPrefix(action, "remove:"))
		krs := wizard.Input.KeyResults
		if err == nil && i >= 0 && i < len(krs) && len(krs) > model.MinKeyResults {
			wizard.Input.KeyResults = append(krs[:i], krs[i+1:]...)
		}
	default:
		err := wizard.Input.ValidateStep(wizard.Step)
		if errs, ok := fieldErrors(err); ok {
			wizard.Errors = errs
		} else {
			wizard.Step++
		}
	}

	ui.Render(w, r, pages.GoalWizardForm(wizard))
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	input := goalInputFromForm(r)

	_, err := h.goalService.Create(r.Context(), user.ID, input)
	if err != nil {
		h.renderSaveError(w, r, pages.GoalWizard{Input: input}, err)
		return
	}

	ui.Redirect(w, r, "/app/dashboard")
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")
	input := goalInputFromForm(r)

	_, err := h.goalService.Update(r.Context(), user.ID, goalID, input)
	if err != nil {
		h.renderSaveError(w, r, pages.GoalWizard{Input: input, GoalID: goalID}, err)
		return
	}

	ui.Redirect(w, r, "/app/dashboard")
}

// UpdateProgress stores the progress of one key result and re-renders the
// dashboard.
func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "Invalid key result", http.StatusBadRequest)
		return
	}

	percent, err := strconv.Atoi(strings.TrimSpace(r.FormValue("progress")))
	if err != nil {
		toastError(w, r, "Progress must be a whole number between 0 and 100")
		return
	}

	_, err = h.goalService.UpdateProgress(r.Context(), user.ID, goalID, index, percent)
	if err != nil {
		fail(w, r, "update progress", err, "user_id", user.ID, "goal_id", goalID, "index", index)
		return
	}

	overview, err := h.dashboardService.Overview(r.Context(), user.ID)
	if err != nil {
		fail(w, r, "reload dashboard", err, "user_id", user.ID)
		return
	}

	toastSuccess(w, r, "Progress saved")
	ui.Render(w, r, pages.DashboardContent(overview))
}

// renderSaveError sends the wizard back to the step holding the invalid
// field. Other failures keep the form as it is and show a toast.
func (h *GoalHandler) renderSaveError(w http.ResponseWriter, r *http.Request, wizard pages.GoalWizard, err error) {
	errs, ok := fieldErrors(err)
	if !ok {
		if errors.Is(err, service.ErrGoalExists) {
			ui.Redirect(w, r, "/app/goal/edit")
			return
		}
		w.Header().Set("HX-Reswap", "none")
		fail(w, r, "save goal", err)
		return
	}

	wizard.Errors = errs
	wizard.Step = pages.WizardStepBasics
	for field := range errs {
		if strings.HasPrefix(field, "key_results") {
			wizard.Step = pages.WizardStepKeyResults
		}
	}

	ui.Render(w, r, pages.GoalWizardForm(wizard))
}

// goalInputFromForm reads the wizard fields. Key results arrive as parallel
// kr_text, kr_deadline and kr_priority lists.
func goalInputFromForm(r *http.Request) service.GoalInput {
	_ = r.ParseForm()

	input := service.GoalInput{
		Objective: r.PostForm.Get("objective"),
		Timeframe: r.PostForm.Get("timeframe"),
		Category:  r.PostForm.Get("category"),
	}

	texts := r.PostForm["kr_text"]
	deadlines := r.PostForm["kr_deadline"]
	priorities := r.PostForm["kr_priority"]
	for i, text := range texts {
		kr := service.KeyResultInput{Text: text}
		if i < len(deadlines) {
			kr.Deadline = deadlines[i]
		}
		if i < len(priorities) {
			kr.Priority = priorities[i]
		}
		input.KeyResults = append(input.KeyResults, kr)
	}

	return input
}
