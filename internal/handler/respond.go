package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/components/toast"
)

const toastTarget = "beforeend:#toast-container"

func toastError(w http.ResponseWriter, r *http.Request, message string) {
	ui.RenderOOB(w, r, toast.Error(message), toastTarget)
}

func toastSuccess(w http.ResponseWriter, r *http.Request, message string) {
	ui.RenderOOB(w, r, toast.Success(message), toastTarget)
}

// fail logs err and shows it as a toast. Validation problems are expected
// and only logged at debug level.
func fail(w http.ResponseWriter, r *http.Request, op string, err error, attrs ...any) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		slog.DebugContext(r.Context(), op+" rejected", append(attrs, "field", validationErr.Field, "error", err)...)
	} else {
		slog.ErrorContext(r.Context(), op+" failed", append(attrs, "error", err)...)
	}
	toastError(w, r, service.UserMessage(err))
}

// fieldErrors maps a validation error onto the form field it belongs to.
func fieldErrors(err error) (map[string]string, bool) {
	var validationErr *service.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, false
	}
	return map[string]string{validationErr.Field: validationErr.Message}, true
}

// pageError answers a full page request that could not be served.
func pageError(w http.ResponseWriter, r *http.Request, op string, err error, attrs ...any) {
	slog.ErrorContext(r.Context(), op+" failed", append(attrs, "error", err)...)

	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrNotFound) {
		status = http.StatusNotFound
	}
	http.Error(w, service.UserMessage(err), status)
}
