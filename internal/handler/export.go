package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export downloads the user's data, either directly or through a signed
// storage link when object storage is configured.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	archive, err := h.exportService.Archive(r.Context(), user)
	if err != nil {
		pageError(w, r, "export", err, "user_id", user.ID)
		return
	}

	slog.InfoContext(r.Context(), "data exported", "user_id", user.ID, "uploaded", archive.URL != "")

	if archive.URL != "" {
		http.Redirect(w, r, archive.URL, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, archive.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive.Data)))
	_, err = w.Write(archive.Data)
	if err != nil {
		slog.WarnContext(r.Context(), "failed to write export", "error", err, "user_id", user.ID)
	}
}
