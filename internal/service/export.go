package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/studyokr/internal/metrics"
	"github.com/templui/studyokr/internal/model"
	"github.com/templui/studyokr/internal/storage"
)

// Archive is a finished export. URL is set when the archive was uploaded,
// otherwise Data holds the document for a direct download.
type Archive struct {
	Filename string
	URL      string
	Data     []byte
}

type ExportService struct {
	goalService  *GoalService
	chatService  *ChatService
	emailService *EmailService
	storage      storage.Storage // nil streams exports directly
	now          func() time.Time
}

func NewExportService(
	goalService *GoalService,
	chatService *ChatService,
	emailService *EmailService,
	store storage.Storage,
) *ExportService {
	return &ExportService{
		goalService:  goalService,
		chatService:  chatService,
		emailService: emailService,
		storage:      store,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Export collects the user's goal and full chat history.
func (s *ExportService) Export(ctx context.Context, user *model.User) (*model.Export, error) {
	goal, err := s.goalService.Goal(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.chatService.History(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*model.ChatSession{}
	}

	return &model.Export{
		ExportedAt: s.now(),
		Email:      user.Email,
		Goal:       goal,
		Sessions:   sessions,
	}, nil
}

// Archive renders the export as JSON and uploads it when storage is configured.
func (s *ExportService) Archive(ctx context.Context, user *model.User) (archive *Archive, err error) {
	destination := "download"
	if s.storage != nil {
		destination = "s3"
	}
	defer func() { metrics.RecordExport(destination, metrics.Status(err)) }()

	export, err := s.Export(ctx, user)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	archive = &Archive{
		Filename: fmt.Sprintf("studyokr-export-%s.json", export.ExportedAt.Format("20060102-150405")),
	}

	if s.storage == nil {
		archive.Data = data
		return archive, nil
	}

	key := fmt.Sprintf("exports/%s/%s", user.ID, archive.Filename)
	err = s.storage.Save(ctx, key, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, transient("upload export", err)
	}

	archive.URL, err = s.storage.PresignedURL(ctx, key)
	if err != nil {
		return nil, transient("sign export link", err)
	}

	err = s.emailService.SendExportReadyEmail(ctx, user.Email, archive.URL)
	if err != nil {
		slog.WarnContext(ctx, "failed to send export email", "error", err, "user_id", user.ID)
	}

	slog.InfoContext(ctx, "export uploaded", "user_id", user.ID, "key", key)
	return archive, nil
}
