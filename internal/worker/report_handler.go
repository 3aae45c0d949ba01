package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gestionale-sicurezza/internal/config"
	"gestionale-sicurezza/internal/handler"
	"gestionale-sicurezza/internal/importer"
	"gestionale-sicurezza/internal/repository"
	"gestionale-sicurezza/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// ReportHandler renders the XLSX error report for a completed import
// session and records where it was written.
type ReportHandler struct {
	sessionRepo *repository.ImportSessionRepository
	redis       *redis.Client
	cfg         *config.Config
}

func NewReportHandler(db *sqlx.DB, redis *redis.Client, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		sessionRepo: repository.NewImportSessionRepository(db),
		redis:       redis,
		cfg:         cfg,
	}
}

func (h *ReportHandler) TaskType() string { return handler.TaskImportReport }

func (h *ReportHandler) Handle(ctx context.Context, task *asynq.Task) error {
	log := utils.GetLogger()

	var payload handler.ImportReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid report payload: %w", err)
	}

	session, err := h.sessionRepo.GetSessionByID(payload.SessionID)
	if err != nil {
		return fmt.Errorf("load session %d: %w", payload.SessionID, err)
	}

	var result importer.ImportResult
	if err := json.Unmarshal([]byte(session.ResultJSON), &result); err != nil {
		return fmt.Errorf("decode result for session %s: %w", session.SessionCode, err)
	}

	spec, err := importer.Spec(importer.EntityType(session.EntityType))
	if err != nil {
		return err
	}

	data, err := importer.GenerateErrorReport(&result, spec.Label)
	if err != nil {
		return fmt.Errorf("render report for session %s: %w", session.SessionCode, err)
	}

	if err := os.MkdirAll(h.cfg.ExportPath, 0o755); err != nil {
		return err
	}
	reportPath := filepath.Join(h.cfg.ExportPath, fmt.Sprintf("esito_%s.xlsx", session.SessionCode))
	if err := os.WriteFile(reportPath, data, 0o644); err != nil {
		return fmt.Errorf("write report for session %s: %w", session.SessionCode, err)
	}

	if err := h.sessionRepo.UpdateReportPath(session.ID, reportPath); err != nil {
		return err
	}

	// Status key lets the UI poll for report readiness without hitting
	// the database.
	if h.redis != nil {
		key := fmt.Sprintf("import:report:%s", session.SessionCode)
		if err := h.redis.Set(ctx, key, "ready", 24*time.Hour).Err(); err != nil {
			log.WithError(err).Warn("failed to set report status key")
		}
	}

	log.WithField("session", session.SessionCode).Info("import report generated")
	return nil
}
