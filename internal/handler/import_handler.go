package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gestionale-sicurezza/internal/config"
	"gestionale-sicurezza/internal/importer"
	"gestionale-sicurezza/internal/models"
	"gestionale-sicurezza/internal/repository"
	"gestionale-sicurezza/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TaskImportReport is the asynq task type for background error-report
// generation.
const TaskImportReport = "import:report"

// ImportReportPayload is the task payload for TaskImportReport.
type ImportReportPayload struct {
	SessionID int64 `json:"session_id"`
}

type ImportHandler struct {
	sessionRepo *repository.ImportSessionRepository
	engine      *importer.Importer
	asynqClient *asynq.Client
	cfg         *config.Config
}

func NewImportHandler(
	sessionRepo *repository.ImportSessionRepository,
	engine *importer.Importer,
	asynqClient *asynq.Client,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		sessionRepo: sessionRepo,
		engine:      engine,
		asynqClient: asynqClient,
		cfg:         cfg,
	}
}

// Preview runs a dry-run import: the full pipeline is computed and
// reported, nothing is persisted.
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	return h.runImport(c, importer.ModeDryRun)
}

// Commit runs the import and persists every accepted row.
func (h *ImportHandler) Commit(c *fiber.Ctx) error {
	return h.runImport(c, importer.ModeCommit)
}

func (h *ImportHandler) runImport(c *fiber.Ctx, mode importer.Mode) error {
	entity := importer.EntityType(c.Params("entity"))
	if _, err := importer.Spec(entity); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown entity type", err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	format, err := formatForFilename(file.Filename)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only .xlsx and .csv files are allowed", nil)
	}

	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	// Keep a copy of the upload so a session can be traced back to its
	// source file.
	sessionCode := fmt.Sprintf("IMP-%s", uuid.New().String()[:8])
	if err := os.MkdirAll(h.cfg.UploadPath, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read file", err)
	}

	result, err := h.engine.Run(c.Context(), entity, data, format, mode)
	if err != nil {
		var parseErr *importer.ParseError
		var missingErr *importer.MissingRequiredColumnsError
		if errors.As(err, &parseErr) || errors.As(err, &missingErr) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Import failed", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Import failed", err)
	}

	session := h.buildSession(sessionCode, entity, mode, file.Filename, filePath, result)
	if err := h.sessionRepo.CreateSession(session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record import session", err)
	}

	// Issues are easier to work through in a spreadsheet; render one in
	// the background after a commit.
	if mode == importer.ModeCommit && h.asynqClient != nil &&
		len(result.Errors)+len(result.Warnings)+len(result.Duplicates) > 0 {
		payload, _ := json.Marshal(ImportReportPayload{SessionID: session.ID})
		if _, err := h.asynqClient.Enqueue(asynq.NewTask(TaskImportReport, payload)); err != nil {
			utils.GetLogger().WithError(err).Warn("failed to enqueue import report task")
		}
	}

	return utils.SuccessResponse(c, "Import completed", fiber.Map{
		"session": session,
		"result":  result,
	})
}

func (h *ImportHandler) buildSession(code string, entity importer.EntityType, mode importer.Mode, filename, filePath string, result *importer.ImportResult) *models.ImportSession {
	status := models.ImportStatusPreviewed
	if mode == importer.ModeCommit {
		status = models.ImportStatusCommitted
	}

	resultJSON, _ := json.Marshal(result)

	return &models.ImportSession{
		SessionCode:  code,
		EntityType:   string(entity),
		Mode:         string(mode),
		Filename:     filename,
		FilePath:     filePath,
		TotalRows:    result.TotalRows,
		ImportedRows: result.ImportedCount,
		SkippedRows:  result.SkippedCount,
		Status:       status,
		ResultJSON:   string(resultJSON),
	}
}

func (h *ImportHandler) GetSessions(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	sessions, total, err := h.sessionRepo.GetSessions(params.Limit, offset, c.Query("entity"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sessions", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))

	return utils.SuccessResponse(c, "Sessions retrieved successfully", fiber.Map{
		"sessions":   sessions,
		"pagination": pagination,
	})
}

func (h *ImportHandler) GetSessionDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.sessionRepo.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	var result importer.ImportResult
	if session.ResultJSON != "" {
		_ = json.Unmarshal([]byte(session.ResultJSON), &result)
	}

	return utils.SuccessResponse(c, "Session retrieved successfully", fiber.Map{
		"session": session,
		"result":  result,
	})
}

// DownloadReport serves the error report generated by the worker.
func (h *ImportHandler) DownloadReport(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.sessionRepo.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}
	if session.ReportPath == "" {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Report not yet available", nil)
	}

	reportName := fmt.Sprintf("esito_%s_%s.xlsx", session.SessionCode, time.Now().Format("20060102"))
	return c.Download(session.ReportPath, reportName)
}

// DownloadTemplate serves a pre-filled upload template for an entity type.
func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	entity := importer.EntityType(c.Params("entity"))

	data, err := importer.GenerateTemplate(entity)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown entity type", err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="template_%s.xlsx"`, entity))
	return c.Send(data)
}

func formatForFilename(filename string) (importer.Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return importer.FormatXLSX, nil
	case ".csv", ".txt":
		return importer.FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported file extension")
	}
}
