package repository

import (
	"gestionale-sicurezza/internal/models"

	"github.com/jmoiron/sqlx"
)

type ImportSessionRepository struct {
	db *sqlx.DB
}

func NewImportSessionRepository(db *sqlx.DB) *ImportSessionRepository {
	return &ImportSessionRepository{db: db}
}

func (r *ImportSessionRepository) CreateSession(session *models.ImportSession) error {
	query := `
		INSERT INTO import_sessions
			(session_code, entity_type, mode, filename, file_path, total_rows, imported_rows, skipped_rows, status, result_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	result, err := r.db.Exec(query,
		session.SessionCode,
		session.EntityType,
		session.Mode,
		session.Filename,
		session.FilePath,
		session.TotalRows,
		session.ImportedRows,
		session.SkippedRows,
		session.Status,
		session.ResultJSON,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	session.ID = id
	return nil
}

func (r *ImportSessionRepository) GetSessions(limit, offset int, entityType string) ([]models.ImportSession, int, error) {
	var sessions []models.ImportSession
	var total int

	whereClause := ""
	args := []interface{}{}

	if entityType != "" {
		whereClause = "WHERE entity_type = ?"
		args = append(args, entityType)
	}

	countQuery := "SELECT COUNT(*) FROM import_sessions " + whereClause
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, session_code, entity_type, mode, filename, file_path,
		       total_rows, imported_rows, skipped_rows, status,
		       COALESCE(result_json, '') as result_json,
		       COALESCE(report_path, '') as report_path,
		       created_at, updated_at
		FROM import_sessions ` + whereClause + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	if err := r.db.Select(&sessions, query, args...); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *ImportSessionRepository) GetSessionByID(id int64) (*models.ImportSession, error) {
	var session models.ImportSession
	query := `
		SELECT id, session_code, entity_type, mode, filename, file_path,
		       total_rows, imported_rows, skipped_rows, status,
		       COALESCE(result_json, '') as result_json,
		       COALESCE(report_path, '') as report_path,
		       created_at, updated_at
		FROM import_sessions
		WHERE id = ?`
	if err := r.db.Get(&session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportSessionRepository) UpdateReportPath(id int64, reportPath string) error {
	query := `UPDATE import_sessions SET report_path = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.Exec(query, reportPath, id)
	return err
}
