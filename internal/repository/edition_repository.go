package repository

import (
	"database/sql"
	"errors"

	"gestionale-sicurezza/internal/models"

	"github.com/jmoiron/sqlx"
)

type EditionRepository struct {
	db *sqlx.DB
}

func NewEditionRepository(db *sqlx.DB) *EditionRepository {
	return &EditionRepository{db: db}
}

// FindByCode returns nil without error when no edition matches.
func (r *EditionRepository) FindByCode(code string) (*models.CourseEdition, error) {
	var edition models.CourseEdition
	query := `
		SELECT id, code,
		       COALESCE(course_title, '') as course_title,
		       list_price, start_date, end_date,
		       created_at, updated_at
		FROM course_editions
		WHERE code = ?`
	err := r.db.Get(&edition, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &edition, nil
}
