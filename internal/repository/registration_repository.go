package repository

import (
	"database/sql"
	"errors"

	"gestionale-sicurezza/internal/models"

	"github.com/jmoiron/sqlx"
)

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// RegistrationMatch is the natural-key lookup projection: the
// registration plus enough context to build a display label.
type RegistrationMatch struct {
	ID          int64  `db:"id"`
	StudentName string `db:"student_name"`
	EditionCode string `db:"edition_code"`
}

// FindByStudentAndEdition resolves a registration through the student
// fiscal code and edition code that form its natural key. Returns nil
// without error when no registration matches.
func (r *RegistrationRepository) FindByStudentAndEdition(fiscalCode, editionCode string) (*RegistrationMatch, error) {
	var match RegistrationMatch
	query := `
		SELECT reg.id,
		       CONCAT(s.first_name, ' ', s.last_name) as student_name,
		       e.code as edition_code
		FROM registrations reg
		JOIN students s ON s.id = reg.student_id
		JOIN course_editions e ON e.id = reg.edition_id
		WHERE s.fiscal_code = ? AND e.code = ?`
	err := r.db.Get(&match, query, fiscalCode, editionCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *RegistrationRepository) Create(registration *models.Registration) error {
	query := `
		INSERT INTO registrations (student_id, edition_id, registration_date, price, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())`
	result, err := r.db.Exec(query,
		registration.StudentID,
		registration.EditionID,
		registration.RegistrationDate,
		registration.Price,
		registration.Notes,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	registration.ID = id
	return nil
}
