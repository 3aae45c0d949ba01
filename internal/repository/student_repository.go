package repository

import (
	"database/sql"
	"errors"

	"gestionale-sicurezza/internal/models"

	"github.com/jmoiron/sqlx"
)

type StudentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByFiscalCode returns nil without error when no student matches.
func (r *StudentRepository) FindByFiscalCode(fiscalCode string) (*models.Student, error) {
	var student models.Student
	query := `
		SELECT id, first_name, last_name, fiscal_code,
		       COALESCE(email, '') as email,
		       COALESCE(phone, '') as phone,
		       birth_date,
		       COALESCE(birth_place, '') as birth_place,
		       created_at, updated_at
		FROM students
		WHERE fiscal_code = ?`
	err := r.db.Get(&student, query, fiscalCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) Create(student *models.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, fiscal_code, email, phone, birth_date, birth_place, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	result, err := r.db.Exec(query,
		student.FirstName,
		student.LastName,
		student.FiscalCode,
		student.Email,
		student.Phone,
		student.BirthDate,
		student.BirthPlace,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	student.ID = id
	return nil
}
