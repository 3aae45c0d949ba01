package repository

import (
	"database/sql"
	"errors"

	"gestionale-sicurezza/internal/models"

	"github.com/jmoiron/sqlx"
)

type CompanyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindByVATNumber returns nil without error when no company matches.
func (r *CompanyRepository) FindByVATNumber(vat string) (*models.Company, error) {
	var company models.Company
	query := `
		SELECT id, name, vat_number,
		       COALESCE(fiscal_code, '') as fiscal_code,
		       COALESCE(address, '') as address,
		       COALESCE(city, '') as city,
		       COALESCE(province, '') as province,
		       COALESCE(zip_code, '') as zip_code,
		       COALESCE(email, '') as email,
		       COALESCE(phone, '') as phone,
		       created_at, updated_at
		FROM companies
		WHERE vat_number = ?`
	err := r.db.Get(&company, query, vat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Create(company *models.Company) error {
	query := `
		INSERT INTO companies (name, vat_number, fiscal_code, address, city, province, zip_code, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	result, err := r.db.Exec(query,
		company.Name,
		company.VATNumber,
		company.FiscalCode,
		company.Address,
		company.City,
		company.Province,
		company.ZipCode,
		company.Email,
		company.Phone,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	company.ID = id
	return nil
}
