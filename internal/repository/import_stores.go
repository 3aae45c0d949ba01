package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gestionale-sicurezza/internal/importer"
	"gestionale-sicurezza/internal/models"

	"github.com/jmoiron/sqlx"
)

// ImportStores wires the repositories into the import engine's
// collaborator interfaces: one Store per entity type plus the edition
// source used by the registration cross-field checks.
func ImportStores(db *sqlx.DB) (map[importer.EntityType]importer.Store, importer.EditionSource) {
	companies := NewCompanyRepository(db)
	students := NewStudentRepository(db)
	editions := NewEditionRepository(db)
	registrations := NewRegistrationRepository(db)

	stores := map[importer.EntityType]importer.Store{
		importer.EntityCompanies: &companyStore{repo: companies},
		importer.EntityStudents:  &studentStore{repo: students},
		importer.EntityRegistrations: &registrationStore{
			repo:     registrations,
			students: students,
			editions: editions,
		},
	}

	return stores, &editionSource{repo: editions}
}

type companyStore struct {
	repo *CompanyRepository
}

func (s *companyStore) LookupByNaturalKey(ctx context.Context, key string) (*importer.ExistingRecord, error) {
	company, err := s.repo.FindByVATNumber(key)
	if err != nil || company == nil {
		return nil, err
	}
	return &importer.ExistingRecord{ID: company.ID, Label: company.Name}, nil
}

func (s *companyStore) Create(ctx context.Context, row importer.NormalizedRow) (int64, string, error) {
	company := &models.Company{
		Name:       row.String("name"),
		VATNumber:  row.String("vatNumber"),
		FiscalCode: row.String("fiscalCode"),
		Address:    row.String("address"),
		City:       row.String("city"),
		Province:   row.String("province"),
		ZipCode:    row.String("zipCode"),
		Email:      row.String("email"),
		Phone:      row.String("phone"),
	}
	if err := s.repo.Create(company); err != nil {
		return 0, "", err
	}
	return company.ID, company.Name, nil
}

type studentStore struct {
	repo *StudentRepository
}

func (s *studentStore) LookupByNaturalKey(ctx context.Context, key string) (*importer.ExistingRecord, error) {
	student, err := s.repo.FindByFiscalCode(key)
	if err != nil || student == nil {
		return nil, err
	}
	return &importer.ExistingRecord{ID: student.ID, Label: student.FullName()}, nil
}

func (s *studentStore) Create(ctx context.Context, row importer.NormalizedRow) (int64, string, error) {
	student := &models.Student{
		FirstName:  row.String("firstName"),
		LastName:   row.String("lastName"),
		FiscalCode: row.String("fiscalCode"),
		Email:      row.String("email"),
		Phone:      row.String("phone"),
		BirthPlace: row.String("birthPlace"),
	}
	if birthDate := row.String("birthDate"); birthDate != "" {
		if t, err := time.Parse("2006-01-02", birthDate); err == nil {
			student.BirthDate = &t
		}
	}
	if err := s.repo.Create(student); err != nil {
		return 0, "", err
	}
	return student.ID, student.FullName(), nil
}

type registrationStore struct {
	repo     *RegistrationRepository
	students *StudentRepository
	editions *EditionRepository
}

func (s *registrationStore) LookupByNaturalKey(ctx context.Context, key string) (*importer.ExistingRecord, error) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 {
		return nil, nil
	}
	match, err := s.repo.FindByStudentAndEdition(parts[0], parts[1])
	if err != nil || match == nil {
		return nil, err
	}
	return &importer.ExistingRecord{
		ID:    match.ID,
		Label: fmt.Sprintf("%s - %s", match.StudentName, match.EditionCode),
	}, nil
}

func (s *registrationStore) Create(ctx context.Context, row importer.NormalizedRow) (int64, string, error) {
	fiscalCode := row.String("studentFiscalCode")
	editionCode := row.String("editionCode")

	student, err := s.students.FindByFiscalCode(fiscalCode)
	if err != nil {
		return 0, "", err
	}
	if student == nil {
		return 0, "", fmt.Errorf("no student with fiscal code %s", fiscalCode)
	}

	edition, err := s.editions.FindByCode(editionCode)
	if err != nil {
		return 0, "", err
	}
	if edition == nil {
		return 0, "", fmt.Errorf("no edition with code %s", editionCode)
	}

	registration := &models.Registration{
		StudentID: student.ID,
		EditionID: edition.ID,
		Notes:     row.String("notes"),
	}
	if price, ok := row.Int64("price"); ok {
		registration.Price = price
	} else {
		registration.Price = edition.ListPrice
	}
	if regDate := row.String("registrationDate"); regDate != "" {
		if t, err := time.Parse("2006-01-02", regDate); err == nil {
			registration.RegistrationDate = &t
		}
	}

	if err := s.repo.Create(registration); err != nil {
		return 0, "", err
	}
	return registration.ID, fmt.Sprintf("%s - %s", student.FullName(), edition.Code), nil
}

type editionSource struct {
	repo *EditionRepository
}

func (s *editionSource) EditionByCode(ctx context.Context, code string) (*importer.EditionInfo, error) {
	edition, err := s.repo.FindByCode(code)
	if err != nil || edition == nil {
		return nil, err
	}
	info := &importer.EditionInfo{
		ID:        edition.ID,
		Code:      edition.Code,
		Title:     edition.CourseTitle,
		ListPrice: edition.ListPrice,
	}
	if edition.EndDate != nil {
		info.EndDate = edition.EndDate.Format("2006-01-02")
	}
	return info, nil
}
