package importer

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func normalizeAndValidate(t *testing.T, entity EntityType, values map[string]string) []Issue {
	t.Helper()
	spec, err := Spec(entity)
	if err != nil {
		t.Fatal(err)
	}
	m := MappedRow{Number: 1, Values: values}
	row, issues := NormalizeRow(m, spec, false)
	return append(issues, ValidateRow(row, m, spec)...)
}

func TestValidateRowRequired(t *testing.T) {
	issues := normalizeAndValidate(t, EntityStudents, map[string]string{
		"firstName": "Mario",
		"lastName":  "",
	})

	byField := make(map[string]Issue)
	for _, issue := range issues {
		byField[issue.Field] = issue
	}
	if _, ok := byField["lastName"]; !ok {
		t.Error("blank lastName should be an issue")
	}
	if byField["lastName"].Message != "Cognome is required" {
		t.Errorf("message = %q", byField["lastName"].Message)
	}
	if _, ok := byField["fiscalCode"]; !ok {
		t.Error("absent fiscalCode should be an issue")
	}
	if _, ok := byField["firstName"]; ok {
		t.Error("firstName is present, no issue expected")
	}
}

func TestValidateRowFormats(t *testing.T) {
	tests := []struct {
		name      string
		entity    EntityType
		values    map[string]string
		wantField string
	}{
		{
			name:   "bad fiscal code",
			entity: EntityStudents,
			values: map[string]string{
				"firstName": "Mario", "lastName": "Rossi", "fiscalCode": "NOTACODE",
			},
			wantField: "fiscalCode",
		},
		{
			name:   "bad email",
			entity: EntityStudents,
			values: map[string]string{
				"firstName": "Mario", "lastName": "Rossi",
				"fiscalCode": "RSSMRA80A01H501Z", "email": "not-an-email",
			},
			wantField: "email",
		},
		{
			name:   "phone too short",
			entity: EntityStudents,
			values: map[string]string{
				"firstName": "Mario", "lastName": "Rossi",
				"fiscalCode": "RSSMRA80A01H501Z", "phone": "123",
			},
			wantField: "phone",
		},
		{
			name:   "bad vat number",
			entity: EntityCompanies,
			values: map[string]string{
				"name": "Edilizia Rossi Srl", "vatNumber": "123",
			},
			wantField: "vatNumber",
		},
		{
			name:   "negative price",
			entity: EntityRegistrations,
			values: map[string]string{
				"studentFiscalCode": "RSSMRA80A01H501Z",
				"editionCode":       "SIC-2024-01",
				"price":             "-1",
			},
			wantField: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := normalizeAndValidate(t, tt.entity, tt.values)
			found := false
			for _, issue := range issues {
				if issue.Field == tt.wantField && issue.Severity == SeverityError {
					found = true
				}
			}
			if !found {
				t.Errorf("want error on %q, got %+v", tt.wantField, issues)
			}
		})
	}
}

func TestValidateRowClean(t *testing.T) {
	issues := normalizeAndValidate(t, EntityStudents, map[string]string{
		"firstName":  "Mario",
		"lastName":   "Rossi",
		"fiscalCode": "RSSMRA80A01H501Z",
		"email":      "mario.rossi@example.it",
		"phone":      "333 1234567",
		"birthDate":  "01/01/1980",
	})
	if len(issues) != 0 {
		t.Errorf("clean row should have no issues, got %+v", issues)
	}
}

type fakeEditions struct {
	editions map[string]*EditionInfo
	err      error
}

func (f *fakeEditions) EditionByCode(_ context.Context, code string) (*EditionInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.editions[code], nil
}

func TestCrossFieldIssues(t *testing.T) {
	editions := &fakeEditions{editions: map[string]*EditionInfo{
		"SIC-2024-01": {ID: 1, Code: "SIC-2024-01", ListPrice: 15000, EndDate: "2024-03-31"},
	}}
	imp := New(nil, editions, Tolerances{PriceDivergencePct: 10, LateRegistrationDays: 30}, testLogger())
	spec, err := Spec(EntityRegistrations)
	if err != nil {
		t.Fatal(err)
	}

	run := func(values map[string]string) []Issue {
		m := MappedRow{Number: 1, Values: values}
		row, _ := NormalizeRow(m, spec, false)
		return imp.crossFieldIssues(context.Background(), spec, row, m)
	}

	t.Run("unknown edition is an error", func(t *testing.T) {
		issues := run(map[string]string{"editionCode": "MISSING-99"})
		if len(issues) != 1 || issues[0].Severity != SeverityError {
			t.Fatalf("issues = %+v", issues)
		}
	})

	t.Run("price within tolerance passes", func(t *testing.T) {
		issues := run(map[string]string{"editionCode": "SIC-2024-01", "price": "155,00"})
		if len(issues) != 0 {
			t.Fatalf("issues = %+v", issues)
		}
	})

	t.Run("price divergence warns", func(t *testing.T) {
		issues := run(map[string]string{"editionCode": "SIC-2024-01", "price": "200,00"})
		if len(issues) != 1 || issues[0].Severity != SeverityWarning || issues[0].Field != "price" {
			t.Fatalf("issues = %+v", issues)
		}
	})

	t.Run("late registration warns", func(t *testing.T) {
		issues := run(map[string]string{"editionCode": "SIC-2024-01", "registrationDate": "15/06/2024"})
		if len(issues) != 1 || issues[0].Severity != SeverityWarning || issues[0].Field != "registrationDate" {
			t.Fatalf("issues = %+v", issues)
		}
	})

	t.Run("registration within window passes", func(t *testing.T) {
		issues := run(map[string]string{"editionCode": "SIC-2024-01", "registrationDate": "15/04/2024"})
		if len(issues) != 0 {
			t.Fatalf("issues = %+v", issues)
		}
	})

	t.Run("lookup failure is a row error", func(t *testing.T) {
		broken := New(nil, &fakeEditions{err: context.DeadlineExceeded}, Tolerances{}, testLogger())
		m := MappedRow{Number: 1, Values: map[string]string{"editionCode": "SIC-2024-01"}}
		row, _ := NormalizeRow(m, spec, false)
		issues := broken.crossFieldIssues(context.Background(), spec, row, m)
		if len(issues) != 1 || issues[0].Severity != SeverityError {
			t.Fatalf("issues = %+v", issues)
		}
	})
}
