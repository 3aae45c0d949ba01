package importer

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

var (
	emailRe      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	vatRe        = regexp.MustCompile(`^\d{11}$`)
	fiscalCodeRe = regexp.MustCompile(`^[A-Z]{6}\d{2}[A-Z]\d{2}[A-Z]\d{3}[A-Z]$`)
)

// ValidateRow applies required-field and format rules to a normalized
// row, returning every issue found. The row itself is never mutated.
func ValidateRow(row NormalizedRow, raw MappedRow, spec *EntityTypeSpec) []Issue {
	var issues []Issue

	for _, field := range spec.Fields {
		value := row[field.Key]

		if value == nil {
			if field.Required {
				issues = append(issues, Issue{
					Row:      raw.Number,
					Field:    field.Key,
					Message:  fmt.Sprintf("%s is required", field.Label),
					Value:    raw.Values[field.Key],
					Severity: SeverityError,
				})
			}
			continue
		}

		if msg := checkFormat(value, field); msg != "" {
			issues = append(issues, Issue{
				Row:      raw.Number,
				Field:    field.Key,
				Message:  msg,
				Value:    raw.Values[field.Key],
				Severity: SeverityError,
			})
		}
	}

	return issues
}

func checkFormat(value interface{}, field FieldSpec) string {
	switch field.Format {
	case FormatEmail:
		if s, ok := value.(string); ok && !emailRe.MatchString(s) {
			return fmt.Sprintf("%s is not a valid email address", field.Label)
		}
	case FormatVAT:
		if s, ok := value.(string); ok && !vatRe.MatchString(s) {
			return fmt.Sprintf("%s must be exactly 11 digits", field.Label)
		}
	case FormatFiscalCode:
		if s, ok := value.(string); ok && !fiscalCodeRe.MatchString(s) {
			return fmt.Sprintf("%s is not a valid 16-character fiscal code", field.Label)
		}
	case FormatPhone:
		if s, ok := value.(string); ok {
			n := len(s)
			if len(s) > 0 && s[0] == '+' {
				n--
			}
			if n < 6 || n > 15 {
				return fmt.Sprintf("%s must contain between 6 and 15 digits", field.Label)
			}
		}
	case FormatNonNegative:
		if v, ok := value.(int64); ok && v < 0 {
			return fmt.Sprintf("%s cannot be negative", field.Label)
		}
	}
	return ""
}

// crossFieldIssues evaluates checks that need context beyond a single
// field. For registrations the referenced edition is resolved through
// the edition source: an unknown edition is an error (the row cannot be
// persisted against anything), while price and date divergences are
// warnings gated by the configured tolerances.
func (imp *Importer) crossFieldIssues(ctx context.Context, spec *EntityTypeSpec, row NormalizedRow, raw MappedRow) []Issue {
	if spec.Type != EntityRegistrations || imp.editions == nil {
		return nil
	}

	code := row.String("editionCode")
	if code == "" {
		return nil
	}

	edition, err := imp.editions.EditionByCode(ctx, code)
	if err != nil {
		return []Issue{{
			Row:      raw.Number,
			Field:    "editionCode",
			Message:  fmt.Sprintf("edition lookup failed: %v", err),
			Value:    code,
			Severity: SeverityError,
		}}
	}
	if edition == nil {
		return []Issue{{
			Row:      raw.Number,
			Field:    "editionCode",
			Message:  fmt.Sprintf("unknown edition code %q", code),
			Value:    code,
			Severity: SeverityError,
		}}
	}

	var issues []Issue

	if price, ok := row.Int64("price"); ok && edition.ListPrice > 0 {
		diff := float64(price-edition.ListPrice) / float64(edition.ListPrice) * 100
		if diff < 0 {
			diff = -diff
		}
		if diff > imp.tol.PriceDivergencePct {
			issues = append(issues, Issue{
				Row:      raw.Number,
				Field:    "price",
				Message:  fmt.Sprintf("Quota diverges from the %s list price by more than %.0f%%", edition.Code, imp.tol.PriceDivergencePct),
				Value:    raw.Values["price"],
				Severity: SeverityWarning,
			})
		}
	}

	if regDate := row.String("registrationDate"); regDate != "" && edition.EndDate != "" {
		reg, err1 := time.Parse("2006-01-02", regDate)
		end, err2 := time.Parse("2006-01-02", edition.EndDate)
		if err1 == nil && err2 == nil && reg.After(end.AddDate(0, 0, imp.tol.LateRegistrationDays)) {
			issues = append(issues, Issue{
				Row:      raw.Number,
				Field:    "registrationDate",
				Message:  fmt.Sprintf("Data Iscrizione is more than %d days after the end of %s", imp.tol.LateRegistrationDays, edition.Code),
				Value:    raw.Values["registrationDate"],
				Severity: SeverityWarning,
			})
		}
	}

	return issues
}
