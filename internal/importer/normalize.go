package importer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)

// NormalizeRow coerces the raw cell values of one mapped row into their
// canonical representations. A transform failure yields an error-severity
// issue and leaves the field nil; blank values become nil without an
// issue (required-field absence is the validator's job).
func NormalizeRow(m MappedRow, spec *EntityTypeSpec, date1904 bool) (NormalizedRow, []Issue) {
	row := make(NormalizedRow, len(spec.Fields))
	var issues []Issue

	for _, field := range spec.Fields {
		raw := strings.TrimSpace(m.Values[field.Key])
		if raw == "" {
			row[field.Key] = nil
			continue
		}

		value, err := transform(raw, field.Transform, date1904)
		if err != nil {
			issues = append(issues, Issue{
				Row:      m.Number,
				Field:    field.Key,
				Message:  fmt.Sprintf("%s: %v", field.Label, err),
				Value:    raw,
				Severity: SeverityError,
			})
			row[field.Key] = nil
			continue
		}
		row[field.Key] = value
	}

	return row, issues
}

func transform(raw string, t Transform, date1904 bool) (interface{}, error) {
	switch t {
	case TransformIdentifier:
		return strings.ToUpper(stripSpace(raw)), nil
	case TransformVAT:
		return digitsOnly(raw), nil
	case TransformDate:
		return normalizeDate(raw, date1904)
	case TransformMoney:
		return normalizeMoney(raw)
	case TransformEmail:
		return strings.ToLower(strings.TrimSpace(raw)), nil
	case TransformPhone:
		return normalizePhone(raw), nil
	default:
		return raw, nil
	}
}

// normalizeDate accepts either a spreadsheet date-serial number or a
// D[D]/M[M]/YYYY (slash or dash) string and returns an ISO date.
// Two-digit years above 50 map to 19xx, the rest to 20xx.
func normalizeDate(raw string, date1904 bool) (string, error) {
	if !strings.ContainsAny(raw, "/-") {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			return serialToDate(serial, date1904)
		}
	}

	m := dateRe.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("%q is not a valid date", raw)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		if year > 50 {
			year += 1900
		} else {
			year += 2000
		}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", fmt.Errorf("%q is not a valid date", raw)
	}
	return t.Format("2006-01-02"), nil
}

// serialToDate converts a date-serial number under the workbook epoch.
// The 1900 system counts from the fictional 1899-12-30 (serials below 61
// fall in the Lotus leap-year bug window and are rejected); the 1904
// system counts from 1904-01-01.
func serialToDate(serial float64, date1904 bool) (string, error) {
	days := int64(serial)
	var unix int64
	if date1904 {
		if days < 1 {
			return "", fmt.Errorf("date serial %v out of range", serial)
		}
		unix = (days - 24107) * 86400
	} else {
		if days < 61 {
			return "", fmt.Errorf("date serial %v out of range", serial)
		}
		unix = (days - 25569) * 86400
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02"), nil
}

// normalizeMoney parses an amount in major currency units, tolerating
// both decimal commas and decimal points, and returns integer minor
// units (cents), matching how prices are persisted everywhere else.
func normalizeMoney(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "€$ ")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("%q is not a valid amount", raw)
	}

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		// The rightmost separator is the decimal one.
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid amount", raw)
	}
	return int64(math.Round(f * 100)), nil
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
