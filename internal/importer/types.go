// Package importer implements the bulk tabular import and reconciliation
// engine: spreadsheet/CSV parsing, header-to-field mapping, per-field
// normalization, row validation, duplicate detection against both the
// store and the running batch, and a two-phase preview/commit workflow.
// It has no HTTP or database dependencies; persistence is reached through
// the Store and EditionSource collaborators.
package importer

import "context"

// EntityType identifies one of the importable record kinds.
type EntityType string

const (
	EntityCompanies     EntityType = "companies"
	EntityStudents      EntityType = "students"
	EntityRegistrations EntityType = "registrations"
)

// Mode selects whether the orchestrator persists accepted rows.
type Mode string

const (
	ModeDryRun Mode = "preview"
	ModeCommit Mode = "commit"
)

// Format declares how the uploaded byte buffer should be parsed.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Severity classifies a validation issue. Errors exclude the row from
// the imported set; warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// MappedRow holds the raw cell values of one source row keyed by
// canonical field key. Number is 1-based and excludes the header row.
type MappedRow struct {
	Number int
	Values map[string]string
}

// NormalizedRow maps field keys to canonical typed values: string for
// text/identifiers/ISO dates, int64 for money in minor units, nil for
// absent fields.
type NormalizedRow map[string]interface{}

// String returns the value under key as a string, or "" when absent.
func (r NormalizedRow) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Int64 returns the value under key as an int64, or 0 when absent.
func (r NormalizedRow) Int64(key string) (int64, bool) {
	v, ok := r[key].(int64)
	return v, ok
}

// Issue is a classified per-row validation finding.
type Issue struct {
	Row      int         `json:"row"`
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value"`
	Severity Severity    `json:"-"`
}

// DuplicateMatch reports that a row's natural key collides with an
// already-known record, either persisted (ExistingID > 0) or accepted
// earlier in the same batch (ExistingID == 0, label names the row).
type DuplicateMatch struct {
	Row           int         `json:"row"`
	Field         string      `json:"field"`
	Value         interface{} `json:"value"`
	ExistingID    int64       `json:"existingId"`
	ExistingLabel string      `json:"existingLabel"`
}

// ImportedEntity is one row that was (commit) or would be (preview)
// created. ID is only assigned in commit mode.
type ImportedEntity struct {
	Row    int           `json:"row"`
	ID     int64         `json:"id,omitempty"`
	Label  string        `json:"label"`
	Fields NormalizedRow `json:"fields"`
}

// ImportResult is the aggregate outcome of one orchestrator run. It is
// created fresh per invocation and never mutated after being returned.
type ImportResult struct {
	Success          bool             `json:"success"`
	TotalRows        int              `json:"totalRows"`
	ImportedCount    int              `json:"importedCount"`
	SkippedCount     int              `json:"skippedCount"`
	Errors           []Issue          `json:"errors"`
	Warnings         []Issue          `json:"warnings"`
	Duplicates       []DuplicateMatch `json:"duplicates"`
	ImportedEntities []ImportedEntity `json:"importedEntities"`
}

// ExistingRecord identifies a persisted record matched by natural key.
type ExistingRecord struct {
	ID    int64
	Label string
}

// Store is the persistence collaborator for one entity type. Lookups are
// idempotent reads; Create persists a normalized row and returns the
// assigned identifier and a display label.
type Store interface {
	LookupByNaturalKey(ctx context.Context, key string) (*ExistingRecord, error)
	Create(ctx context.Context, row NormalizedRow) (int64, string, error)
}

// EditionInfo is the slice of a course edition the cross-field checks
// need. ListPrice is in minor units.
type EditionInfo struct {
	ID        int64
	Code      string
	Title     string
	ListPrice int64
	EndDate   string // ISO date, empty when unknown
}

// EditionSource resolves course editions referenced by registration rows.
type EditionSource interface {
	EditionByCode(ctx context.Context, code string) (*EditionInfo, error)
}

// Tolerances are the configurable business thresholds behind the
// warning-level cross-field checks.
type Tolerances struct {
	PriceDivergencePct   float64
	LateRegistrationDays int
}
