package models

import "time"

// ImportSession records a single run of the import engine, whether a
// preview or a commit. ResultJSON holds the serialized ImportResult so
// the report worker can render it later without re-running the import.
type ImportSession struct {
	ID           int64     `db:"id" json:"id"`
	SessionCode  string    `db:"session_code" json:"session_code"`
	EntityType   string    `db:"entity_type" json:"entity_type"`
	Mode         string    `db:"mode" json:"mode"`
	Filename     string    `db:"filename" json:"filename"`
	FilePath     string    `db:"file_path" json:"file_path"`
	TotalRows    int       `db:"total_rows" json:"total_rows"`
	ImportedRows int       `db:"imported_rows" json:"imported_rows"`
	SkippedRows  int       `db:"skipped_rows" json:"skipped_rows"`
	Status       string    `db:"status" json:"status"`
	ResultJSON   string    `db:"result_json" json:"-"`
	ReportPath   string    `db:"report_path" json:"report_path,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Import session statuses.
const (
	ImportStatusPreviewed = "previewed"
	ImportStatusCommitted = "committed"
	ImportStatusFailed    = "failed"
)
