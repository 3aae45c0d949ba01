package importer

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed or empty upload. It is fatal and aborts
// the import before any row is processed.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingRequiredColumnsError reports required fields whose header could
// not be matched. Fatal: partial mapping cannot be fixed per row.
type MissingRequiredColumnsError struct {
	Entity  EntityType
	Missing []string
}

func (e *MissingRequiredColumnsError) Error() string {
	return fmt.Sprintf("missing required columns for %s: %s", e.Entity, strings.Join(e.Missing, ", "))
}
