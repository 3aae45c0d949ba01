package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Importer orchestrates the import pipeline: reader, mapper, normalizer,
// validator and duplicate detector run over every row, and the mode
// decides only whether accepted rows are persisted. A single call owns
// all of its state; nothing is cached between invocations.
type Importer struct {
	stores   map[EntityType]Store
	editions EditionSource
	tol      Tolerances
	log      *logrus.Logger
}

func New(stores map[EntityType]Store, editions EditionSource, tol Tolerances, log *logrus.Logger) *Importer {
	return &Importer{
		stores:   stores,
		editions: editions,
		tol:      tol,
		log:      log,
	}
}

// rowDecision is the pure per-row outcome shared by preview and commit.
type rowDecision struct {
	number   int
	row      NormalizedRow
	label    string
	issues   []Issue
	dup      *DuplicateMatch
	accepted bool
}

// Run executes one import. In ModeDryRun everything is computed and
// nothing is persisted; in ModeCommit every accepted row is created
// through the store, in source order, one at a time. Fatal conditions
// (unparseable file, missing required columns) are returned as errors
// before any row is processed; once mapping has succeeded the call
// always returns a result, converting row-level persistence failures
// into per-row issues.
func (imp *Importer) Run(ctx context.Context, entity EntityType, data []byte, format Format, mode Mode) (*ImportResult, error) {
	spec, err := Spec(entity)
	if err != nil {
		return nil, err
	}

	grid, err := Read(data, format)
	if err != nil {
		return nil, err
	}

	colmap, err := MapColumns(grid.Header, spec)
	if err != nil {
		return nil, err
	}

	mapped := colmap.Apply(grid.Rows)

	imp.log.WithFields(logrus.Fields{
		"entity": entity,
		"mode":   mode,
		"rows":   len(mapped),
	}).Info("import started")

	result := &ImportResult{
		TotalRows:        len(mapped),
		Errors:           []Issue{},
		Warnings:         []Issue{},
		Duplicates:       []DuplicateMatch{},
		ImportedEntities: []ImportedEntity{},
	}

	store := imp.stores[entity]
	seen := make(BatchKeys)

	for _, m := range mapped {
		var decision rowDecision
		decision, seen = imp.evaluateRow(ctx, spec, m, grid.Date1904, seen)

		if decision.dup != nil {
			result.Duplicates = append(result.Duplicates, *decision.dup)
		}

		imported := decision.accepted
		if imported && mode == ModeCommit {
			if store == nil {
				return nil, fmt.Errorf("no store configured for entity type %s", entity)
			}
			id, label, err := store.Create(ctx, decision.row)
			if err != nil {
				// A single bad row never aborts the batch.
				decision.issues = append(decision.issues, Issue{
					Row:      decision.number,
					Field:    strings.Join(spec.NaturalKey, "+"),
					Message:  fmt.Sprintf("could not be saved: %v", err),
					Value:    NaturalKey(spec, decision.row),
					Severity: SeverityError,
				})
				imported = false
			} else {
				if label != "" {
					decision.label = label
				}
				result.ImportedEntities = append(result.ImportedEntities, ImportedEntity{
					Row:    decision.number,
					ID:     id,
					Label:  decision.label,
					Fields: decision.row,
				})
			}
		} else if imported {
			result.ImportedEntities = append(result.ImportedEntities, ImportedEntity{
				Row:    decision.number,
				Label:  decision.label,
				Fields: decision.row,
			})
		}

		for _, issue := range decision.issues {
			if issue.Severity == SeverityError {
				result.Errors = append(result.Errors, issue)
			} else {
				result.Warnings = append(result.Warnings, issue)
			}
		}

		if imported {
			result.ImportedCount++
		} else {
			result.SkippedCount++
		}
	}

	// Success means every row made it in.
	result.Success = result.SkippedCount == 0

	imp.log.WithFields(logrus.Fields{
		"entity":   entity,
		"mode":     mode,
		"imported": result.ImportedCount,
		"skipped":  result.SkippedCount,
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	}).Info("import finished")

	return result, nil
}

// evaluateRow runs the pure pipeline stage for one row: normalization,
// validation, cross-field checks and duplicate detection. The batch-key
// accumulator is threaded through and returned updated; only rows the
// batch actually accepts feed it, so later rows see exactly the earlier
// accepted keys.
func (imp *Importer) evaluateRow(ctx context.Context, spec *EntityTypeSpec, m MappedRow, date1904 bool, seen BatchKeys) (rowDecision, BatchKeys) {
	row, issues := NormalizeRow(m, spec, date1904)
	issues = append(issues, ValidateRow(row, m, spec)...)
	issues = append(issues, imp.crossFieldIssues(ctx, spec, row, m)...)

	decision := rowDecision{
		number: m.Number,
		row:    row,
		label:  rowLabel(spec, row),
		issues: issues,
	}

	if hasError(issues) {
		return decision, seen
	}

	dup, dupIssue := imp.detectDuplicate(ctx, spec, row, m.Number, seen)
	if dupIssue != nil {
		decision.issues = append(decision.issues, *dupIssue)
		return decision, seen
	}
	decision.dup = dup

	if dup != nil && spec.BlockingDuplicates {
		return decision, seen
	}

	decision.accepted = true
	if key := NaturalKey(spec, row); key != "" {
		if _, ok := seen[key]; !ok {
			seen[key] = m.Number
		}
	}
	return decision, seen
}

func hasError(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func rowLabel(spec *EntityTypeSpec, row NormalizedRow) string {
	parts := make([]string, 0, len(spec.LabelFields))
	for _, key := range spec.LabelFields {
		if v := row.String(key); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
