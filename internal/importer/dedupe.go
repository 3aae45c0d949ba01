package importer

import (
	"context"
	"fmt"
	"strings"
)

// BatchKeys is the accumulator of natural keys accepted earlier in the
// current batch, mapping each key to the row number of its first
// occurrence. It is passed into and returned from every row step instead
// of living as hidden shared state.
type BatchKeys map[string]int

// NaturalKey builds the joined natural-key value of a row, or "" when
// any component is absent (no duplicate check is possible then).
func NaturalKey(spec *EntityTypeSpec, row NormalizedRow) string {
	parts := make([]string, 0, len(spec.NaturalKey))
	for _, key := range spec.NaturalKey {
		v := row.String(key)
		if v == "" {
			return ""
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, "|")
}

// detectDuplicate checks a row's natural key first against rows already
// accepted in this batch, then against the persisted store. At most one
// match is returned per row; an in-batch hit is reported against the
// first occurrence's position and skips the store lookup entirely. A
// store failure degrades to a per-row error issue so the batch always
// completes.
func (imp *Importer) detectDuplicate(ctx context.Context, spec *EntityTypeSpec, row NormalizedRow, rowNum int, seen BatchKeys) (*DuplicateMatch, *Issue) {
	key := NaturalKey(spec, row)
	if key == "" {
		return nil, nil
	}

	field := strings.Join(spec.NaturalKey, "+")

	if first, ok := seen[key]; ok {
		return &DuplicateMatch{
			Row:           rowNum,
			Field:         field,
			Value:         key,
			ExistingLabel: fmt.Sprintf("row %d of this file", first),
		}, nil
	}

	store, ok := imp.stores[spec.Type]
	if !ok {
		return nil, nil
	}

	existing, err := store.LookupByNaturalKey(ctx, key)
	if err != nil {
		return nil, &Issue{
			Row:      rowNum,
			Field:    field,
			Message:  fmt.Sprintf("duplicate lookup failed: %v", err),
			Value:    key,
			Severity: SeverityError,
		}
	}
	if existing == nil {
		return nil, nil
	}

	return &DuplicateMatch{
		Row:           rowNum,
		Field:         field,
		Value:         key,
		ExistingID:    existing.ID,
		ExistingLabel: existing.Label,
	}, nil
}
