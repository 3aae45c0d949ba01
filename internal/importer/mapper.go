package importer

import (
	"strings"
	"unicode"
)

// ColumnMap resolves source column indices to canonical field keys.
type ColumnMap map[int]string

// MapColumns matches each header label against the entity's synonym
// dictionary. Matching is case-insensitive and tolerant of whitespace
// and punctuation. Unrecognized headers are dropped silently so extra
// operator columns never break an import. A required field with no
// matched header aborts the whole import.
func MapColumns(header []string, spec *EntityTypeSpec) (ColumnMap, error) {
	synonyms := make(map[string]string)
	for _, field := range spec.Fields {
		synonyms[canonicalHeader(field.Label)] = field.Key
		for _, syn := range field.Synonyms {
			synonyms[canonicalHeader(syn)] = field.Key
		}
	}

	cm := make(ColumnMap)
	matched := make(map[string]bool)
	for idx, label := range header {
		key, ok := synonyms[canonicalHeader(label)]
		if !ok || matched[key] {
			// Unknown header, or a second column mapping to an already
			// matched field: first column wins.
			continue
		}
		cm[idx] = key
		matched[key] = true
	}

	var missing []string
	for _, field := range spec.Fields {
		if field.Required && !matched[field.Key] {
			missing = append(missing, field.Label)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingRequiredColumnsError{Entity: spec.Type, Missing: missing}
	}

	return cm, nil
}

// Apply projects raw rows through the column map, producing one
// MappedRow per source row. Row numbers are 1-based and exclude the
// header, so they trace straight back to the spreadsheet.
func (cm ColumnMap) Apply(rows [][]string) []MappedRow {
	mapped := make([]MappedRow, 0, len(rows))
	for i, row := range rows {
		values := make(map[string]string, len(cm))
		for idx, key := range cm {
			if idx < len(row) {
				values[key] = row[idx]
			}
		}
		mapped = append(mapped, MappedRow{Number: i + 1, Values: values})
	}
	return mapped
}

// canonicalHeader lowers the label and strips everything that is not a
// letter or digit, so "Codice Fiscale", "codice_fiscale" and
// "CODICE-FISCALE" all collide.
func canonicalHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
