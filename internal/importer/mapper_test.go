package importer

import (
	"errors"
	"testing"
)

func TestMapColumns(t *testing.T) {
	spec, err := Spec(EntityStudents)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header []string
		want   map[int]string
	}{
		{
			name:   "canonical labels",
			header: []string{"Nome", "Cognome", "Codice Fiscale"},
			want:   map[int]string{0: "firstName", 1: "lastName", 2: "fiscalCode"},
		},
		{
			name:   "synonyms and punctuation",
			header: []string{"nome", "COGNOME", "codice_fiscale", "E-mail"},
			want:   map[int]string{0: "firstName", 1: "lastName", 2: "fiscalCode", 3: "email"},
		},
		{
			name:   "cf abbreviation",
			header: []string{"Nome", "Cognome", "CF"},
			want:   map[int]string{0: "firstName", 1: "lastName", 2: "fiscalCode"},
		},
		{
			name:   "unknown columns ignored",
			header: []string{"Nome", "Reparto", "Cognome", "Codice Fiscale", "Turno"},
			want:   map[int]string{0: "firstName", 2: "lastName", 3: "fiscalCode"},
		},
		{
			name:   "first matching column wins",
			header: []string{"Codice Fiscale", "CF", "Nome", "Cognome"},
			want:   map[int]string{0: "fiscalCode", 2: "firstName", 3: "lastName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm, err := MapColumns(tt.header, spec)
			if err != nil {
				t.Fatalf("MapColumns error: %v", err)
			}
			if len(cm) != len(tt.want) {
				t.Fatalf("got %d mappings, want %d: %v", len(cm), len(tt.want), cm)
			}
			for idx, key := range tt.want {
				if cm[idx] != key {
					t.Errorf("column %d mapped to %q, want %q", idx, cm[idx], key)
				}
			}
		})
	}
}

func TestMapColumnsMissingRequired(t *testing.T) {
	spec, err := Spec(EntityStudents)
	if err != nil {
		t.Fatal(err)
	}

	_, err = MapColumns([]string{"Nome", "Codice Fiscale"}, spec)
	var missing *MissingRequiredColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("want MissingRequiredColumnsError, got %v", err)
	}
	if len(missing.Missing) != 1 || missing.Missing[0] != "Cognome" {
		t.Errorf("missing = %v, want [Cognome]", missing.Missing)
	}
}

func TestColumnMapApply(t *testing.T) {
	cm := ColumnMap{0: "firstName", 2: "fiscalCode"}
	rows := [][]string{
		{"Mario", "ignored", "RSSMRA80A01H501Z"},
		{"Lucia"}, // short row
	}

	mapped := cm.Apply(rows)
	if len(mapped) != 2 {
		t.Fatalf("got %d rows", len(mapped))
	}
	if mapped[0].Number != 1 || mapped[1].Number != 2 {
		t.Errorf("row numbers = %d, %d", mapped[0].Number, mapped[1].Number)
	}
	if mapped[0].Values["fiscalCode"] != "RSSMRA80A01H501Z" {
		t.Errorf("fiscalCode = %q", mapped[0].Values["fiscalCode"])
	}
	if _, ok := mapped[1].Values["fiscalCode"]; ok {
		t.Error("short row should not map out-of-range columns")
	}
}
