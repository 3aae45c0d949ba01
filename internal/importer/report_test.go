package importer

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateErrorReport(t *testing.T) {
	result := &ImportResult{
		TotalRows:     3,
		ImportedCount: 1,
		SkippedCount:  2,
		Errors: []Issue{
			{Row: 2, Field: "fiscalCode", Message: "Codice Fiscale is not a valid 16-character fiscal code", Value: "BADCODE"},
		},
		Warnings: []Issue{
			{Row: 1, Field: "price", Message: "Quota diverges from the SIC-2024-01 list price by more than 10%", Value: "200.00"},
		},
		Duplicates: []DuplicateMatch{
			{Row: 3, Field: "fiscalCode", Value: "RSSMRA80A01H501Z", ExistingID: 42, ExistingLabel: "Mario Rossi"},
		},
	}

	data, err := GenerateErrorReport(result, "Allievi")
	if err != nil {
		t.Fatalf("GenerateErrorReport error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("report is not a valid workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Esito Import")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if rows[0][0] != "Riga" || rows[0][3] != "Messaggio" {
		t.Errorf("header = %v", rows[0])
	}

	kinds := map[string]bool{}
	for _, row := range rows[1:] {
		if len(row) > 2 {
			kinds[row[2]] = true
		}
	}
	for _, want := range []string{"Errore", "Avviso", "Duplicato"} {
		if !kinds[want] {
			t.Errorf("report is missing a %q row", want)
		}
	}

	dupMsg, err := f.GetCellValue("Esito Import", "D4")
	if err != nil {
		t.Fatal(err)
	}
	if dupMsg != "già presente: Mario Rossi" {
		t.Errorf("duplicate message = %q", dupMsg)
	}
}
