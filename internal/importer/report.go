package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateErrorReport renders an ImportResult into a spreadsheet an
// operator can work through: one row per issue or duplicate, plus a
// summary block. Rendered asynchronously by the report worker.
func GenerateErrorReport(result *ImportResult, entityLabel string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Esito Import"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	headers := []string{"Riga", "Campo", "Tipo", "Messaggio", "Valore"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", columnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFE6E6"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", columnName(len(headers)-1)), headerStyle)

	row := 2
	writeIssue := func(kind string, issue Issue) {
		values := []interface{}{issue.Row, issue.Field, kind, issue.Message, issue.Value}
		for colIdx, value := range values {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columnName(colIdx), row), value)
		}
		row++
	}

	for _, issue := range result.Errors {
		writeIssue("Errore", issue)
	}
	for _, issue := range result.Warnings {
		writeIssue("Avviso", issue)
	}
	for _, dup := range result.Duplicates {
		values := []interface{}{
			dup.Row,
			dup.Field,
			"Duplicato",
			fmt.Sprintf("già presente: %s", dup.ExistingLabel),
			dup.Value,
		}
		for colIdx, value := range values {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columnName(colIdx), row), value)
		}
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 60)
	f.SetColWidth(sheetName, "E", "E", 25)

	// Summary section
	summaryStart := row + 2
	summary := []struct {
		label string
		value interface{}
	}{
		{"Riepilogo Import", entityLabel},
		{"Righe totali:", result.TotalRows},
		{"Importate:", result.ImportedCount},
		{"Scartate:", result.SkippedCount},
		{"Errori:", len(result.Errors)},
		{"Avvisi:", len(result.Warnings)},
		{"Duplicati:", len(result.Duplicates)},
	}
	for i, line := range summary {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStart+i), line.label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStart+i), line.value)
	}

	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryStart), fmt.Sprintf("A%d", summaryStart), summaryStyle)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
