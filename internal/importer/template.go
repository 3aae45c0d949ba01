package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateTemplate builds an upload template for an entity type: the
// canonical headers plus a couple of example rows. Pure function of the
// entity spec.
func GenerateTemplate(entity EntityType) ([]byte, error) {
	spec, err := Spec(entity)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := spec.Label
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	// Write headers
	for i, field := range spec.Fields {
		cell := fmt.Sprintf("%s1", columnName(i))
		f.SetCellValue(sheetName, cell, field.Label)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", columnName(len(spec.Fields)-1)), headerStyle)

	// Write example rows
	for rowIdx, rowData := range spec.Examples {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", columnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range spec.Fields {
		col := columnName(i)
		f.SetColWidth(sheetName, col, col, 22)
	}

	// Required-column note below the examples
	noteRow := len(spec.Examples) + 4
	var required []string
	for _, field := range spec.Fields {
		if field.Required {
			required = append(required, field.Label)
		}
	}
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", noteRow), "Campi obbligatori:")
	for i, label := range required {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", noteRow+1+i), fmt.Sprintf("- %s", label))
	}
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", noteRow+len(required)+2),
		"Non modificare la riga di intestazione. Inserire i dati dalla riga 2.")

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
