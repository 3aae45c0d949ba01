package importer

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is the untyped output of the tabular reader: a header row plus
// ordered data rows. No field semantics are attached at this layer; cell
// values pass through as the source encodes them, including spreadsheet
// date-serial numbers. Date1904 records the workbook epoch so the
// normalizer can convert serials correctly.
type Grid struct {
	Header   []string
	Rows     [][]string
	Date1904 bool
}

// Read parses an uploaded byte buffer into a Grid. It fails with a
// ParseError when the buffer is not a well-formed spreadsheet/CSV or
// contains fewer than a header row plus one data row.
func Read(data []byte, format Format) (*Grid, error) {
	switch format {
	case FormatXLSX:
		return readXLSX(data)
	case FormatCSV:
		return readCSV(data)
	default:
		return nil, &ParseError{Reason: "unsupported format " + string(format)}
	}
}

func readXLSX(data []byte) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Reason: "not a valid spreadsheet", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "no sheets found in spreadsheet"}
	}

	// Only the first sheet is read.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Reason: "failed to read rows", Err: err}
	}

	grid := &Grid{}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		grid.Date1904 = *props.Date1904
	}

	return finishGrid(grid, rows)
}

func readCSV(data []byte) (*Grid, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Reason: "not a valid delimited file", Err: err}
	}

	return finishGrid(&Grid{}, rows)
}

func finishGrid(grid *Grid, rows [][]string) (*Grid, error) {
	// Trim trailing blank rows so stray newlines and formatted-but-empty
	// spreadsheet rows do not inflate the row count. Interior blank rows
	// are kept: they flow through validation and keep numbering aligned
	// with the source file.
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	if len(rows) < 2 {
		return nil, &ParseError{Reason: "file must contain a header row and at least one data row"}
	}

	grid.Header = rows[0]
	grid.Rows = rows[1:]
	return grid, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// sniffDelimiter picks the separator of the header line. Exports from
// Italian spreadsheet locales use semicolons.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
