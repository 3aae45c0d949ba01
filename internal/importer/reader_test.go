package importer

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	data := []byte("Nome,Cognome,Codice Fiscale\nMario,Rossi,RSSMRA80A01H501Z\nLucia,Bianchi,BNCLCU85M41F205X\n")

	grid, err := Read(data, FormatCSV)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(grid.Header) != 3 || grid.Header[0] != "Nome" {
		t.Errorf("header = %v", grid.Header)
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(grid.Rows))
	}
	if grid.Rows[1][1] != "Bianchi" {
		t.Errorf("rows[1][1] = %q", grid.Rows[1][1])
	}
}

func TestReadCSVSemicolon(t *testing.T) {
	data := []byte("Nome;Cognome;Codice Fiscale\nMario;Rossi;RSSMRA80A01H501Z\n")

	grid, err := Read(data, FormatCSV)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(grid.Header) != 3 {
		t.Errorf("semicolon header not split: %v", grid.Header)
	}
}

func TestReadCSVBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nome,Cognome\nMario,Rossi\n")...)

	grid, err := Read(data, FormatCSV)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if grid.Header[0] != "Nome" {
		t.Errorf("BOM not stripped: header[0] = %q", grid.Header[0])
	}
}

func TestReadCSVTrailingBlankRows(t *testing.T) {
	data := []byte("Nome,Cognome\nMario,Rossi\n,\n,\n")

	grid, err := Read(data, FormatCSV)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(grid.Rows) != 1 {
		t.Errorf("trailing blank rows not trimmed: %d rows", len(grid.Rows))
	}
}

func TestReadHeaderOnly(t *testing.T) {
	_, err := Read([]byte("Nome,Cognome\n"), FormatCSV)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want ParseError, got %v", err)
	}
}

func TestReadGarbageXLSX(t *testing.T) {
	_, err := Read([]byte("this is not a zip archive"), FormatXLSX)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want ParseError, got %v", err)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Nome", "Cognome", "Data di Nascita"},
		{"Mario", "Rossi", 29221}, // date serial
		{"Lucia", "Bianchi", "01/08/1985"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	grid, err := Read(buf.Bytes(), FormatXLSX)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if grid.Date1904 {
		t.Error("default workbook should use the 1900 epoch")
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(grid.Rows))
	}
	if grid.Rows[0][2] != "29221" {
		t.Errorf("date serial should pass through raw, got %q", grid.Rows[0][2])
	}
}
