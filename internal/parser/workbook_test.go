package parser

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbookBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "MasterBOM"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	rows := [][]interface{}{
		{"YAZAKI PN", "Plant 1", "Item Description"},
		{"7116-4101", "X", "Connector"},
		{"", "", ""}, // 全空行
		{"9001-0001", "D", "Terminal"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("MasterBOM", cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestOpenWorkbookFromStream(t *testing.T) {
	t.Parallel()

	wb, err := OpenWorkbook(buildWorkbookBuffer(t))
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	defer wb.Close()

	if wb.FileID() == "" {
		t.Fatal("file id must be assigned on open")
	}

	sheets, err := wb.Sheets()
	if err != nil {
		t.Fatalf("Sheets: %v", err)
	}
	if len(sheets) != 1 || sheets[0].Name != "MasterBOM" {
		t.Fatalf("unexpected sheets: %+v", sheets)
	}

	cols, err := wb.Columns("MasterBOM")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if len(cols) != 3 || cols[0] != "YAZAKI PN" {
		t.Fatalf("unexpected columns: %v", cols)
	}
}

func TestWorkbookToTableSkipsEmptyRows(t *testing.T) {
	t.Parallel()

	wb, err := OpenWorkbook(buildWorkbookBuffer(t))
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	defer wb.Close()

	tbl, err := wb.ToTable("MasterBOM")
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (empty row skipped)", len(tbl.Rows))
	}
	if tbl.Cell(0, 0) != "7116-4101" || tbl.Cell(1, 0) != "9001-0001" {
		t.Fatalf("unexpected row content: %v", tbl.Rows)
	}
}

func TestWorkbookFileIDsDistinct(t *testing.T) {
	t.Parallel()

	first, err := OpenWorkbook(buildWorkbookBuffer(t))
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	defer first.Close()

	second, err := OpenWorkbook(buildWorkbookBuffer(t))
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	defer second.Close()

	if first.FileID() == second.FileID() {
		t.Fatal("file ids must be unique per open")
	}
}
