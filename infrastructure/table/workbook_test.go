package table

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func createWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("SetSheetName() error = %v", err)
		}
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("SetCellValue() error = %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "ports.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	return path
}

func TestWorkbook_ReadAndWriteBack(t *testing.T) {
	path := createWorkbook(t, "Ports", [][]string{
		{"Description", "Interface", "Status"},
		{"desc1", "Gi0/1"},
		{"", "Gi0/2"},
		{"desc3", "Gi0/3"},
	})

	tbl, err := NewOpener(Options{}).Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	rows, err := tbl.Rows()
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[1].Index != 2 || rows[1].Cell(1) != "desc1" || rows[1].Cell(2) != "Gi0/1" {
		t.Errorf("unexpected row 2: %+v", rows[1])
	}
	if rows[2].Cell(1) != "" {
		t.Errorf("row 3 description = %q, want empty", rows[2].Cell(1))
	}

	if err := tbl.SetCell(2, 3, "Success"); err != nil {
		t.Fatalf("SetCell() error = %v", err)
	}
	if err := tbl.SetCell(4, 3, "Failure: rejected: % Invalid input"); err != nil {
		t.Fatalf("SetCell() error = %v", err)
	}
	if err := tbl.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := tbl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue("Ports", "C2"); got != "Success" {
		t.Errorf("C2 = %q, want Success", got)
	}
	if got, _ := f.GetCellValue("Ports", "C4"); got != "Failure: rejected: % Invalid input" {
		t.Errorf("C4 = %q", got)
	}
	if got, _ := f.GetCellValue("Ports", "C3"); got != "" {
		t.Errorf("C3 = %q, want untouched", got)
	}
}

func TestWorkbook_SheetSelection(t *testing.T) {
	path := createWorkbook(t, "Sheet1", [][]string{{"a", "b"}})

	wb, err := openWorkbook(path, "")
	if err != nil {
		t.Fatalf("openWorkbook() error = %v", err)
	}
	if wb.sheet != "Sheet1" {
		t.Errorf("sheet = %q, want active sheet", wb.sheet)
	}
	wb.Close()

	if _, err := openWorkbook(path, "Missing"); err == nil {
		t.Error("expected error for a missing worksheet")
	}
}

func TestOpener_RejectsUnknownFormats(t *testing.T) {
	if _, err := NewOpener(Options{}).Open("ports.ods"); err == nil {
		t.Error("expected error for .ods")
	}
	if _, err := NewOpener(Options{}).Open(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("expected error for a missing workbook")
	}
}
