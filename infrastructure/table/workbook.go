package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

// Workbook is an XLSX change table bound to one worksheet
type Workbook struct {
	path  string
	sheet string
	file  *excelize.File
}

func openWorkbook(path, sheet string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("worksheet %q not found in %s", sheet, path)
	}
	return &Workbook{path: path, sheet: sheet, file: f}, nil
}

func (w *Workbook) Path() string {
	return w.path
}

// Rows returns every row of the worksheet with 1-based indices.
func (w *Workbook) Rows() ([]entities.TableRow, error) {
	raw, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", w.sheet, err)
	}
	rows := make([]entities.TableRow, 0, len(raw))
	for i, cells := range raw {
		rows = append(rows, entities.TableRow{Index: i + 1, Cells: cells})
	}
	return rows, nil
}

func (w *Workbook) SetCell(row, column int, value string) error {
	cell, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(w.sheet, cell, value)
}

// Save writes the workbook back to its original path
func (w *Workbook) Save() error {
	return w.file.Save()
}

func (w *Workbook) Close() error {
	return w.file.Close()
}
