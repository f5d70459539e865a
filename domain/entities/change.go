package entities

import (
	"fmt"
	"strings"
)

// TableLayout locates the relevant columns of the change table. Columns and
// rows are 1-based, matching spreadsheet numbering.
type TableLayout struct {
	HeaderRows        int
	DescriptionColumn int
	InterfaceColumn   int
	StatusColumn      int
}

// DefaultTableLayout is description in A, interface in B, status in C, one header row.
func DefaultTableLayout() TableLayout {
	return TableLayout{
		HeaderRows:        1,
		DescriptionColumn: 1,
		InterfaceColumn:   2,
		StatusColumn:      3,
	}
}

// Validate checks that the layout references distinct, positive columns.
func (l TableLayout) Validate() error {
	if l.HeaderRows < 0 {
		return fmt.Errorf("header_rows %d must not be negative", l.HeaderRows)
	}
	cols := map[string]int{
		"description_column": l.DescriptionColumn,
		"interface_column":   l.InterfaceColumn,
		"status_column":      l.StatusColumn,
	}
	used := make(map[int]string, len(cols))
	for _, name := range []string{"description_column", "interface_column", "status_column"} {
		col := cols[name]
		if col < 1 {
			return fmt.Errorf("%s %d must be 1 or greater", name, col)
		}
		if other, dup := used[col]; dup {
			return fmt.Errorf("%s and %s both point at column %d", other, name, col)
		}
		used[col] = name
	}
	return nil
}

// TableRow is one raw row read from the change table.
type TableRow struct {
	Index int // 1-based row number
	Cells []string
}

// Cell returns the value of a 1-based column, or "" when the row is shorter.
func (r TableRow) Cell(column int) string {
	if column < 1 || column > len(r.Cells) {
		return ""
	}
	return r.Cells[column-1]
}

// ChangeRequest is one desired interface description taken from a table row.
type ChangeRequest struct {
	Row         int
	Interface   string
	Description string
}

// DescriptionLine puts a multi-line description on one CLI line. Line breaks
// become single spaces and surrounding whitespace is trimmed; spacing inside
// a line is sent as written.
func DescriptionLine(description string) string {
	description = strings.ReplaceAll(description, "\r\n", "\n")
	description = strings.ReplaceAll(description, "\r", "\n")
	var parts []string
	for _, line := range strings.Split(description, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
