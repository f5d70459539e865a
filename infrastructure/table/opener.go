// Package table reads change requests from spreadsheets and writes the
// per-row status back into the same file.
package table

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/carlosrabelo/portlabel/domain/ports"
)

// Options tune how tables are opened
type Options struct {
	// Sheet selects an XLSX worksheet; empty means the active sheet.
	Sheet string
	// Encoding is the CSV character set, e.g. windows-1252; empty means UTF-8.
	Encoding string
}

// Opener picks the table implementation by file extension
type Opener struct {
	opts Options
}

// NewOpener creates a table opener
func NewOpener(opts Options) *Opener {
	return &Opener{opts: opts}
}

// Open opens the table at path
func (o *Opener) Open(path string) (ports.ChangeTable, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return openWorkbook(path, o.opts.Sheet)
	case ".csv", ".txt":
		return openCSV(path, o.opts.Encoding)
	default:
		return nil, fmt.Errorf("unsupported table format %q (use .xlsx, .xlsm or .csv)", ext)
	}
}
