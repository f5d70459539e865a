package ports

import "github.com/carlosrabelo/portlabel/domain/entities"

// ChangeTable is the tabular source of change requests and the sink of their status.
type ChangeTable interface {
	Path() string
	Rows() ([]entities.TableRow, error)
	SetCell(row, column int, value string) error
	Save() error
	Close() error
}

// TableOpener opens a change table by location.
type TableOpener interface {
	Open(path string) (ChangeTable, error)
}
