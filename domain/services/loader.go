package services

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
)

// LoadChanges extracts the ordered change set from a table. Rows inside the
// header, or missing either the interface or the description, are skipped.
func LoadChanges(table ports.ChangeTable, layout entities.TableLayout) ([]entities.ChangeRequest, error) {
	rows, err := table.Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entities.ErrSourceUnreadable, table.Path(), err)
	}

	log := logging.Logger.WithField("source", table.Path())
	changes := make([]entities.ChangeRequest, 0, len(rows))
	for _, row := range rows {
		if row.Index <= layout.HeaderRows {
			continue
		}
		iface := strings.TrimSpace(row.Cell(layout.InterfaceColumn))
		description := strings.TrimSpace(row.Cell(layout.DescriptionColumn))
		if iface == "" || description == "" {
			log.Debugf("Skipping row %d: interface=%q description=%q", row.Index, iface, description)
			continue
		}
		changes = append(changes, entities.ChangeRequest{
			Row:         row.Index,
			Interface:   iface,
			Description: description,
		})
	}
	log.Debugf("Loaded %d change requests from %d rows", len(changes), len(rows))
	return changes, nil
}
