package services

import (
	"errors"
	"fmt"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
)

// ResultWriter persists batch outcomes into the table and the device.
type ResultWriter struct {
	config entities.SwitchConfig
}

// NewResultWriter creates a result writer for the given switch
func NewResultWriter(config entities.SwitchConfig) *ResultWriter {
	return &ResultWriter{config: config}
}

// Write stores every outcome's status in its row and saves the table in place.
func (w *ResultWriter) Write(table ports.ChangeTable, result entities.BatchResult, statusColumn int) error {
	for _, outcome := range result.Outcomes {
		if err := table.SetCell(outcome.Row, statusColumn, outcome.StatusText()); err != nil {
			return fmt.Errorf("%w: row %d: %v", entities.ErrPersistFailure, outcome.Row, err)
		}
	}
	if err := table.Save(); err != nil {
		return fmt.Errorf("%w: %s: %v", entities.ErrPersistFailure, table.Path(), err)
	}
	logging.WithDevice(w.config.Target).Infof("Wrote %d status values to %s", len(result.Outcomes), table.Path())
	return nil
}

// SaveDeviceConfig asks the device to persist its running configuration.
// Failures are logged and swallowed; the return value reports success.
func (w *ResultWriter) SaveDeviceConfig(session ports.Session) bool {
	log := logging.WithDevice(w.config.Target)
	if err := session.PersistConfig(); err != nil {
		if errors.Is(err, entities.ErrConfigSaveUnsupported) {
			log.Warnf("Configuration not saved on device: %v", err)
		} else {
			log.Warnf("Configuration save failed, ignoring: %v", err)
		}
		return false
	}
	log.Info("Configuration saved on device")
	return true
}
