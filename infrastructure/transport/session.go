package transport

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
	"github.com/carlosrabelo/portlabel/platform"
)

// DeviceSession is an opened CLI session bound to one platform driver.
type DeviceSession struct {
	client    Client
	driver    platform.SwitchDriver
	strategy  entities.Strategy
	log       *logrus.Entry
	closeOnce sync.Once
}

// NewDeviceSession wraps a connected client
func NewDeviceSession(client Client, driver platform.SwitchDriver, strategy entities.Strategy, cfg entities.SwitchConfig) *DeviceSession {
	return &DeviceSession{
		client:   client,
		driver:   driver,
		strategy: strategy,
		log:      logging.WithDevice(cfg.Target).WithField("transport", strategy.Transport),
	}
}

func (s *DeviceSession) Protocol() entities.Protocol {
	return s.strategy.Protocol
}

func (s *DeviceSession) Transport() string {
	return s.strategy.Transport
}

func (s *DeviceSession) DescriptionCommands(iface, description string) []string {
	return s.driver.DescriptionCommands(iface, description)
}

// Apply runs the lines inside configuration mode. The first rejected or
// failed line stops the transaction; configuration mode is left either way.
func (s *DeviceSession) Apply(commands []string) error {
	enter, exit := s.driver.ConfigMode()
	if err := s.run(enter); err != nil {
		return err
	}

	var failure error
	for _, cmd := range commands {
		if err := s.run(cmd); err != nil {
			failure = err
			break
		}
	}

	if err := s.run(exit); err != nil && failure == nil {
		failure = err
	}
	return failure
}

func (s *DeviceSession) run(cmd string) error {
	output, err := s.client.ExecuteCommand(cmd)
	if err != nil {
		return classifyError(cmd, err)
	}
	if line, bad := s.driver.CommandError(output); bad {
		return entities.NewCommandFailure(entities.FailureRejected, cmd, line)
	}
	return nil
}

// PersistConfig tries each save command of the driver until one is accepted.
func (s *DeviceSession) PersistConfig() error {
	var lastErr error
	for _, cmd := range s.driver.SaveCommands() {
		err := s.run(cmd)
		if err == nil {
			s.log.Debugf("Configuration saved with '%s'", cmd)
			return nil
		}
		s.log.Debugf("Save command '%s' failed: %v", cmd, err)
		lastErr = err
	}
	if lastErr == nil {
		return entities.ErrConfigSaveUnsupported
	}
	return fmt.Errorf("%w: %v", entities.ErrConfigSaveUnsupported, lastErr)
}

// Close disconnects the client. Later calls do nothing.
func (s *DeviceSession) Close() {
	s.closeOnce.Do(s.client.Disconnect)
}
