package transport

import (
	"fmt"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
	"github.com/carlosrabelo/portlabel/platform"
)

// ClientFactory creates an unconnected client for a transport
type ClientFactory func(cfg entities.SwitchConfig, transport string) (Client, error)

// Opener opens device sessions. Each call dials a fresh connection; sessions
// are never cached or shared.
type Opener struct {
	newClient ClientFactory
}

// NewOpener creates an opener backed by the SSH and Telnet clients
func NewOpener() *Opener {
	return &Opener{newClient: NewClient}
}

// NewOpenerWithFactory creates an opener using a custom client factory
func NewOpenerWithFactory(factory ClientFactory) *Opener {
	return &Opener{newClient: factory}
}

// Open connects with a single strategy and binds the platform driver. With
// platform auto the device is queried after login.
func (o *Opener) Open(cfg entities.SwitchConfig, strategy entities.Strategy) (ports.Session, error) {
	client, err := o.newClient(cfg, strategy.Transport)
	if err != nil {
		return nil, err
	}

	name := cfg.PlatformID()
	auth, setup := defaultAuthSequence(cfg), []string(nil)
	if name != platform.AutoDetect {
		known, err := platform.Get(name)
		if err != nil {
			return nil, err
		}
		auth, setup = known.AuthenticationSequence(cfg.Username, cfg.Password), known.SessionSetupCommands()
	}
	if configurable, ok := client.(AuthConfigurable); ok {
		configurable.SetAuthSequence(auth)
		if setup != nil {
			configurable.SetSetupCommands(setup)
		}
	}

	if err := client.Connect(); err != nil {
		return nil, err
	}

	driver, err := platform.Resolve(name, NewSwitchAdapter(client))
	if err != nil {
		client.Disconnect()
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	if name == platform.AutoDetect {
		logging.WithDevice(cfg.Target).Infof("Detected platform %s", driver.Name())
	}
	return NewDeviceSession(client, driver, strategy, cfg), nil
}
