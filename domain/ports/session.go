package ports

import "github.com/carlosrabelo/portlabel/domain/entities"

// Session is an opened, serial management channel to one device.
type Session interface {
	// Protocol reports the negotiation slot that opened the session.
	Protocol() entities.Protocol
	// Transport reports the wire transport ("ssh" or "telnet").
	Transport() string
	// DescriptionCommands renders the vendor two-line pattern for one change.
	DescriptionCommands(iface, description string) []string
	// Apply submits the lines as one configuration transaction.
	Apply(commands []string) error
	// PersistConfig saves the running configuration on the device.
	PersistConfig() error
	// Close releases the session. Calling it twice is a no-op.
	Close()
}

// SessionOpener opens a session to a device with a single strategy.
type SessionOpener interface {
	Open(cfg entities.SwitchConfig, strategy entities.Strategy) (Session, error)
}
