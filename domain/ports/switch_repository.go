package ports

// SwitchRepository defines the port for raw command-line interaction with a switch
type SwitchRepository interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}
