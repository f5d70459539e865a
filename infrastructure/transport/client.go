package transport

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

const (
	BufferSize        = 4096
	PromptUsername    = "Username:"
	PromptPassword    = "Password:"
	PromptEnable      = ">"
	PromptPrivileged  = "#"
	TerminalLengthCmd = "terminal length 0"
)

// ErrAuthenticationFailed is returned when the device refuses the credentials
var ErrAuthenticationFailed = errors.New("authentication failed")

// Client is a line-oriented CLI connection to a switch
type Client interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}

// AuthConfigurable allows setting login behaviour after client creation
type AuthConfigurable interface {
	SetAuthSequence(prompts []entities.AuthPrompt)
	SetSetupCommands(commands []string)
}

// NewClient creates an unconnected client for the named transport
func NewClient(cfg entities.SwitchConfig, transport string) (Client, error) {
	switch transport {
	case entities.TransportSSH:
		return NewSSHClient(cfg), nil
	case entities.TransportTelnet:
		return NewTelnetClient(cfg), nil
	}
	return nil, fmt.Errorf("unsupported transport %q", transport)
}

func defaultAuthSequence(cfg entities.SwitchConfig) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: PromptUsername, SendCmd: cfg.Username},
		{WaitFor: PromptPassword, SendCmd: cfg.Password, Secret: true},
	}
}

// classifyError maps a transport error onto a command failure for one line.
func classifyError(cmd string, err error) *entities.CommandFailure {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return entities.NewCommandFailure(entities.FailureTimeout, cmd, err.Error())
	}
	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return entities.NewCommandFailure(entities.FailureTimeout, cmd, err.Error())
	}
	return entities.NewCommandFailure(entities.FailureTransport, cmd, err.Error())
}
