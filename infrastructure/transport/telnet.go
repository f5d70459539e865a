package transport

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ziutek/telnet"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
)

type dialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// TelnetClient manages a Telnet connection to a switch
type TelnetClient struct {
	conn         *telnet.Conn
	cli          *cli
	config       entities.SwitchConfig
	authSequence []entities.AuthPrompt
	setup        []string
	dial         dialFunc
}

// NewTelnetClient creates a new Telnet client with the given configuration
func NewTelnetClient(cfg entities.SwitchConfig) *TelnetClient {
	return &TelnetClient{
		config: cfg,
		setup:  []string{TerminalLengthCmd},
		dial:   net.DialTimeout,
	}
}

// SetAuthSequence configures the authentication sequence for this client
func (tc *TelnetClient) SetAuthSequence(prompts []entities.AuthPrompt) {
	tc.authSequence = prompts
}

// SetSetupCommands replaces the commands run right after login
func (tc *TelnetClient) SetSetupCommands(commands []string) {
	tc.setup = commands
}

// Connect establishes a Telnet connection and logs in
func (tc *TelnetClient) Connect() error {
	if tc.conn != nil {
		return nil
	}
	addr := net.JoinHostPort(tc.config.Target, strconv.Itoa(tc.config.PortFor(entities.TransportTelnet)))
	rawConn, err := tc.dial("tcp", addr, tc.config.DialTimeout())
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	conn, err := telnet.NewConn(rawConn)
	if err != nil {
		rawConn.Close()
		return fmt.Errorf("failed to start telnet on %s: %w", addr, err)
	}
	log := logging.WithDevice(tc.config.Target).WithField("transport", entities.TransportTelnet)
	tc.conn = conn
	tc.cli = newCLI(newStream(conn, conn, log, tc.config.IsRawOutputEnabled()), tc.config)
	if tc.config.IsDebugEnabled() {
		log.Debugf("Connected to %s", addr)
	}

	if err := tc.login(); err != nil {
		tc.Disconnect()
		return err
	}
	return nil
}

func (tc *TelnetClient) login() error {
	prompts := tc.authSequence
	if len(prompts) == 0 {
		prompts = defaultAuthSequence(tc.config)
	}

	for _, p := range prompts {
		output, err := tc.cli.readUntil(func(text string) bool {
			return strings.Contains(text, p.WaitFor) || loginFailure(text) != ""
		}, p.WaitFor, tc.cli.timeout)
		if err != nil {
			return fmt.Errorf("failed to wait for %s: %w", p.WaitFor, err)
		}
		if hint := loginFailure(output); hint != "" {
			return fmt.Errorf("%w: %s", ErrAuthenticationFailed, hint)
		}
		if p.SendCmd == "" {
			continue
		}
		if err := tc.cli.send(p.SendCmd); err != nil {
			return fmt.Errorf("failed to answer %s: %w", p.WaitFor, err)
		}
		if tc.config.IsDebugEnabled() {
			sent := p.SendCmd
			if p.Secret {
				sent = "********"
			}
			tc.cli.log.Debugf("Sent %s for prompt %s", sent, p.WaitFor)
		}
	}

	shell, err := tc.cli.waitForShell()
	if err != nil {
		return err
	}
	if err := tc.cli.elevate(shell); err != nil {
		return err
	}
	return tc.cli.runSetup(tc.setup)
}

// Disconnect closes the Telnet connection
func (tc *TelnetClient) Disconnect() {
	if tc.conn == nil {
		return
	}
	tc.cli.close()
	tc.conn.Close()
	if tc.config.IsDebugEnabled() {
		tc.cli.log.Debug("Disconnected")
	}
	tc.conn = nil
	tc.cli = nil
}

func (tc *TelnetClient) IsConnected() bool {
	return tc.conn != nil
}

// ExecuteCommand sends a command to the switch and returns its output
func (tc *TelnetClient) ExecuteCommand(cmd string) (string, error) {
	if tc.cli == nil {
		return "", fmt.Errorf("error executing %s: not connected", cmd)
	}
	return tc.cli.execute(cmd)
}
