package transport

import (
	"fmt"
	"io"
	"net"
	"strconv"

	"golang.org/x/crypto/ssh"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
)

// SSHClient manages an interactive SSH shell on a switch
type SSHClient struct {
	config  entities.SwitchConfig
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	cli     *cli
	setup   []string
	dial    dialFunc
}

// NewSSHClient creates a new SSH client with the given configuration
func NewSSHClient(cfg entities.SwitchConfig) *SSHClient {
	return &SSHClient{
		config: cfg,
		setup:  []string{TerminalLengthCmd},
		dial:   net.DialTimeout,
	}
}

// SetAuthSequence is a no-op: SSH authenticates before the shell starts.
func (sc *SSHClient) SetAuthSequence(prompts []entities.AuthPrompt) {}

// SetSetupCommands replaces the commands run right after login
func (sc *SSHClient) SetSetupCommands(commands []string) {
	sc.setup = commands
}

func sshClientConfig(cfg entities.SwitchConfig) *ssh.ClientConfig {
	password := cfg.Password
	return &ssh.ClientConfig{
		User: cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range questions {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         cfg.DialTimeout(),
	}
}

// Connect opens the SSH connection, starts a shell and reaches privileged mode
func (sc *SSHClient) Connect() error {
	if sc.IsConnected() {
		return nil
	}
	addr := net.JoinHostPort(sc.config.Target, strconv.Itoa(sc.config.PortFor(entities.TransportSSH)))
	rawConn, err := sc.dial("tcp", addr, sc.config.DialTimeout())
	if err != nil {
		return fmt.Errorf("failed to connect to %s via SSH: %w", addr, err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(rawConn, addr, sshClientConfig(sc.config))
	if err != nil {
		rawConn.Close()
		return fmt.Errorf("failed to establish SSH client connection to %s: %w", addr, err)
	}
	client := ssh.NewClient(clientConn, chans, reqs)

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to create SSH session for %s: %w", addr, err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 9600,
		ssh.TTY_OP_OSPEED: 9600,
	}
	if err := session.RequestPty("vt100", 80, 40, modes); err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to request PTY for %s: %w", addr, err)
	}
	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to get stdin pipe for %s: %w", addr, err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to get stdout pipe for %s: %w", addr, err)
	}
	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to start shell for %s: %w", addr, err)
	}

	log := logging.WithDevice(sc.config.Target).WithField("transport", entities.TransportSSH)
	sc.client = client
	sc.session = session
	sc.stdin = stdin
	sc.cli = newCLI(newStream(stdout, stdin, log, sc.config.IsRawOutputEnabled()), sc.config)
	if sc.config.IsDebugEnabled() {
		log.Debugf("Connected to %s via SSH", addr)
	}

	shell, err := sc.cli.waitForShell()
	if err == nil {
		err = sc.cli.elevate(shell)
	}
	if err == nil {
		err = sc.cli.runSetup(sc.setup)
	}
	if err != nil {
		sc.Disconnect()
		return err
	}
	return nil
}

func (sc *SSHClient) Disconnect() {
	if sc.cli != nil {
		sc.cli.close()
	}
	if sc.session != nil {
		sc.session.Close()
		sc.session = nil
	}
	if sc.client != nil {
		sc.client.Close()
		sc.client = nil
	}
	if sc.cli != nil && sc.config.IsDebugEnabled() {
		sc.cli.log.Debug("Disconnected")
	}
	sc.stdin = nil
	sc.cli = nil
}

func (sc *SSHClient) IsConnected() bool {
	return sc.session != nil && sc.client != nil
}

func (sc *SSHClient) ExecuteCommand(cmd string) (string, error) {
	if sc.cli == nil {
		return "", fmt.Errorf("error executing %s: not connected", cmd)
	}
	return sc.cli.execute(cmd)
}
