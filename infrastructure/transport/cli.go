package transport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carlosrabelo/portlabel/domain/entities"
)

// promptPrefixLen bounds how much of the hostname is matched, since IOS
// truncates long hostnames in configuration prompts.
const promptPrefixLen = 16

// errOutOfSync is returned for every command after a timed-out command whose
// prompt never showed up, since later output could belong to any command.
var errOutOfSync = errors.New("session out of sync: no prompt after an unanswered command")

// cli drives a prompt-based switch shell over a stream.
type cli struct {
	*stream
	config     entities.SwitchConfig
	timeout    time.Duration
	promptBase string
	broken     error
}

func newCLI(s *stream, cfg entities.SwitchConfig) *cli {
	return &cli{
		stream:  s,
		config:  cfg,
		timeout: cfg.DialTimeout(),
	}
}

// atPrompt reports whether the last line of output is a device prompt.
func (c *cli) atPrompt(text string) bool {
	last := lastLine(text)
	if !strings.HasSuffix(last, PromptPrivileged) && !strings.HasSuffix(last, PromptEnable) {
		return false
	}
	if c.promptBase == "" {
		return true
	}
	base := c.promptBase
	if len(base) > promptPrefixLen {
		base = base[:promptPrefixLen]
	}
	return strings.HasPrefix(last, base)
}

func (c *cli) atPromptOrFailure(text string) bool {
	return c.atPrompt(text) || loginFailure(text) != ""
}

// learnPrompt remembers the hostname part of the prompt ending output.
func (c *cli) learnPrompt(output string) {
	last := lastLine(output)
	last = strings.TrimRight(last, PromptPrivileged+PromptEnable)
	if idx := strings.Index(last, "("); idx > 0 {
		last = last[:idx]
	}
	c.promptBase = last
	if c.config.IsDebugEnabled() {
		c.log.Debugf("Learned prompt %q", c.promptBase)
	}
}

// waitForShell waits for the first prompt after login.
func (c *cli) waitForShell() (string, error) {
	output, err := c.readUntil(c.atPromptOrFailure, "prompt", c.timeout)
	if err != nil {
		return output, err
	}
	if hint := loginFailure(output); hint != "" {
		return output, fmt.Errorf("%w: %s", ErrAuthenticationFailed, hint)
	}
	c.learnPrompt(output)
	return output, nil
}

// elevate enters privileged mode when the shell sits at a user prompt.
func (c *cli) elevate(shellOutput string) error {
	if strings.HasSuffix(lastLine(shellOutput), PromptPrivileged) {
		if c.config.IsDebugEnabled() {
			c.log.Debug("Already in privileged mode")
		}
		return nil
	}
	if c.config.IsDebugEnabled() {
		c.log.Debug("Elevating to privileged mode")
	}
	if err := c.send("enable"); err != nil {
		return fmt.Errorf("failed to send enable command: %w", err)
	}
	output, err := c.readUntil(func(text string) bool {
		return strings.Contains(text, PromptPassword) || c.atPrompt(text)
	}, "enable password prompt", c.timeout)
	if err != nil {
		return err
	}
	if strings.Contains(output, PromptPassword) {
		if err := c.send(c.config.SecretForEnable()); err != nil {
			return fmt.Errorf("failed to send enable password: %w", err)
		}
		output, err = c.readUntil(func(text string) bool {
			return c.atPrompt(text) || strings.Contains(text, PromptPassword) || loginFailure(text) != ""
		}, "privileged prompt", c.timeout)
		if err != nil {
			return err
		}
	}
	if !strings.HasSuffix(lastLine(output), PromptPrivileged) {
		return fmt.Errorf("%w: enable refused", ErrAuthenticationFailed)
	}
	return nil
}

func (c *cli) runSetup(commands []string) error {
	for _, cmd := range commands {
		if _, err := c.execute(cmd); err != nil {
			return err
		}
	}
	return nil
}

// execute sends one line and returns the output between the echo and the prompt.
func (c *cli) execute(cmd string) (string, error) {
	if c.broken != nil {
		return "", fmt.Errorf("cannot execute %s: %w", cmd, c.broken)
	}
	if c.config.IsDebugEnabled() {
		c.log.Debugf("Executing: %s", cmd)
	}
	if err := c.send(cmd); err != nil {
		return "", fmt.Errorf("failed to send command %s: %w", cmd, err)
	}
	output, err := c.readUntil(c.atPrompt, "prompt after "+cmd, c.timeout)
	if err != nil {
		if errors.Is(err, errReadTimeout) {
			c.resync(output)
		}
		return "", fmt.Errorf("error executing %s: %w", cmd, err)
	}
	output = stripEchoAndPrompt(output)
	if c.config.IsRawOutputEnabled() {
		c.log.Debugf("Switch output for '%s':\n%s", cmd, output)
	}
	return output, nil
}

// resync consumes the late reply of a timed-out command so that the next
// command does not read it as its own output.
func (c *cli) resync(pending string) {
	if _, err := c.readFrom(pending, c.atPrompt, "late prompt", c.timeout); err != nil {
		c.log.Warnf("No prompt after timed-out command, session unusable: %v", err)
		c.broken = errOutOfSync
		return
	}
	if c.config.IsDebugEnabled() {
		c.log.Debug("Discarded late output of timed-out command")
	}
}

func stripEchoAndPrompt(output string) string {
	lines := strings.Split(output, "\n")
	if len(lines) > 1 {
		return strings.Join(lines[1:len(lines)-1], "\n")
	}
	return ""
}

func loginFailure(text string) string {
	for _, hint := range entities.LoginFailureHints {
		if strings.Contains(text, hint) {
			return hint
		}
	}
	return ""
}
