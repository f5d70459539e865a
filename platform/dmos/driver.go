package dmos

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
)

const driverName = "dmos"

// Driver implements SwitchDriver semantics for Datacom DmOS switches.
type Driver struct{}

// New creates a new DmOS driver.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect determines if the connected device is running DmOS.
func (d *Driver) Detect(repo ports.SwitchRepository) (bool, error) {
	if !repo.IsConnected() {
		if err := repo.Connect(); err != nil {
			return false, err
		}
	}
	output, err := repo.ExecuteCommand("show version")
	if err != nil {
		return false, err
	}
	lower := strings.ToLower(output)
	return strings.Contains(lower, "dmos") || strings.Contains(lower, "datacom"), nil
}

// AuthenticationSequence returns the DmOS login prompts.
func (d *Driver) AuthenticationSequence(username, password string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "login:", SendCmd: username},
		{WaitFor: "Password:", SendCmd: password, Secret: true},
	}
}

// SessionSetupCommands disables paging.
func (d *Driver) SessionSetupCommands() []string {
	return []string{"terminal length 0"}
}

// DescriptionCommands returns the interface/description pair for a DmOS port.
func (d *Driver) DescriptionCommands(iface, description string) []string {
	return []string{
		fmt.Sprintf("interface %s", normalizePort(iface)),
		fmt.Sprintf("description %s", entities.DescriptionLine(description)),
	}
}

// ConfigMode returns the commands that enter and leave configuration mode.
func (d *Driver) ConfigMode() (string, string) {
	return "configure terminal", "end"
}

// SaveCommands persists the running configuration.
func (d *Driver) SaveCommands() []string {
	return []string{"copy running-config startup-config", "save"}
}

// CommandError reports the first line of output that carries a DmOS error.
func (d *Driver) CommandError(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, keyword := range cmdErrorHints {
			if strings.Contains(lower, keyword) {
				return trimmed, true
			}
		}
	}
	return "", false
}

var cmdErrorHints = []string{"unknown command", "invalid", "incomplete", "syntax error", "error:"}

// normalizePort expands short port names to the DmOS "ethernet x/y" form.
func normalizePort(iface string) string {
	trimmed := strings.TrimSpace(strings.ToLower(iface))
	if strings.HasPrefix(trimmed, "ethernet") || strings.Contains(trimmed, "-ethernet") {
		return trimmed
	}
	return "ethernet " + trimmed
}
