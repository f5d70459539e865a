package ios

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
)

const driverName = "ios"

// Driver implements the SwitchDriver behaviour for Cisco IOS switches.
type Driver struct{}

// New creates a new IOS driver instance.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect inspects the device to determine whether it is running IOS.
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
	return strings.Contains(strings.ToLower(output), "cisco ios"), nil
}

// AuthenticationSequence returns the IOS line login prompts.
func (d *Driver) AuthenticationSequence(username, password string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "Username:", SendCmd: username},
		{WaitFor: "Password:", SendCmd: password, Secret: true},
	}
}

// SessionSetupCommands disables paging.
func (d *Driver) SessionSetupCommands() []string {
	return []string{"terminal length 0"}
}

// DescriptionCommands returns the interface/description pair.
func (d *Driver) DescriptionCommands(iface, description string) []string {
	return []string{
		fmt.Sprintf("interface %s", strings.TrimSpace(iface)),
		fmt.Sprintf("description %s", entities.DescriptionLine(description)),
	}
}

// ConfigMode returns the commands that enter and leave global configuration.
func (d *Driver) ConfigMode() (string, string) {
	return "configure terminal", "end"
}

// SaveCommands returns commands that persist the running configuration.
func (d *Driver) SaveCommands() []string {
	return []string{"write memory"}
}

// CommandError reports the first line of output flagged by the IOS parser.
func (d *Driver) CommandError(output string) (string, bool) {
	return commandError(output)
}
