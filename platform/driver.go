package platform

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/domain/ports"
	"github.com/carlosrabelo/portlabel/platform/dmos"
	"github.com/carlosrabelo/portlabel/platform/ios"
)

// AutoDetect selects the driver by probing the device after login.
const AutoDetect = "auto"

// SwitchDriver defines the behaviour required to support a switching platform.
type SwitchDriver interface {
	Name() string
	Detect(repo ports.SwitchRepository) (bool, error)

	// AuthenticationSequence returns the interactive login prompts for this platform
	AuthenticationSequence(username, password string) []entities.AuthPrompt
	// SessionSetupCommands run once after login, before any change
	SessionSetupCommands() []string

	DescriptionCommands(iface, description string) []string
	ConfigMode() (enter, exit string)
	SaveCommands() []string

	// CommandError returns the offending line when output carries a CLI error
	CommandError(output string) (string, bool)
}

var registry = []SwitchDriver{
	ios.New(),
	dmos.New(),
}

// Get returns a driver by normalized platform name.
func Get(name string) (SwitchDriver, error) {
	normalized := normalizeName(name)
	for _, driver := range registry {
		if driver.Name() == normalized {
			return driver, nil
		}
	}
	return nil, fmt.Errorf("unknown switch platform: %s", name)
}

// Names lists the accepted platform identifiers, auto included.
func Names() []string {
	names := make([]string, 0, len(registry)+1)
	for _, driver := range registry {
		names = append(names, driver.Name())
	}
	return append(names, AutoDetect)
}

// Detect tries all registered drivers until one matches.
func Detect(repo ports.SwitchRepository) (SwitchDriver, error) {
	var lastErr error
	for _, driver := range registry {
		matched, err := driver.Detect(repo)
		if err != nil {
			lastErr = err
			continue
		}
		if matched {
			return driver, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to detect switch platform")
}

// Resolve returns the named driver, probing the device when name is auto.
func Resolve(name string, repo ports.SwitchRepository) (SwitchDriver, error) {
	if normalizeName(name) == AutoDetect {
		return Detect(repo)
	}
	return Get(name)
}

// IsKnown reports whether name is a registered platform or auto.
func IsKnown(name string) bool {
	normalized := normalizeName(name)
	for _, known := range Names() {
		if known == normalized {
			return true
		}
	}
	return false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
