package entities

import (
	"testing"
	"time"
)

func TestSwitchConfig_IsDebugEnabled(t *testing.T) {
	tests := []struct {
		name           string
		verbosityLevel int
		expected       bool
	}{
		{name: "verbosity level 0", verbosityLevel: 0, expected: false},
		{name: "verbosity level 1", verbosityLevel: 1, expected: true},
		{name: "verbosity level 2", verbosityLevel: 2, expected: false},
		{name: "verbosity level 3", verbosityLevel: 3, expected: true},
		{name: "verbosity level 4", verbosityLevel: 4, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := SwitchConfig{VerbosityLevel: tt.verbosityLevel}
			if result := config.IsDebugEnabled(); result != tt.expected {
				t.Errorf("IsDebugEnabled() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSwitchConfig_IsRawOutputEnabled(t *testing.T) {
	tests := []struct {
		name           string
		verbosityLevel int
		expected       bool
	}{
		{name: "verbosity level 0", verbosityLevel: 0, expected: false},
		{name: "verbosity level 1", verbosityLevel: 1, expected: false},
		{name: "verbosity level 2", verbosityLevel: 2, expected: true},
		{name: "verbosity level 3", verbosityLevel: 3, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := SwitchConfig{VerbosityLevel: tt.verbosityLevel}
			if result := config.IsRawOutputEnabled(); result != tt.expected {
				t.Errorf("IsRawOutputEnabled() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSwitchConfig_PlatformID(t *testing.T) {
	tests := []struct {
		name           string
		platform       string
		legacyPlatform string
		expected       string
	}{
		{name: "ios platform", platform: "ios", expected: "ios"},
		{name: "uppercase platform", platform: "DMOS", expected: "dmos"},
		{name: "platform with spaces", platform: "  ios  ", expected: "ios"},
		{name: "legacy vendor", legacyPlatform: "DMOS", expected: "dmos"},
		{name: "both empty", expected: "ios"},
		{name: "platform takes precedence", platform: "ios", legacyPlatform: "dmos", expected: "ios"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := SwitchConfig{Platform: tt.platform, LegacyPlatform: tt.legacyPlatform}
			if result := config.PlatformID(); result != tt.expected {
				t.Errorf("PlatformID() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSwitchConfig_SecretForEnable(t *testing.T) {
	cfg := SwitchConfig{Password: "login"}
	if got := cfg.SecretForEnable(); got != "login" {
		t.Errorf("SecretForEnable() = %q, want login password", got)
	}
	cfg.EnablePassword = "enable"
	if got := cfg.SecretForEnable(); got != "enable" {
		t.Errorf("SecretForEnable() = %q, want enable password", got)
	}
}

func TestSwitchConfig_PortFor(t *testing.T) {
	var cfg SwitchConfig
	if got := cfg.PortFor(TransportSSH); got != 22 {
		t.Errorf("default SSH port = %d, want 22", got)
	}
	if got := cfg.PortFor(TransportTelnet); got != 23 {
		t.Errorf("default Telnet port = %d, want 23", got)
	}

	cfg.SSHPort = 2222
	cfg.TelnetPort = 2323
	if got := cfg.PortFor(TransportSSH); got != 2222 {
		t.Errorf("SSH port = %d, want 2222", got)
	}
	if got := cfg.PortFor(TransportTelnet); got != 2323 {
		t.Errorf("Telnet port = %d, want 2323", got)
	}
	if got := cfg.PortFor("netconf"); got != 0 {
		t.Errorf("unknown transport port = %d, want 0", got)
	}
}

func TestSwitchConfig_DialTimeout(t *testing.T) {
	var cfg SwitchConfig
	if cfg.DialTimeout() != DefaultTimeout {
		t.Errorf("DialTimeout() = %v, want %v", cfg.DialTimeout(), DefaultTimeout)
	}
	cfg.Timeout = 5 * time.Second
	if cfg.DialTimeout() != 5*time.Second {
		t.Errorf("DialTimeout() = %v, want 5s", cfg.DialTimeout())
	}
}
