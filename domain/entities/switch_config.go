package entities

import (
	"strings"
	"time"
)

// SwitchConfig defines the configuration for a single switch
type SwitchConfig struct {
	Target         string        `yaml:"target"`
	Platform       string        `yaml:"platform"`
	LegacyPlatform string        `yaml:"vendor"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	EnablePassword string        `yaml:"enable_password"`
	Protocols      []string      `yaml:"protocols"`
	SSHPort        int           `yaml:"ssh_port"`
	TelnetPort     int           `yaml:"telnet_port"`
	Timeout        time.Duration `yaml:"timeout"`
	VerbosityLevel int           `yaml:"-"`
}

// IsDebugEnabled returns true if debug logs are enabled
func (sc SwitchConfig) IsDebugEnabled() bool {
	return sc.VerbosityLevel == 1 || sc.VerbosityLevel == 3
}

// IsRawOutputEnabled returns true if raw switch output is enabled
func (sc SwitchConfig) IsRawOutputEnabled() bool {
	return sc.VerbosityLevel == 2 || sc.VerbosityLevel == 3
}

// PlatformID returns the normalized platform name, falling back to the legacy
// vendor key and finally to ios.
func (sc SwitchConfig) PlatformID() string {
	platform := strings.ToLower(strings.TrimSpace(sc.Platform))
	if platform == "" {
		platform = strings.ToLower(strings.TrimSpace(sc.LegacyPlatform))
	}
	if platform == "" {
		return "ios"
	}
	return platform
}

// SecretForEnable returns the enable password, or the login password when no
// dedicated enable secret is configured.
func (sc SwitchConfig) SecretForEnable() string {
	if sc.EnablePassword != "" {
		return sc.EnablePassword
	}
	return sc.Password
}

// PortFor returns the TCP port used by the given transport.
func (sc SwitchConfig) PortFor(transport string) int {
	switch transport {
	case TransportSSH:
		if sc.SSHPort > 0 {
			return sc.SSHPort
		}
		return 22
	case TransportTelnet:
		if sc.TelnetPort > 0 {
			return sc.TelnetPort
		}
		return 23
	}
	return 0
}

// DialTimeout returns the per-operation timeout, defaulting to 30 seconds.
func (sc SwitchConfig) DialTimeout() time.Duration {
	if sc.Timeout > 0 {
		return sc.Timeout
	}
	return DefaultTimeout
}
