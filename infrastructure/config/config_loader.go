package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/carlosrabelo/portlabel/domain/entities"
	"github.com/carlosrabelo/portlabel/infrastructure/logging"
	"github.com/carlosrabelo/portlabel/platform"
)

// TableConfig locates the change columns inside the workbook. Keys left
// out of the file keep their default; header_rows: 0 is a valid setting.
type TableConfig struct {
	Sheet             string `yaml:"sheet"`
	Encoding          string `yaml:"encoding"`
	HeaderRows        *int   `yaml:"header_rows"`
	DescriptionColumn int    `yaml:"description_column"`
	InterfaceColumn   int    `yaml:"interface_column"`
	StatusColumn      int    `yaml:"status_column"`
}

// Layout returns the configured layout with defaults for the unset keys.
func (t TableConfig) Layout() entities.TableLayout {
	layout := entities.DefaultTableLayout()
	if t.HeaderRows != nil {
		layout.HeaderRows = *t.HeaderRows
	}
	if t.DescriptionColumn != 0 {
		layout.DescriptionColumn = t.DescriptionColumn
	}
	if t.InterfaceColumn != 0 {
		layout.InterfaceColumn = t.InterfaceColumn
	}
	if t.StatusColumn != 0 {
		layout.StatusColumn = t.StatusColumn
	}
	return layout
}

// SNMPConfig controls the optional ifAlias read-back
type SNMPConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Community string        `yaml:"community"`
	Port      int           `yaml:"port"`
	Version   string        `yaml:"version"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Config defines the global configuration
type Config struct {
	Platform       string                  `yaml:"platform"`
	LegacyVendor   string                  `yaml:"vendor"`
	Username       string                  `yaml:"username"`
	Password       string                  `yaml:"password"`
	EnablePassword string                  `yaml:"enable_password"`
	Protocols      []string                `yaml:"protocols"`
	SSHPort        int                     `yaml:"ssh_port"`
	TelnetPort     int                     `yaml:"telnet_port"`
	Timeout        time.Duration           `yaml:"timeout"`
	Table          TableConfig             `yaml:"table"`
	SNMP           SNMPConfig              `yaml:"snmp"`
	Switches       []entities.SwitchConfig `yaml:"switches"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	if err := cfg.normalize(); err != nil {
		panic(err)
	}
	return cfg
}

func validatePlatform(name string) error {
	if !platform.IsKnown(name) {
		return fmt.Errorf("platform %s is invalid, must be one of %s", name, strings.Join(platform.Names(), ", "))
	}
	return nil
}

func validatePort(port int, key string) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("%s %d is out of range", key, port)
	}
	return nil
}

// Load loads and validates configuration from a YAML file
func Load(yamlFile string) (*Config, error) {
	data, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", yamlFile, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	logging.Logger.Debugf("Loaded configuration from %s with %d switch entries", yamlFile, len(cfg.Switches))
	return &cfg, nil
}

func (c *Config) normalize() error {
	primary := c.Platform
	if primary == "" {
		primary = c.LegacyVendor
	}
	c.Platform = strings.ToLower(strings.TrimSpace(primary))
	if c.Platform == "" {
		c.Platform = "ios"
	}
	if err := validatePlatform(c.Platform); err != nil {
		return err
	}

	if _, err := entities.StrategiesFor(c.Protocols); err != nil {
		return err
	}
	if err := validatePort(c.SSHPort, "ssh_port"); err != nil {
		return err
	}
	if err := validatePort(c.TelnetPort, "telnet_port"); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %s must not be negative", c.Timeout)
	}

	if err := c.Table.Layout().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if c.Table.Encoding != "" {
		if _, err := htmlindex.Get(c.Table.Encoding); err != nil {
			return fmt.Errorf("table encoding %q is not supported", c.Table.Encoding)
		}
	}

	if err := c.SNMP.normalize(); err != nil {
		return err
	}

	for i := range c.Switches {
		if err := c.mergeSwitch(&c.Switches[i], i); err != nil {
			return err
		}
	}
	return nil
}

func (s *SNMPConfig) normalize() error {
	if s.Community == "" {
		s.Community = "public"
	}
	if s.Port == 0 {
		s.Port = 161
	}
	if err := validatePort(s.Port, "snmp port"); err != nil {
		return err
	}
	s.Version = strings.ToLower(strings.TrimSpace(s.Version))
	switch s.Version {
	case "":
		s.Version = "2c"
	case "1", "2c":
	default:
		return fmt.Errorf("snmp version %s is invalid, must be '1' or '2c'", s.Version)
	}
	if s.Timeout <= 0 {
		s.Timeout = 5 * time.Second
	}
	return nil
}

// mergeSwitch fills empty per-switch fields from the global values.
func (c *Config) mergeSwitch(sw *entities.SwitchConfig, i int) error {
	sw.Target = strings.TrimSpace(sw.Target)
	if sw.Target == "" {
		return fmt.Errorf("target is required for switch %d", i)
	}

	raw := sw.Platform
	if raw == "" {
		raw = sw.LegacyPlatform
	}
	sw.Platform = strings.ToLower(strings.TrimSpace(raw))
	if sw.Platform == "" {
		sw.Platform = c.Platform
	}
	if err := validatePlatform(sw.Platform); err != nil {
		return fmt.Errorf("invalid platform for switch %s: %w", sw.Target, err)
	}

	if len(sw.Protocols) == 0 {
		sw.Protocols = c.Protocols
	}
	if _, err := entities.StrategiesFor(sw.Protocols); err != nil {
		return fmt.Errorf("invalid protocols for switch %s: %w", sw.Target, err)
	}
	if sw.Username == "" {
		sw.Username = c.Username
	}
	if sw.Password == "" {
		sw.Password = c.Password
	}
	if sw.EnablePassword == "" {
		sw.EnablePassword = c.EnablePassword
	}
	if sw.SSHPort == 0 {
		sw.SSHPort = c.SSHPort
	}
	if sw.TelnetPort == 0 {
		sw.TelnetPort = c.TelnetPort
	}
	if err := validatePort(sw.SSHPort, "ssh_port for switch "+sw.Target); err != nil {
		return err
	}
	if err := validatePort(sw.TelnetPort, "telnet_port for switch "+sw.Target); err != nil {
		return err
	}
	if sw.Timeout == 0 {
		sw.Timeout = c.Timeout
	}
	return nil
}

// SwitchFor returns the settings for target: its own entry when one exists,
// otherwise the global values.
func (c *Config) SwitchFor(target string) entities.SwitchConfig {
	target = strings.TrimSpace(target)
	for _, sw := range c.Switches {
		if sw.Target == target {
			return sw
		}
	}
	return entities.SwitchConfig{
		Target:         target,
		Platform:       c.Platform,
		Username:       c.Username,
		Password:       c.Password,
		EnablePassword: c.EnablePassword,
		Protocols:      c.Protocols,
		SSHPort:        c.SSHPort,
		TelnetPort:     c.TelnetPort,
		Timeout:        c.Timeout,
	}
}
