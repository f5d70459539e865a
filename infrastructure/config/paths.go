package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the configuration file looked up in the search path
const FileName = "portlabel.yaml"

// SearchPaths returns the candidate configuration files, most specific first
func SearchPaths() []string {
	paths := []string{FileName}
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			paths = append(paths, filepath.Join(appData, "portlabel", FileName))
		}
		if programData := os.Getenv("ProgramData"); programData != "" {
			paths = append(paths, filepath.Join(programData, "portlabel", FileName))
		}
	default:
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			paths = append(paths, filepath.Join(configHome, "portlabel", FileName))
		} else if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".config", "portlabel", FileName))
		}
		paths = append(paths, filepath.Join("/etc", "portlabel", FileName))
	}
	return paths
}

// Find returns the configuration file to use. An explicit path must exist;
// otherwise the first existing search path wins and "" means none was found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("configuration file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	return findIn(SearchPaths())
}

func findIn(paths []string) (string, error) {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// LoadOrDefault loads the located file, or the defaults when there is none
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
