package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// File names fixed by the Sunshine/Moonlight ecosystem. Everything that
// consumes them takes them as options; these are the single source.
const (
	AppsFileName  = "apps.json"
	StateFileName = "sunshine_state.json"
	IDFileSuffix  = ".moonlight"
	UUIDFileName  = "Moonlight.uuid"
)

// Config represents the application configuration
type Config struct {
	// SourceFolder, when set, is a Sunshine config directory holding both
	// apps.json and sunshine_state.json. When empty, JSONFilePath points at
	// a standalone app list.
	SourceFolder    string `koanf:"source_folder"`
	JSONFilePath    string `koanf:"json_file_path"`
	OutputDirectory string `koanf:"output_directory"`
	UseIndexInID    bool   `koanf:"use_index_in_id"`
	ClearOutput     bool   `koanf:"clear_output_folder"`
	LogLevel        string `koanf:"log_level"`
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"source_folder":       "",
		"json_file_path":      AppsFileName,
		"output_directory":    "./moonlight_files",
		"use_index_in_id":     false,
		"clear_output_folder": true,
		"log_level":           "info",
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try to load from default locations
		defaultPaths := []string{"./moonlightgen.toml", "$HOME/.moonlightgen.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix MOONLIGHTGEN_
	k.Load(env.Provider("MOONLIGHTGEN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "MOONLIGHTGEN_"))
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// AppsPath returns the path of the app list document.
func (c *Config) AppsPath() string {
	if c.SourceFolder != "" {
		return filepath.Join(c.SourceFolder, AppsFileName)
	}
	return c.JSONFilePath
}

// StatePath returns the path of the Sunshine state document carrying the
// host UUID: inside the source folder, or next to a standalone app list.
func (c *Config) StatePath() string {
	if c.SourceFolder != "" {
		return filepath.Join(c.SourceFolder, StateFileName)
	}
	return filepath.Join(filepath.Dir(c.JSONFilePath), StateFileName)
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	// Create sample configuration
	sampleConfig := `# moonlightgen configuration

# Sunshine config directory holding apps.json and sunshine_state.json.
# Leave empty to read a standalone app list via json_file_path instead.
source_folder = ""

# Standalone app list, used only when source_folder is empty.
json_file_path = "apps.json"

# Where the .moonlight identifier files and Moonlight.uuid are written.
output_directory = "./moonlight_files"

# Fold the app's list position into its identifier. Needed when the app
# list may contain duplicate name/image entries.
use_index_in_id = false

# Remove stale .moonlight files and Moonlight.uuid before writing.
clear_output_folder = true

# zerolog level: trace, debug, info, warn, error
log_level = "info"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.SourceFolder == "" && config.JSONFilePath == "" {
		return fmt.Errorf("either source_folder or json_file_path is required")
	}
	if config.OutputDirectory == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}
