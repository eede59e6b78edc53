package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultGitBinary = "git"

	// ConfigEnvVar names the environment variable that points at a settings file.
	ConfigEnvVar = "SUBCOPY_CONFIG"
)

// Settings is the top-level configuration for subcopy.
type Settings struct {
	Git  GitSettings  `yaml:"git"`
	Copy CopySettings `yaml:"copy"`
}

// GitSettings configures how the git executable is invoked.
type GitSettings struct {
	Binary string `yaml:"binary"` // Name on $PATH, absolute path, or ${ENV_VAR}
}

// CopySettings configures the tree copy.
type CopySettings struct {
	PreserveMetadata bool `yaml:"preserve_metadata"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no file is found.
func DefaultSettings() *Settings {
	return &Settings{
		Git:  GitSettings{Binary: defaultGitBinary},
		Copy: CopySettings{PreserveMetadata: true},
	}
}

// NewSettings reads and parses a settings file on top of the defaults,
// expanding environment variables.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, unmarshalErr)
	}

	settings.Git.Binary = expandEnv(settings.Git.Binary)

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// NewSettingsFromEnvironment loads the file named by SUBCOPY_CONFIG, or the
// first file found in the standard locations, or falls back to the defaults.
func NewSettingsFromEnvironment() (*Settings, error) {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		logger.Debugf("Using config file from %s: %s", ConfigEnvVar, path)
		return NewSettings(path)
	}

	path, err := FindConfigFile()
	if err != nil {
		logger.Debug("No config file found, using defaults")
		return DefaultSettings(), nil
	}

	logger.Debugf("Using config file: %s", path)
	return NewSettings(path)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".subcopy.yaml",
		".subcopy.yml",
		"subcopy.yaml",
		"subcopy.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv expands ${VAR} references, warning about unset variables.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if settings.Git.Binary == "" {
		return errors.New("git.binary must not be empty (set it inline or via ${ENV_VAR})")
	}
	return nil
}
