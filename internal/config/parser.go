package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads the configuration at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, apperrors.NewParseError(path, extractLine(err), err)
			}
		case optional && errors.Is(err, fs.ErrNotExist):
		default:
			return nil, apperrors.NewParseError(path, 0, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig loads a configuration file that must exist.
func ParseConfig(path string) (*Config, error) {
	return Load(path, false)
}

// ApplyEnv overlays RECIPEDIA_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	err := envdecode.Decode(cfg)
	if err == nil || errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil
	}
	return apperrors.NewValidationError("env", fmt.Sprintf("invalid environment override: %v", err), err)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
