package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	validYAML := `environment: development
api:
  base_url: "http://localhost:9000/api/json/v1/1"
  timeout: 3s
storage:
  driver: sqlite
  namespace: kitchen
theme:
  default: dark
log:
  level: debug
  file: /tmp/recipedia.log
`

	invalidYAML := `api:
  base_url: [1, 2]
`

	badDriver := `storage:
  driver: redis
`

	badTheme := `theme:
  default: sepia
`

	badURL := `api:
  base_url: "not a url"
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid configuration is parsed over defaults",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				require.True(t, cfg.Development())
				require.Equal(t, "http://localhost:9000/api/json/v1/1", cfg.API.BaseURL)
				require.Equal(t, 3*time.Second, cfg.API.Timeout)
				require.Equal(t, "sqlite", cfg.Storage.Driver)
				require.Equal(t, "kitchen", cfg.Storage.Namespace)
				require.Equal(t, "dark", cfg.Theme.Default)
				require.Equal(t, "recipedia-ui-theme", cfg.Theme.StorageKey)
				require.Equal(t, "debug", cfg.Log.Level)
			},
		},
		{
			name:     "invalid yaml returns parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var parseErr *apperrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Message, "cannot unmarshal")
				require.Equal(t, 2, parseErr.Line)
			},
		},
		{
			name:     "unknown storage driver is rejected",
			contents: badDriver,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *apperrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "storage.driver", validationErr.Field)
			},
		},
		{
			name:     "unknown theme is rejected",
			contents: badTheme,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *apperrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "theme.default", validationErr.Field)
			},
		},
		{
			name:     "base url must be http",
			contents: badURL,
			assert: func(t *testing.T, cfg *Config, err error) {
				var validationErr *apperrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "api.base_url", validationErr.Field)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempConfig(t, tc.contents)
			cfg, err := ParseConfig(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	_, err = Load(path, false)
	var parseErr *apperrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeTempConfig(t, "log:\n  level: warn\n")
	t.Setenv("RECIPEDIA_LOG_LEVEL", "debug")
	t.Setenv("RECIPEDIA_STORAGE_DRIVER", "memory")
	t.Setenv("RECIPEDIA_API_TIMEOUT", "250ms")
	t.Setenv("RECIPEDIA_TELEMETRY_ENABLED", "true")

	cfg, err := ParseConfig(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, 250*time.Millisecond, cfg.API.Timeout)
	require.True(t, cfg.Telemetry.Enabled)
}

func TestInvalidEnvironmentOverride(t *testing.T) {
	t.Setenv("RECIPEDIA_API_TIMEOUT", "soon")

	_, err := Load("", true)
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "env", validationErr.Field)
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, ValidateConfig(Default()))
	require.Error(t, ValidateConfig(nil))
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
