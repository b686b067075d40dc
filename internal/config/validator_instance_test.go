package config

import (
	"testing"
)

func TestGetValidator(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	// Should return the same instance (singleton)
	if v1 != v2 {
		t.Error("GetValidator should return the same instance (singleton pattern)")
	}
}

func TestCustomValidations(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		tag      string
		value    string
		expected bool
	}{
		{"light theme", "theme_mode", "light", true},
		{"system theme", "theme_mode", "system", true},
		{"unknown theme", "theme_mode", "sepia", false},

		{"file driver", "storage_driver", "file", true},
		{"sqlite driver", "storage_driver", "sqlite", true},
		{"memory driver", "storage_driver", "memory", true},
		{"uppercase driver", "storage_driver", "SQLite", true},
		{"redis driver", "storage_driver", "redis", false},

		{"debug level", "log_level", "debug", true},
		{"warn level", "log_level", "warn", true},
		{"empty level", "log_level", "", false},
		{"bogus level", "log_level", "loud", false},

		{"plain namespace", "namespace", "recipedia", true},
		{"dotted namespace", "namespace", "team.kitchen-2", true},
		{"colon namespace", "namespace", "a:b", false},
		{"leading dash", "namespace", "-x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			got := err == nil

			if got != tt.expected {
				t.Errorf("%s(%q) = %v, want %v (error: %v)", tt.tag, tt.value, got, tt.expected, err)
			}
		})
	}
}
