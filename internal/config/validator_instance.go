package config

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/recipedia/internal/storage"
	"github.com/alexisbeaulieu97/recipedia/internal/theme"
	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	namespacePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("theme_mode", func(fl validator.FieldLevel) bool {
			_, err := theme.ParseMode(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("storage_driver", func(fl validator.FieldLevel) bool {
			value := storage.Driver(strings.ToLower(fl.Field().String()))
			for _, d := range storage.Drivers() {
				if d == value {
					return true
				}
			}
			return false
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			_, err := zerolog.ParseLevel(strings.ToLower(fl.Field().String()))
			return err == nil && fl.Field().String() != ""
		})

		_ = v.RegisterValidation("namespace", func(fl validator.FieldLevel) bool {
			return namespacePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// ValidateConfig checks cfg field by field.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return apperrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}
