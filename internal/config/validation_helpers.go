package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

// convertValidationError normalizes validator errors into validation errors
// named after the YAML keys.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return apperrors.NewValidationError(field, msg, err)
	}

	return apperrors.NewValidationError("config", err.Error(), err)
}

var fieldNames = map[string]string{
	"baseurl":       "base_url",
	"storagekey":    "storage_key",
	"humanreadable": "human_readable",
}

// yamlishFieldName turns Config.API.BaseURL into api.base_url.
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}

	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.ToLower(part)
		if mapped, ok := fieldNames[name]; ok {
			name = mapped
		}
		lowered = append(lowered, name)
	}
	return strings.Join(lowered, ".")
}
