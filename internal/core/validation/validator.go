package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, "; ")
}

// FieldError builds a single field-level validation failure.
func FieldError(field, message string) *ValidationErrors {
	return &ValidationErrors{Errors: []ValidationError{{Field: field, Message: message}}}
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCustomFields checks admin-defined field values against a JSON
// Schema derived from the current catalog before the mutation is proxied
// upstream. A catalog without custom columns allows any data.
func (v *Validator) ValidateCustomFields(data map[string]interface{}, cat *catalog.Catalog) error {
	schema := SchemaFromCatalog(cat)
	if schema == nil {
		return nil
	}
	return v.Validate(data, schema)
}

func (v *Validator) Validate(data map[string]interface{}, schema map[string]interface{}) error {
	if len(schema) == 0 {
		// No schema defined, allow any data
		return nil
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return err
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(dataJSON),
	)
	if err != nil {
		return err
	}

	if !result.Valid() {
		var validationErrors []ValidationError
		for _, desc := range result.Errors() {
			validationErrors = append(validationErrors, ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return &ValidationErrors{Errors: validationErrors}
	}

	return nil
}

// SchemaFromCatalog derives a JSON Schema for the custom:<name> columns:
// number columns accept numbers or numeric strings (the backend stores
// both), select columns with known options become enums, everything else is
// a free string. Returns nil when the catalog has no custom columns.
func SchemaFromCatalog(cat *catalog.Catalog) map[string]interface{} {
	properties := map[string]interface{}{}

	for _, col := range cat.Columns {
		name, ok := strings.CutPrefix(col.Key, "custom:")
		if !ok {
			continue
		}

		var prop map[string]interface{}
		switch {
		case col.FilterType == catalog.FilterNumber:
			prop = map[string]interface{}{"type": []string{"number", "string"}}
		case col.FilterType == catalog.FilterSelect && len(col.Options) > 0:
			prop = map[string]interface{}{"enum": col.Options}
		default:
			prop = map[string]interface{}{"type": "string"}
		}
		properties[name] = prop
	}

	if len(properties) == 0 {
		return nil
	}

	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
}

func IsValidationError(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

func GetValidationErrors(err error) *ValidationErrors {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
