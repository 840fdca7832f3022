package category

import (
	"fmt"

	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/pkg/response"
)

// ValidateProperties checks a post's property map against the owning
// category's declared schema. Returned field errors use the
// "properties.<name>" form; an empty slice means the map is valid.
func ValidateProperties(category *models.CategoryModel, props models.PropertyMap) []response.FieldError {
	var errs []response.FieldError

	declared := make(map[string]models.CategoryProperty, len(category.Properties))
	for _, p := range category.Properties {
		declared[p.Name] = p
	}

	for _, p := range category.Properties {
		value, present := props[p.Name]
		if !present || value == nil {
			if p.Required {
				errs = append(errs, propError(p.Name, "is required", nil))
			}
			continue
		}
		if msg := checkValue(p, value); msg != "" {
			errs = append(errs, propError(p.Name, msg, value))
		}
	}

	for name, value := range props {
		if _, ok := declared[name]; !ok {
			errs = append(errs, propError(name, "is not declared for this category", value))
		}
	}
	return errs
}

func checkValue(p models.CategoryProperty, value interface{}) string {
	switch p.Type {
	case models.PropertyTypeText:
		if _, ok := value.(string); !ok {
			return "must be a string"
		}
	case models.PropertyTypeNumber:
		if !isNumber(value) {
			return "must be a number"
		}
	case models.PropertyTypeBoolean:
		if _, ok := value.(bool); !ok {
			return "must be a boolean"
		}
	case models.PropertyTypeSelect:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if !contains(p.Options, s) {
			return fmt.Sprintf("must be one of %v", p.Options)
		}
	case models.PropertyTypeMultiselect:
		items, ok := toStringSlice(value)
		if !ok {
			return "must be a list of strings"
		}
		for _, item := range items {
			if !contains(p.Options, item) {
				return fmt.Sprintf("contains %q which is not one of %v", item, p.Options)
			}
		}
	default:
		return fmt.Sprintf("has unknown property type %q", p.Type)
	}
	return ""
}

func isNumber(value interface{}) bool {
	switch value.(type) {
	case float64, float32, int, int32, int64:
		return true
	}
	return false
}

func toStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func contains(options []string, s string) bool {
	for _, opt := range options {
		if opt == s {
			return true
		}
	}
	return false
}

func propError(name, msg string, value interface{}) response.FieldError {
	return response.FieldError{
		Field:   "properties." + name,
		Message: fmt.Sprintf("property %q %s", name, msg),
		Value:   value,
	}
}
