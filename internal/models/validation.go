package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/university-registry/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldCategories routes violations of money and grade fields away from the generic validation category.
var fieldCategories = map[string]*appErrors.Error{
	"gpa":             appErrors.ErrGrade,
	"base_salary":     appErrors.ErrPayment,
	"research_grants": appErrors.ErrPayment,
	"budget":          appErrors.ErrPayment,
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.CodeValidation, "invalid input")
	}
	fe := fieldErrs[0]
	return appErrors.Clone(categoryFor(fe.Field()), describe(fieldPath(fe), fe.Tag(), fe.Param(), fe.Value()))
}

// validateField checks a single value, as setters do.
func validateField(field string, value interface{}, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.CodeValidation, "invalid input")
	}
	fe := fieldErrs[0]
	return appErrors.Clone(categoryFor(field), describe(field, fe.Tag(), fe.Param(), value))
}

func categoryFor(field string) *appErrors.Error {
	if category, ok := fieldCategories[field]; ok {
		return category
	}
	return appErrors.ErrValidation
}

// fieldPath drops the root struct name and embedded identity segment from the namespace.
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	kept := make([]string, 0, len(parts))
	for i, part := range parts {
		if i == 0 || part == "Identity" {
			continue
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return fe.Field()
	}
	return strings.Join(kept, ".")
}

func describe(field, tag, param string, value interface{}) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s cannot be empty", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s, given %v", field, param, value)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s, given %v", field, param, value)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, given %v", field, param, value)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], given %v", field, param, value)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, tag)
	}
}
