package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("nohtml", validateNoHTML)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a field -> message map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = ErrMsgInvalidRequestFormat
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = ErrMsgValidationRequired
		case "nohtml":
			errs[field] = ErrMsgValidationNoHTML
		case "max":
			errs[field] = fmt.Sprintf(ErrMsgValidationMaxFmt, e.Param())
		case "min":
			if e.Kind() == reflect.String {
				errs[field] = fmt.Sprintf(ErrMsgValidationMinCharFmt, e.Param())
			} else {
				errs[field] = fmt.Sprintf(ErrMsgValidationMinFmt, e.Param())
			}
		default:
			errs[field] = ErrMsgValidationInvalid
		}
	}

	return errs
}

func validateNoHTML(fl validator.FieldLevel) bool {
	return !htmlTag.MatchString(fl.Field().String())
}
