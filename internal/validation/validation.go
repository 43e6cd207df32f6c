package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

const MinPasswordLen = 6

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the structured result of validating one request. It is
// collected for the whole input before returning, so the client sees
// every bad field at once.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

type Validator struct {
	errs Errors
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) NotEmpty(field, value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errs = append(v.errs, FieldError{Field: field, Message: message})
	}
	return v
}

func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.errs = append(v.errs, FieldError{Field: field, Message: "please enter a valid email"})
	}
	return v
}

func (v *Validator) MinLen(field, value string, min int, message string) *Validator {
	if len(value) < min {
		v.errs = append(v.errs, FieldError{Field: field, Message: message})
	}
	return v
}

func (v *Validator) MinInt(field string, value, min int, message string) *Validator {
	if value < min {
		v.errs = append(v.errs, FieldError{Field: field, Message: message})
	}
	return v
}

// Result returns the collected field errors as an error, or nil if
// every check passed.
func (v *Validator) Result() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}
