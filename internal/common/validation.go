package common

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docfacts/constants"
)

// FieldError is one failed rule for one named input.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Rule checks a value and returns a message when it is unacceptable, or "".
type Rule func(value any) string

// Validator collects field errors across several checks.
type Validator struct {
	errs []FieldError
}

func NewValidator() *Validator {
	return &Validator{}
}

// Field applies rules to value in order and stops at the first failure.
func (v *Validator) Field(name string, value any, rules ...Rule) *Validator {
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			v.errs = append(v.errs, FieldError{Field: name, Message: msg})
			break
		}
	}
	return v
}

func (v *Validator) HasErrors() bool { return len(v.errs) > 0 }

func (v *Validator) Errors() []FieldError { return v.errs }

// ErrorMessage joins every field error into one line.
func (v *Validator) ErrorMessage() string {
	parts := make([]string, len(v.errs))
	for i, e := range v.errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Required rejects nil and blank strings.
func Required(value any) string {
	switch s := value.(type) {
	case nil:
		return "is required"
	case string:
		if strings.TrimSpace(s) == "" {
			return "is required"
		}
	}
	return ""
}

// PDFFilename accepts names whose extension is in constants.AllowedExtensions.
func PDFFilename(value any) string {
	name, ok := value.(string)
	if !ok {
		return "must be a file name"
	}
	if !constants.IsAllowedExt(filepath.Ext(name)) {
		return "must be a PDF document (.pdf)"
	}
	return ""
}

// MaxBytes limits an int64 byte count.
func MaxBytes(limit int64) Rule {
	return func(value any) string {
		n, ok := value.(int64)
		if !ok {
			return "must be a byte count"
		}
		if n > limit {
			return fmt.Sprintf("must be at most %d bytes", limit)
		}
		return ""
	}
}

// UUID accepts canonical UUID strings.
func UUID(value any) string {
	s, ok := value.(string)
	if !ok {
		return "must be a string"
	}
	if _, err := uuid.Parse(s); err != nil {
		return "must be a valid UUID"
	}
	return ""
}

// ValidateAndReturnError turns collected failures into an INPUT_ERROR.
func ValidateAndReturnError(v *Validator) error {
	if !v.HasErrors() {
		return nil
	}
	return InputError(v.ErrorMessage(), ErrInvalidInput)
}
