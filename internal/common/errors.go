package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes, one per pipeline stage.
const (
	CodeInput      = "INPUT_ERROR"
	CodeExtraction = "EXTRACTION_ERROR"
	CodeExport     = "EXPORT_ERROR"
	CodeConfig     = "CONFIG_ERROR"
)

// Common application errors
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInputNotFound       = errors.New("input file not found")
	ErrUnreadableDocument  = errors.New("unreadable document")
	ErrProviderUnavailable = errors.New("model provider unavailable")
	ErrModelCall           = errors.New("model call failed")
	ErrModelResponse       = errors.New("invalid model response")
	ErrRuleFailed          = errors.New("extraction rule failed")
	ErrEmptyTable          = errors.New("no data extracted")
)

// Stage classifies an error by the pipeline stage it belongs to.
type Stage string

const (
	StageInput      Stage = "input"
	StageExtraction Stage = "extraction"
	StageExport     Stage = "export"
	StageConfig     Stage = "config"
	StageUnknown    Stage = "unknown"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func InputError(message string, cause error) error {
	return NewAppError(CodeInput, message, cause)
}

func ExtractionError(message string, cause error) error {
	return NewAppError(CodeExtraction, message, cause)
}

func ExportError(message string, cause error) error {
	return NewAppError(CodeExport, message, cause)
}

func ConfigError(message string, cause error) error {
	return NewAppError(CodeConfig, message, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// StageOf maps err onto the pipeline stage taxonomy.
func StageOf(err error) Stage {
	if err == nil {
		return StageUnknown
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeInput:
			return StageInput
		case CodeExtraction:
			return StageExtraction
		case CodeExport:
			return StageExport
		case CodeConfig:
			return StageConfig
		}
	}
	switch {
	case errors.Is(err, ErrInputNotFound), errors.Is(err, ErrUnreadableDocument):
		return StageInput
	case errors.Is(err, ErrProviderUnavailable), errors.Is(err, ErrModelCall),
		errors.Is(err, ErrModelResponse), errors.Is(err, ErrRuleFailed):
		return StageExtraction
	case errors.Is(err, ErrEmptyTable):
		return StageExport
	}
	return StageUnknown
}
