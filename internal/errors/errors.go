package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput       = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON      = errors.New("invalid JSON format")
	ErrMultipleJSON     = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileEmpty        = errors.New("file is empty")
	ErrNoInput          = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath  = errors.New("invalid file path")
	ErrCountNotPositive = errors.New("record count must be a positive integer")
	ErrCountTooLarge    = errors.New("record count exceeds the allowed maximum")
	ErrUnknownLanguage  = errors.New("unknown target language: must be one of python, go, typescript")
	ErrMissingAPIKey    = errors.New("Groq API key not configured")
	ErrOffTopicQuestion = errors.New("question does not appear to be related to the JSON document")
	ErrQuotaExceeded    = errors.New("free AI question limit reached for this session")
	ErrNoDocument       = errors.New("no JSON document in the session history")
)

// ErrorType categorizes errors by pipeline stage
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeSchema  ErrorType = "schema"
	ErrorTypeMock    ErrorType = "mock"
	ErrorTypeEmit    ErrorType = "emit"
	ErrorTypeDiff    ErrorType = "diff"
	ErrorTypeAI      ErrorType = "ai"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewSchemaError creates a new error related to schema inference
func NewSchemaError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeSchema, Message: message, Err: err}
}

// NewMockError creates a new error related to mock data generation
func NewMockError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeMock, Message: message, Err: err}
}

// NewEmitError creates a new error related to type definition emission
func NewEmitError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeEmit, Message: message, Err: err}
}

// NewDiffError creates a new error related to document comparison
func NewDiffError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeDiff, Message: message, Err: err}
}

// NewAIError creates a new error related to the AI collaborator
func NewAIError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeAI, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeSchema:
			return fmt.Sprintf("Schema inference error: %s", appErr.Message)
		case ErrorTypeMock:
			return fmt.Sprintf("Mock generation error: %s", appErr.Message)
		case ErrorTypeEmit:
			return fmt.Sprintf("Type emission error: %s", appErr.Message)
		case ErrorTypeDiff:
			return fmt.Sprintf("Comparison error: %s", appErr.Message)
		case ErrorTypeAI:
			return fmt.Sprintf("AI error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON object or array."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrCountNotPositive) {
		return "Error: The record count must be at least 1."
	}
	if errors.Is(err, ErrCountTooLarge) {
		return "Error: The record count exceeds the allowed maximum."
	}
	if errors.Is(err, ErrUnknownLanguage) {
		return "Error: Unknown target language. Use python, go, or typescript."
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return "Error: Groq API key not configured. Set GROQ_API_KEY in the environment or a .env file."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
