package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Practice specific errors
	CodeQuestionNotFound     ErrorCode = "QUESTION_NOT_FOUND"
	CodeTopicNotFound        ErrorCode = "TOPIC_NOT_FOUND"
	CodePatternNotFound      ErrorCode = "PATTERN_NOT_FOUND"
	CodeInvalidDifficulty    ErrorCode = "INVALID_DIFFICULTY"
	CodeLLMServiceError      ErrorCode = "LLM_SERVICE_ERROR"
	CodeMalformedLLMResponse ErrorCode = "MALFORMED_LLM_RESPONSE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewQuestionNotFoundError(questionID string) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("Question not found with ID: %s", questionID), nil)
}

func NewInvalidDifficultyError(value string) *DomainError {
	return NewError(CodeInvalidDifficulty, fmt.Sprintf("Invalid difficulty: %s", value), nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", err)
}

// NewMalformedLLMResponseError marks a completion that could not be parsed
// into the shape the prompt demanded. Generation flows treat this as fatal;
// evaluation flows substitute a conservative fallback verdict.
func NewMalformedLLMResponseError(err error) *DomainError {
	return NewError(CodeMalformedLLMResponse, "LLM response did not match the expected shape", err)
}
