// Package errors provides the standardized error codes used by the assistant
// core, the HTTP API and the workflow worker.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Recoverable conversation errors. The orchestrator turns these into guidance
// text; they never reach a caller.
const (
	ErrCodeUnrecognizedPeriod  ErrorCode = "UNRECOGNIZED_PERIOD"
	ErrCodeMissingCustomerName ErrorCode = "MISSING_CUSTOMER_NAME"
)

// Store and infrastructure errors.
const (
	ErrCodeStoreQueryFailed          ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeStoreWriteFailed          ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeQueryTimeout              ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseConnectionFailed  ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeCacheUnavailable          ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeWorkflowEngineUnavailable ErrorCode = "WORKFLOW_ENGINE_UNAVAILABLE"
)

// Caller contract errors.
const (
	ErrCodeInvalidChatMessage ErrorCode = "INVALID_CHAT_MESSAGE"
	ErrCodeAuthentication     ErrorCode = "AUTHENTICATION_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// Is matches any StandardError carrying the same code, so callers can test
// against the exported sentinels with errors.Is.
func (e *StandardError) Is(target error) bool {
	var t *StandardError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrUnrecognizedPeriod        = &StandardError{Code: ErrCodeUnrecognizedPeriod}
	ErrMissingCustomerName       = &StandardError{Code: ErrCodeMissingCustomerName}
	ErrStoreQueryFailed          = &StandardError{Code: ErrCodeStoreQueryFailed}
	ErrStoreWriteFailed          = &StandardError{Code: ErrCodeStoreWriteFailed}
	ErrQueryTimeout              = &StandardError{Code: ErrCodeQueryTimeout}
	ErrInvalidChatMessage        = &StandardError{Code: ErrCodeInvalidChatMessage}
	ErrAuthentication            = &StandardError{Code: ErrCodeAuthentication}
	ErrWorkflowEngineUnavailable = &StandardError{Code: ErrCodeWorkflowEngineUnavailable}
)

// ErrMessageTooLong is the cause of an INVALID_CHAT_MESSAGE raised for length.
var ErrMessageTooLong = errors.New("message too long")

// CodeOf returns the code of the first StandardError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func NewUnrecognizedPeriodError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnrecognizedPeriod,
		Message:   "No date range could be resolved from the message",
		Details:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewMissingCustomerNameError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingCustomerName,
		Message:   "No customer name in the message",
		Details:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreQueryFailedError wraps a failed read. Deadline overruns are reported
// as QUERY_TIMEOUT so they retry on the shorter timeout budget.
func NewStoreQueryFailedError(operation string, err error) *StandardError {
	code := ErrCodeStoreQueryFailed
	message := "Store query failed"
	if errors.Is(err, context.DeadlineExceeded) {
		code = ErrCodeQueryTimeout
		message = "Store query timeout"
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewStoreWriteFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreWriteFailed,
		Message:   "Store write failed",
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewWorkflowEngineUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkflowEngineUnavailable,
		Message:   "Workflow engine unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewCacheUnavailableError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache unavailable",
		Details:   fmt.Sprintf("operation: %s, error: %v", operation, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvalidChatMessageError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidChatMessage,
		Message:   "Invalid chat message",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMessageTooLongError is an INVALID_CHAT_MESSAGE whose cause is
// ErrMessageTooLong.
func NewMessageTooLongError(limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidChatMessage,
		Message:   "Invalid chat message",
		Details:   fmt.Sprintf("message exceeds %d characters", limit),
		Retryable: false,
		Metadata:  map[string]interface{}{"maxLength": limit},
		Timestamp: time.Now().UTC(),
		cause:     ErrMessageTooLong,
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthentication,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeUnrecognizedPeriod:        "UNRECOGNIZED_PERIOD",
	ErrCodeMissingCustomerName:       "MISSING_CUSTOMER_NAME",
	ErrCodeStoreQueryFailed:          "STORE_QUERY_FAILED",
	ErrCodeStoreWriteFailed:          "STORE_WRITE_FAILED",
	ErrCodeQueryTimeout:              "QUERY_TIMEOUT",
	ErrCodeDatabaseConnectionFailed:  "DATABASE_CONNECTION_FAILED",
	ErrCodeWorkflowEngineUnavailable: "WORKFLOW_ENGINE_UNAVAILABLE",
	ErrCodeInvalidChatMessage:        "INVALID_CHAT_MESSAGE",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreQueryFailed,
		ErrCodeStoreWriteFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeWorkflowEngineUnavailable:
		return 3
	case ErrCodeQueryTimeout:
		return 2
	default:
		return 0 // Business errors: no retry
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "WORKFLOW"):
		return "WORKFLOW"
	case strings.Contains(codeStr, "PERIOD") || strings.Contains(codeStr, "CUSTOMER"):
		return "CONVERSATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "AUTHENTICATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
