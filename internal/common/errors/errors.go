// internal/common/errors/errors.go

// Package errors provides standardized error handling for the analysis pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Registry / configuration
	ErrCodeAgentNotFound     ErrorCode = "AGENT_NOT_FOUND"
	ErrCodeAgentRoleMismatch ErrorCode = "AGENT_ROLE_MISMATCH"
	ErrCodeUnknownAgentSlot  ErrorCode = "UNKNOWN_AGENT_SLOT"

	// Request
	ErrCodeInvalidAnalysisRequest ErrorCode = "INVALID_ANALYSIS_REQUEST"
	ErrCodeAnalysisNotFound       ErrorCode = "ANALYSIS_NOT_FOUND"

	// Pipeline phases
	ErrCodeExtractionFailed    ErrorCode = "EXTRACTION_FAILED"
	ErrCodeConsolidationFailed ErrorCode = "CONSOLIDATION_FAILED"
	ErrCodeAnalysisFailed      ErrorCode = "ANALYSIS_FAILED"
	ErrCodeDecisionFailed      ErrorCode = "DECISION_FAILED"
	ErrCodeMemoFailed          ErrorCode = "MEMO_FAILED"
	ErrCodeAgentTimeout        ErrorCode = "AGENT_TIMEOUT"

	// Collaborators
	ErrCodeDocumentParseFailed    ErrorCode = "DOCUMENT_PARSE_FAILED"
	ErrCodeDocumentFetchFailed    ErrorCode = "DOCUMENT_FETCH_FAILED"
	ErrCodeMarketIntelFailed      ErrorCode = "MARKET_INTEL_FAILED"
	ErrCodeStoreWriteFailed       ErrorCode = "STORE_WRITE_FAILED"
	ErrCodeStoreReadFailed        ErrorCode = "STORE_READ_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
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

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a metadata entry and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

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

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewAgentNotFoundError is raised when a pipeline slot has no registered agent.
func NewAgentNotFoundError(slot string) *StandardError {
	return newError(ErrCodeAgentNotFound, "Agent not found", fmt.Sprintf("slot: %s", slot), false, nil).
		WithMetadata("slot", slot)
}

// NewAgentRoleMismatchError is raised at registration when an agent does not fit its slot.
func NewAgentRoleMismatchError(slot, role string, agent interface{}) *StandardError {
	return newError(ErrCodeAgentRoleMismatch, "Agent does not implement the slot role",
		fmt.Sprintf("slot: %s, role: %s, got: %T", slot, role, agent), false, nil).
		WithMetadata("slot", slot)
}

// NewUnknownAgentSlotError is raised when registering under a name the pipeline never invokes.
func NewUnknownAgentSlotError(slot string) *StandardError {
	return newError(ErrCodeUnknownAgentSlot, "Unknown agent slot", fmt.Sprintf("slot: %s", slot), false, nil)
}

// NewInvalidAnalysisRequestError creates a non-retryable validation error.
func NewInvalidAnalysisRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidAnalysisRequest, "Invalid analysis request", details, false, nil)
}

// NewAnalysisNotFoundError is returned by stores for unknown analysis ids.
func NewAnalysisNotFoundError(id string) *StandardError {
	return newError(ErrCodeAnalysisNotFound, "Analysis not found", fmt.Sprintf("analysisId: %s", id), false, nil)
}

// NewPhaseError wraps a failure raised by an agent inside a pipeline phase.
func NewPhaseError(code ErrorCode, slot string, err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) && stdErr.Code == ErrCodeAgentNotFound {
		return stdErr
	}
	return newError(code, "Agent failed", fmt.Sprintf("slot: %s, error: %s", slot, err.Error()), false, err).
		WithMetadata("slot", slot)
}

// NewAgentTimeoutError creates a retryable timeout error for a single agent call.
func NewAgentTimeoutError(slot string, err error) *StandardError {
	return newError(ErrCodeAgentTimeout, "Agent timed out", fmt.Sprintf("slot: %s", slot), true, err).
		WithMetadata("slot", slot)
}

// NewDocumentParseFailedError creates an error for a single unparseable document.
func NewDocumentParseFailedError(name string, err error) *StandardError {
	return newError(ErrCodeDocumentParseFailed, "Document could not be parsed",
		fmt.Sprintf("document: %s, error: %v", name, err), false, err)
}

// NewDocumentFetchFailedError creates a retryable object storage error.
func NewDocumentFetchFailedError(key string, err error) *StandardError {
	return newError(ErrCodeDocumentFetchFailed, "Document could not be fetched",
		fmt.Sprintf("storageKey: %s, error: %v", key, err), true, err)
}

// NewMarketIntelFailedError creates a retryable market intelligence lookup error.
func NewMarketIntelFailedError(company string, err error) *StandardError {
	return newError(ErrCodeMarketIntelFailed, "Market intelligence lookup failed",
		fmt.Sprintf("company: %s, error: %v", company, err), true, err)
}

// NewStoreWriteFailedError creates a retryable result store error.
func NewStoreWriteFailedError(id string, err error) *StandardError {
	return newError(ErrCodeStoreWriteFailed, "Analysis could not be stored",
		fmt.Sprintf("analysisId: %s, error: %v", id, err), true, err)
}

// NewStoreReadFailedError creates a retryable result store read error.
func NewStoreReadFailedError(id string, err error) *StandardError {
	return newError(ErrCodeStoreReadFailed, "Analysis could not be read",
		fmt.Sprintf("analysisId: %s, error: %v", id, err), true, err)
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Failed to send notification",
		fmt.Sprintf("channel: %s, error: %v", channel, err), true, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreWriteFailed,
		ErrCodeStoreReadFailed,
		ErrCodeDocumentFetchFailed,
		ErrCodeMarketIntelFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeAgentTimeout:
		return 2

	default:
		return 0 // fail-fast: pipeline and business errors are not retried
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
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

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError("INTERNAL_ERROR", "Unexpected error", err.Error(), false, err)
}

// CodeOf returns the error code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	return AsStandardError(err).Code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "AGENT") || strings.Contains(codeStr, "SLOT"):
		return "REGISTRY"
	case strings.Contains(codeStr, "EXTRACTION") || strings.Contains(codeStr, "DOCUMENT"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "CONSOLIDATION") || codeStr == string(ErrCodeAnalysisFailed) ||
		strings.Contains(codeStr, "DECISION") || strings.Contains(codeStr, "MEMO"):
		return "PIPELINE"
	case strings.Contains(codeStr, "STORE") || codeStr == string(ErrCodeAnalysisNotFound):
		return "STORAGE"
	case strings.Contains(codeStr, "MARKET"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps an error code to the status returned by the HTTP API.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidAnalysisRequest:
		return http.StatusBadRequest
	case ErrCodeAnalysisNotFound:
		return http.StatusNotFound
	case ErrCodeAgentTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeAgentNotFound, ErrCodeAgentRoleMismatch, ErrCodeUnknownAgentSlot:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
