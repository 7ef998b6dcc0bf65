package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_IsMatchesByCode(t *testing.T) {
	err := NewStoreQueryFailedError("sum_payroll", fmt.Errorf("connection reset"))
	wrapped := fmt.Errorf("payroll: %w", err)

	assert.True(t, errors.Is(wrapped, ErrStoreQueryFailed))
	assert.False(t, errors.Is(wrapped, ErrStoreWriteFailed))
	assert.Equal(t, ErrCodeStoreQueryFailed, CodeOf(wrapped))
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain")))
}

func TestNewStoreQueryFailedError_DeadlineBecomesTimeout(t *testing.T) {
	err := NewStoreQueryFailedError("find_orders", fmt.Errorf("query: %w", context.DeadlineExceeded))

	assert.Equal(t, ErrCodeQueryTimeout, err.Code)
	assert.True(t, errors.Is(err, ErrQueryTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, "find_orders", err.Metadata["operation"])
}

func TestStandardError_Error(t *testing.T) {
	err := NewInvalidChatMessageError("message is required")
	assert.Equal(t, "StandardError[INVALID_CHAT_MESSAGE]: Invalid chat message: message is required", err.Error())

	bare := &StandardError{Code: ErrCodeCacheUnavailable, Message: "Cache unavailable"}
	assert.Equal(t, "StandardError[CACHE_UNAVAILABLE]: Cache unavailable", bare.Error())
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"store read retries", NewStoreQueryFailedError("op", fmt.Errorf("boom")), "STORE_QUERY_FAILED", 3},
		{"timeout retries less", NewStoreQueryFailedError("op", context.DeadlineExceeded), "QUERY_TIMEOUT", 2},
		{"invalid input never retries", NewInvalidChatMessageError("agentId is required"), "INVALID_CHAT_MESSAGE", 0},
		{"workflow engine retries", NewWorkflowEngineUnavailableError(fmt.Errorf("unavailable")), "WORKFLOW_ENGINE_UNAVAILABLE", 3},
		{"unmapped code passes through", NewCacheUnavailableError("get", fmt.Errorf("down")), "CACHE_UNAVAILABLE", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmnErr.Code)
			assert.Equal(t, tt.wantRetries, bpmnErr.Retries)

			vars := bpmnErr.ToErrorVariables()
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeStoreWriteFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "CONVERSATION", GetErrorCategory(ErrCodeUnrecognizedPeriod))
	assert.Equal(t, "CONVERSATION", GetErrorCategory(ErrCodeMissingCustomerName))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeAuthentication))
	assert.Equal(t, "WORKFLOW", GetErrorCategory(ErrCodeWorkflowEngineUnavailable))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING_ELSE"))
}

func TestNormalize(t *testing.T) {
	std := NewMissingCustomerNameError("show orders")
	assert.Same(t, std, Normalize(fmt.Errorf("wrapped: %w", std)))

	plain := fmt.Errorf("unexpected")
	got := Normalize(plain)
	require.NotNil(t, got)
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), got.Code)
	assert.Equal(t, "unexpected", got.Details)
	assert.ErrorIs(t, got, plain)
}

func TestNewMessageTooLongError(t *testing.T) {
	err := NewMessageTooLongError(2000)

	assert.ErrorIs(t, err, ErrInvalidChatMessage)
	assert.ErrorIs(t, err, ErrMessageTooLong)
	assert.Equal(t, "message exceeds 2000 characters", err.Details)
	assert.False(t, errors.Is(NewInvalidChatMessageError("message is required"), ErrMessageTooLong))
}

func TestConversationErrors(t *testing.T) {
	period := NewUnrecognizedPeriodError("payroll please")
	assert.ErrorIs(t, period, ErrUnrecognizedPeriod)
	assert.Equal(t, "payroll please", period.Details)
	assert.Zero(t, ConvertToBPMNError(period).Retries)

	auth := NewAuthenticationError("token expired")
	assert.ErrorIs(t, auth, ErrAuthentication)
	assert.Equal(t, "VALIDATION", GetErrorCategory(auth.Code))
}
