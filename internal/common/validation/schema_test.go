package validation

import (
	"strings"
	"testing"

	apperrors "payroll-assistant/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateChatMessage_Request(t *testing.T) {
	tests := []struct {
		name    string
		doc     map[string]interface{}
		wantErr bool
	}{
		{"valid", map[string]interface{}{"message": "payroll this month"}, false},
		{"missing", map[string]interface{}{}, true},
		{"empty", map[string]interface{}{"message": ""}, true},
		{"blank", map[string]interface{}{"message": "   "}, true},
		{"wrong type", map[string]interface{}{"message": 42}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChatMessage(ChatRequestSchema, tt.doc)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidChatMessage)
		})
	}
}

func TestValidateChatMessage_Job(t *testing.T) {
	assert.NoError(t, ValidateChatMessage(ChatJobSchema, map[string]interface{}{
		"agentId": 1, "message": "customer john",
	}))

	err := ValidateChatMessage(ChatJobSchema, map[string]interface{}{"message": "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agentId")

	err = ValidateChatMessage(ChatJobSchema, map[string]interface{}{"agentId": 0, "message": "hello"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidChatMessage)
}

func TestValidate_ReportsFields(t *testing.T) {
	result, err := Validate(ChatRequestSchema, map[string]interface{}{"message": ""})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "message", result.Errors[0].Field)
}

func TestValidateChatMessage_TooLong(t *testing.T) {
	atLimit := strings.Repeat("a", MaxMessageLength)
	assert.NoError(t, ValidateChatMessage(ChatRequestSchema, map[string]interface{}{"message": atLimit}))

	err := ValidateChatMessage(ChatRequestSchema, map[string]interface{}{"message": atLimit + "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMessageTooLong)
	assert.ErrorIs(t, err, apperrors.ErrInvalidChatMessage)

	err = ValidateChatMessage(ChatRequestSchema, map[string]interface{}{"message": ""})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrMessageTooLong)
}
