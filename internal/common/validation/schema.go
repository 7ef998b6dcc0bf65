package validation

import (
	"fmt"
	"strings"

	apperrors "payroll-assistant/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// MaxMessageLength caps a chat message, counted in characters.
const MaxMessageLength = 2000

// ChatRequestSchema is the body of POST /api/chat/message.
var ChatRequestSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"message"},
	"properties": map[string]interface{}{
		"message": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
			"maxLength": MaxMessageLength,
			"pattern":   `\S`,
		},
	},
}

// ChatJobSchema is the variable set consumed by the handle-chat-message worker.
var ChatJobSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"agentId", "message"},
	"properties": map[string]interface{}{
		"agentId": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
		},
		"message": ChatRequestSchema["properties"].(map[string]interface{})["message"],
	},
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validate checks document against schema. Both are plain Go values.
func Validate(schema map[string]interface{}, document interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// ValidateChatMessage returns an INVALID_CHAT_MESSAGE error when document does
// not satisfy schema. An over-long message gets apperrors.ErrMessageTooLong
// as its cause.
func ValidateChatMessage(schema map[string]interface{}, document interface{}) error {
	result, err := Validate(schema, document)
	if err != nil {
		return apperrors.NewInvalidChatMessageError(err.Error())
	}
	if result.Valid {
		return nil
	}
	for _, e := range result.Errors {
		if e.Field == "message" && e.Code == "STRING_LTE" {
			return apperrors.NewMessageTooLongError(MaxMessageLength)
		}
	}
	details := make([]string, len(result.Errors))
	for i, e := range result.Errors {
		details[i] = e.Field + ": " + e.Message
	}
	return apperrors.NewInvalidChatMessageError(strings.Join(details, "; "))
}
