package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeInviteInvalid, http.StatusBadRequest},
		{ErrCodeInviteUsed, http.StatusConflict},
		{ErrCodeInviteMismatch, http.StatusForbidden},
		{ErrCodeInviteExpired, http.StatusGone},
		{ErrCodeExternalService, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{shared.CodeNotFound, ErrCodeNotFound},
		{shared.CodeAlreadyExists, ErrCodeConflict},
		{shared.CodeInvalidInput, ErrCodeValidation},
		{shared.CodeExternalService, ErrCodeExternalService},
		{identity.CodeInviteExpired, ErrCodeInviteExpired},
		{"INVALID_PASSWORD", ErrCodeValidation},
		{"INTERNAL_ERROR", ErrCodeInternal},
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ELSE", ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestEveryMappedCodeHasAStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "%s maps to %s which has no status", domainCode, apiCode)
	}
}

func TestDomainErrorsSurviveWrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), identity.ErrInviteUsed)

	var de *shared.DomainError
	require.True(t, errors.As(wrapped, &de))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(NormalizeErrorCode(de.Code)))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponseWithRequestID(shared.CodeNotFound, "Listing not found", "req-123")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Listing not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.False(t, resp.Error.Timestamp.Before(before))
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
		{Field: "price", Message: "Must be greater than 0"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "email", resp.Error.Details[0].Field)
}

func TestResponseJSON(t *testing.T) {
	t.Run("success omits error", func(t *testing.T) {
		data, err := json.Marshal(NewSuccessResponseWithMessage(map[string]string{"id": "abc"}, "Listing created"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":{"id":"abc"},"message":"Listing created"}`, string(data))
	})

	t.Run("error carries code and request id", func(t *testing.T) {
		data, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeForbidden, "No", "req-1"))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, false, decoded["success"])
		errInfo := decoded["error"].(map[string]any)
		assert.Equal(t, ErrCodeForbidden, errInfo["code"])
		assert.Equal(t, "req-1", errInfo["request_id"])
		assert.NotContains(t, decoded, "data")
	})
}
