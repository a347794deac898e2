package dto

import (
	"net/http"

	"github.com/homefinder/backend/internal/domain/identity"
	"github.com/homefinder/backend/internal/domain/shared"
)

// Error codes returned in the error envelope.
// Format: ERR_<CATEGORY>[_<DESCRIPTION>]
const (
	ErrCodeInternal         = "ERR_INTERNAL"
	ErrCodeValidation       = "ERR_VALIDATION"
	ErrCodeUnauthorized     = "ERR_UNAUTHORIZED"
	ErrCodeForbidden        = "ERR_FORBIDDEN"
	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeConflict         = "ERR_CONFLICT"
	ErrCodeInvalidState     = "ERR_INVALID_STATE"
	ErrCodeExternalService  = "ERR_EXTERNAL_SERVICE"
	ErrCodeRateLimited      = "ERR_RATE_LIMITED"
	ErrCodeRequestTooLarge  = "ERR_REQUEST_TOO_LARGE"
	ErrCodeInviteInvalid    = "ERR_INVITE_INVALID"
	ErrCodeInviteUsed       = "ERR_INVITE_USED"
	ErrCodeInviteMismatch   = "ERR_INVITE_EMAIL_MISMATCH"
	ErrCodeInviteExpired    = "ERR_INVITE_EXPIRED"
	ErrCodeTokenExpired     = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid     = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked     = "ERR_TOKEN_REVOKED"
	ErrCodeBadRequest       = "ERR_BAD_REQUEST"
	ErrCodeDocsNotAvailable = "ERR_DOCS_NOT_AVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeExternalService: http.StatusBadGateway,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeInviteInvalid:   http.StatusBadRequest,
	ErrCodeInviteUsed:      http.StatusConflict,
	ErrCodeInviteMismatch:  http.StatusForbidden,
	ErrCodeInviteExpired:   http.StatusGone,

	ErrCodeDocsNotAvailable: http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	shared.CodeNotFound:        ErrCodeNotFound,
	shared.CodeAlreadyExists:   ErrCodeConflict,
	shared.CodeInvalidInput:    ErrCodeValidation,
	shared.CodeConflict:        ErrCodeConflict,
	shared.CodeUnauthorized:    ErrCodeUnauthorized,
	shared.CodeForbidden:       ErrCodeForbidden,
	shared.CodeInvalidState:    ErrCodeInvalidState,
	shared.CodeExternalService: ErrCodeExternalService,

	identity.CodeInviteInvalid:       ErrCodeInviteInvalid,
	identity.CodeInviteUsed:          ErrCodeInviteUsed,
	identity.CodeInviteEmailMismatch: ErrCodeInviteMismatch,
	identity.CodeInviteExpired:       ErrCodeInviteExpired,

	"INVALID_NAME":        ErrCodeValidation,
	"INVALID_EMAIL":       ErrCodeValidation,
	"INVALID_PASSWORD":    ErrCodeValidation,
	"PASSWORD_HASH_ERROR": ErrCodeInternal,
	"INTERNAL_ERROR":      ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format are returned unchanged; anything else is internal.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
