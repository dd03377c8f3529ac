package identsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Soulfra/agent-router-sub005/pkg/httpx"
)

// Stable error codes returned by the service.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeIdentityNotFound = "identity_not_found"
	ErrorCodeIdentityExists   = "identity_exists"
	ErrorCodeNoPrivateKey     = "no_private_key"
	ErrorCodeTOTPNotEnrolled  = "totp_not_enrolled"
	ErrorCodeInvalidToken     = "invalid_token"
	ErrorCodeServerError      = "server_error"
)

// APIError is the standard error response shape. It implements the error
// interface and is used both by the server to write HTTP responses and by
// the SDK client to represent them.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable error code (e.g. "identity_not_found")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// WithDescription returns a copy of the error with a specific description.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Description: desc}
}

// Predefined API errors.
var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrIdentityNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeIdentityNotFound,
		Description: "no identity with that id",
	}

	ErrIdentityExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeIdentityExists,
		Description: "an identity with that public key already exists",
	}

	ErrNoPrivateKey = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeNoPrivateKey,
		Description: "the service does not hold this identity's private key",
	}

	ErrTOTPNotEnrolled = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeTOTPNotEnrolled,
		Description: "no TOTP secret enrolled for this identity",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid or missing bearer token",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
