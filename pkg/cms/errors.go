package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes reported in the extensions of an error response.
const (
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidPayload     = "INVALID_PAYLOAD"
	CodeInvalidQuery       = "INVALID_QUERY"
	CodeNotUnique          = "RECORD_NOT_UNIQUE"
	CodeInvalidForeignKey  = "INVALID_FOREIGN_KEY"
	CodeNotFound           = "ROUTE_NOT_FOUND"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeUnavailable        = "SERVICE_UNAVAILABLE"
)

// Error is an error response returned by the CMS.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("cms: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("cms: %d: %s", e.StatusCode, e.Message)
}

type errorResponse struct {
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

func parseError(status int, body []byte) error {
	e := &Error{StatusCode: status, Message: http.StatusText(status)}

	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, item := range resp.Errors {
			messages = append(messages, item.Message)
		}
		e.Message = strings.Join(messages, "; ")
		e.Code = resp.Errors[0].Extensions.Code
	}
	return e
}

// IsNotFound reports whether err is a CMS "not found" response.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether the CMS rejected the credentials or permissions.
func IsForbidden(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsInvalid reports whether the CMS rejected the request payload or query.
func IsInvalid(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case CodeInvalidPayload, CodeInvalidQuery, CodeNotUnique, CodeInvalidForeignKey:
		return true
	}
	return e.StatusCode == http.StatusBadRequest
}
