package leasesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned by the service.
const (
	ErrorCodeValidation       = "validation_error"
	ErrorCodeAccountExists    = "account_exists"
	ErrorCodeAccountNotFound  = "account_not_found"
	ErrorCodeAccountLeased    = "account_leased"
	ErrorCodeStoreUnavailable = "store_unavailable"
	ErrorCodeServerError      = "server_error"
	ErrorCodeRateLimited      = "rate_limit_exceeded"
	ErrorCodeNotFound         = "not_found"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Description, e.StatusCode)
}

// Is matches on Code so callers can write errors.Is(err, leasesdk.ErrAccountLeased).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

var (
	ErrValidation       = &APIError{StatusCode: http.StatusUnprocessableEntity, Code: ErrorCodeValidation}
	ErrAccountExists    = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeAccountExists}
	ErrAccountNotFound  = &APIError{StatusCode: http.StatusNotFound, Code: ErrorCodeAccountNotFound}
	ErrAccountLeased    = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeAccountLeased}
	ErrStoreUnavailable = &APIError{StatusCode: http.StatusServiceUnavailable, Code: ErrorCodeStoreUnavailable}
	ErrRateLimited      = &APIError{StatusCode: http.StatusTooManyRequests, Code: ErrorCodeRateLimited}
)

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
