package services

import (
	"errors"
	"net/http"

	aid_errors "mutual-aid/pkg/errors"
)

// HTTPStatus maps a service error to the response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, aid_errors.ErrDuplicateContact), errors.Is(err, aid_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, aid_errors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, aid_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, aid_errors.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, aid_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, aid_errors.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode is the machine-readable code sent next to the message.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, aid_errors.ErrDuplicateContact):
		return "DUPLICATE_CONTACT"
	case errors.Is(err, aid_errors.ErrInvalidInput):
		return "INVALID_REQUEST"
	case errors.Is(err, aid_errors.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, aid_errors.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, aid_errors.ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, aid_errors.ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, aid_errors.ErrNotConfigured):
		return "NOT_CONFIGURED"
	case errors.Is(err, aid_errors.ErrStoreFailure):
		return "STORE_FAILURE"
	default:
		return "INTERNAL_ERROR"
	}
}
