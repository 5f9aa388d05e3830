package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/quizzer/internal/common"
)

var (
	// ErrTransport matches every network or HTTP-status failure.
	ErrTransport = errors.New("transport error")
	// ErrDecode matches malformed or schema-violating response bodies.
	ErrDecode = errors.New("decode error")

	ErrUnavailable  = fmt.Errorf("%w: server unavailable", ErrTransport)
	ErrUnauthorized = fmt.Errorf("%w: unauthorized", ErrTransport)
)

// StatusError reports a response whose status code was not expected.
// It matches ErrTransport and, depending on the code, ErrUnauthorized,
// ErrUnavailable, common.ErrorNotFound or common.ErrorInternal.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() []error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return []error{ErrUnauthorized}
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return []error{ErrUnavailable}
	case http.StatusNotFound:
		return []error{ErrTransport, common.ErrorNotFound}
	case http.StatusInternalServerError:
		return []error{ErrTransport, common.ErrorInternal}
	default:
		return []error{ErrTransport}
	}
}
