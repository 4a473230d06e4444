// Package apierror maps handler failures onto HTTP status codes and the
// JSON error body returned to clients.
package apierror

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error for the HTTP boundary
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindUnauthenticated
	KindNotFound
	KindUpstream
)

// Status returns the HTTP status code for the kind
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "server"
	}
}

// Error is an error with a client-facing message. Err holds the underlying
// cause, which is logged but never sent to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

func Server(msg string, err error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindServer for errors that did not
// originate from this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}

// Respond logs err and writes it as {"error": message}. Errors that are not
// *Error are reported as a generic server error.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Server("Internal server error", err)
	}

	status := apiErr.Kind.Status()
	attrs := []any{
		"kind", apiErr.Kind.String(),
		"status", status,
		"path", c.Request.URL.Path,
	}
	if apiErr.Err != nil {
		attrs = append(attrs, "error", apiErr.Err.Error())
	}

	if status >= http.StatusInternalServerError {
		slog.Error(apiErr.Message, attrs...)
	} else {
		slog.Warn(apiErr.Message, attrs...)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": apiErr.Message})
}

// Recovery converts handler panics into a 500 JSON response instead of
// letting them reach the server.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		Respond(c, Server("Internal server error", fmt.Errorf("panic: %v", recovered)))
	})
}
