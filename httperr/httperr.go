// Package httperr defines the typed failures domain handlers raise and the
// translation of those failures into HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is a request failure with a fixed HTTP status. The Detail string is
// returned verbatim to the client.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func NotFound(detail string) *Error {
	return &Error{Status: http.StatusNotFound, Detail: detail}
}

func Unauthorized(detail string) *Error {
	return &Error{Status: http.StatusUnauthorized, Detail: detail}
}

func BadRequest(detail string) *Error {
	return &Error{Status: http.StatusBadRequest, Detail: detail}
}

func Forbidden(detail string) *Error {
	return &Error{Status: http.StatusForbidden, Detail: detail}
}

// Abort writes err as a {"detail": ...} JSON body and stops the handler chain.
// Anything that is not an *Error becomes a generic 500 so internal details
// never reach the client.
func Abort(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"detail": apiErr.Detail})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
