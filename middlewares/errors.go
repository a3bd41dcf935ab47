package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aileon/awesome/internal"
)

// PanicError is returned by Recover in place of a panicking handler.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is disabled
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// IsPanicError reports whether err wraps a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// statusOf predicts the status the error handler will write for err.
// A response that is already committed reports its own status.
func statusOf(c internal.Context, err error) int {
	if rw := c.ResponseWriter(); rw != nil && rw.Written() {
		return rw.Status()
	}
	if err == nil {
		return http.StatusOK
	}
	if ae := internal.AsAPIError(err); ae != nil {
		if ae.Status == 0 {
			return http.StatusBadRequest
		}
		return ae.Status
	}
	if he := internal.AsHTTPError(err); he != nil {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}
