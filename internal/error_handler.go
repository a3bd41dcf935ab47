package internal

import (
	"log/slog"
	"net/http"
)

// DefaultErrorHandler renders an APIError as its JSON body, an HTTPError
// as plain text with its status, and anything else as a logged 500.
func DefaultErrorHandler(c Context, err error) error {
	if ae := AsAPIError(err); ae != nil {
		status := ae.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		return c.JSON(status, ae)
	}

	if he := AsHTTPError(err); he != nil {
		if he.Code >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Int("status", he.Code), slog.Any("error", err))
		} else if he.Err != nil {
			c.LogDebug("request rejected", slog.Int("status", he.Code), slog.Any("error", he.Err))
		}
		return c.String(he.Code, he.Message)
	}

	c.LogError("unhandled error", slog.Any("error", err))
	return c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
