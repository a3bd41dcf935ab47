package internal

import (
	"errors"
	"net/http"
)

// HTTPError is a transport-level error carrying a status code and a
// user-facing message.
type HTTPError struct {
	// Err is the underlying error, logged but never shown.
	Err error

	Message   string
	Title     string
	Detail    string
	ErrorCode string
	RequestID string
	Code      int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) { e.Title = title }
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) { e.Detail = detail }
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) { e.ErrorCode = code }
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) { e.RequestID = id }
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) { e.Err = err }
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError extracts an HTTPError from err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return nil
}

// APIError is a client input error rendered as
// {"error": ..., "data": ..., "message": ...}.
//
// Code names the failure class ("value:invalid"), Data names the offending
// field or resource, Message is for humans.
type APIError struct {
	Code    string `json:"error"`
	Data    string `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// NewAPIError creates a 400 APIError with a free-form code.
func NewAPIError(code, data, message string) *APIError {
	return &APIError{Code: code, Data: data, Message: message, Status: http.StatusBadRequest}
}

// ErrValue reports an invalid or missing input field.
func ErrValue(field, message string) *APIError {
	return &APIError{Code: "value:invalid", Data: field, Message: message, Status: http.StatusBadRequest}
}

// ErrResourceNotFound reports a missing resource.
func ErrResourceNotFound(resource, message string) *APIError {
	return &APIError{Code: "value:notfound", Data: resource, Message: message, Status: http.StatusNotFound}
}

// ErrPermission reports a forbidden action.
func ErrPermission(message string) *APIError {
	return &APIError{Code: "permission:forbidden", Data: "permission", Message: message, Status: http.StatusForbidden}
}

// AsAPIError extracts an APIError from err's chain, or nil.
func AsAPIError(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
