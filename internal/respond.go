package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// TemplateKey names the template in a map result.
const TemplateKey = "__template__"

// RedirectPrefix marks a string result as a redirect target.
const RedirectPrefix = "redirect:"

// Responder writes its own response.
type Responder interface {
	Respond(c Context) error
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(c Context) error

func (f ResponderFunc) Respond(c Context) error { return f(c) }

// StatusMessage is a result with an explicit status and plain-text body.
type StatusMessage struct {
	Code    int
	Message string
}

// Respond writes v according to its type:
//
//   - nil: 204 No Content
//   - Responder or http.Handler: delegated
//   - Component: rendered as HTML
//   - []byte: application/octet-stream
//   - string: text/html, or a 302 to the rest of the string after "redirect:"
//   - map[string]any with "__template__": the named template
//   - other maps, structs and json.Marshalers: JSON
//   - int within 100..599: that status with no body
//   - StatusMessage: that status with the message as text/plain
//   - anything else: fmt.Sprint as text/plain
func Respond(c Context, v any) error {
	switch r := v.(type) {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case Responder:
		return r.Respond(c)
	case http.Handler:
		r.ServeHTTP(c.Response(), c.Request())
		return nil
	case Component:
		return c.Render(http.StatusOK, r)
	case []byte:
		return c.Blob(http.StatusOK, "application/octet-stream", r)
	case string:
		if target, ok := strings.CutPrefix(r, RedirectPrefix); ok {
			return c.Redirect(http.StatusFound, target)
		}
		return c.HTML(http.StatusOK, r)
	case map[string]any:
		if name, ok := r[TemplateKey].(string); ok {
			return c.RenderTemplate(http.StatusOK, name, r)
		}
		return c.JSON(http.StatusOK, r)
	case int:
		if validStatus(r) {
			return c.NoContent(r)
		}
	case StatusMessage:
		if validStatus(r.Code) {
			return c.String(r.Code, r.Message)
		}
	case *StatusMessage:
		if r != nil && validStatus(r.Code) {
			return c.String(r.Code, r.Message)
		}
	case json.Marshaler:
		return c.JSON(http.StatusOK, r)
	}

	if isStructured(v) {
		return c.JSON(http.StatusOK, v)
	}
	return c.String(http.StatusOK, fmt.Sprint(v))
}

func validStatus(code int) bool {
	return code >= 100 && code < 600
}

func isStructured(v any) bool {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct || t.Kind() == reflect.Map
}
