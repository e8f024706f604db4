// Package response defines the outgoing HTTP response value, conversions
// from handler return values, and the serializer that puts a response on
// the wire.
package response

import (
	"encoding/json"
	"fmt"

	"github.com/tinyweb-go/tinyweb/headers"
)

// Response is a complete response ready for serialization. Handlers build
// one (usually through a constructor or the IntoResponse contract) and the
// connection layer writes it; nothing mutates it after construction.
type Response struct {
	Status  StatusCode
	Headers *headers.Headers
	Body    []byte
}

// IntoResponse lets arbitrary handler return types define their own
// conversion to a Response.
type IntoResponse interface {
	IntoResponse() Response
}

// New builds a response with the given status, content type, and body.
func New(status StatusCode, contentType string, body []byte) Response {
	h := headers.New()
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	h.Set("Content-Length", fmt.Sprintf("%d", len(body)))
	return Response{Status: status, Headers: h, Body: body}
}

// Text builds a plain-text response.
func Text(status StatusCode, body string) Response {
	return New(status, "text/plain; charset=utf-8", []byte(body))
}

// HTML builds an HTML response.
func HTML(status StatusCode, body string) Response {
	return New(status, "text/html; charset=utf-8", []byte(body))
}

// Bytes builds a binary response.
func Bytes(status StatusCode, contentType string, body []byte) Response {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return New(status, contentType, body)
}

// JSON marshals v into a JSON response. Marshal failures degrade to a 500
// so a handler cannot emit half a document.
func JSON(status StatusCode, v any) Response {
	data, err := json.Marshal(v)
	if err != nil {
		return Error(StatusInternalServerError, "")
	}
	return New(status, "application/json; charset=utf-8", data)
}

// Error builds a plain-text error response. An empty message falls back to
// the status reason phrase.
func Error(status StatusCode, message string) Response {
	if message == "" {
		message = status.Text()
	}
	return Text(status, message)
}

// NotFound is the response for a path no route matches.
func NotFound() Response {
	return Error(StatusNotFound, "")
}

// MethodNotAllowed is the response for a known path requested with an
// unregistered method. allow lists the methods the path does accept.
func MethodNotAllowed(allow []string) Response {
	resp := Error(StatusMethodNotAllowed, "")
	if len(allow) > 0 {
		allowed := allow[0]
		for _, m := range allow[1:] {
			allowed += ", " + m
		}
		resp.Headers.Set("Allow", allowed)
	}
	return resp
}

// Redirect builds a redirect to location. Only redirect status codes are
// meaningful here; anything else gets a 500 instead.
func Redirect(status StatusCode, location string) Response {
	switch status {
	case StatusMovedPermanently, StatusFound, 303, 307, 308:
	default:
		return Error(StatusInternalServerError, "")
	}
	resp := New(status, "", nil)
	resp.Headers.Set("Location", location)
	return resp
}

// NoContent builds an empty 204 response.
func NoContent() Response {
	return New(StatusNoContent, "", nil)
}

// From converts a handler return value into a Response:
//
//   - Response is passed through unchanged
//   - IntoResponse implementations define their own conversion
//   - string and []byte become 200 bodies
//   - error and any other type become a bare 500; the value is never
//     echoed to the client
func From(v any) Response {
	switch val := v.(type) {
	case Response:
		return val
	case IntoResponse:
		return val.IntoResponse()
	case string:
		return Text(StatusOK, val)
	case []byte:
		return Bytes(StatusOK, "", val)
	case nil:
		return NoContent()
	case error:
		return Error(StatusInternalServerError, "")
	default:
		return Error(StatusInternalServerError, "")
	}
}
