// Package extract defines how handler arguments are constructed from an
// incoming request.
//
// Two contracts exist, mirroring what a request allows. PartsExtractor
// reads only the non-destructive parts (method, path, headers, path
// parameters) and may run any number of times per request. BodyExtractor
// may consume the body; because the body can be taken only once, a
// handler signature admits at most one body extractor and it must be the
// final argument. Every parts extractor in this package also implements
// BodyExtractor by delegation so it can sit in the final position too.
package extract

import (
	"fmt"

	"github.com/tinyweb-go/tinyweb/request"
	"github.com/tinyweb-go/tinyweb/response"
)

// PartsExtractor populates the receiver from the request parts.
type PartsExtractor interface {
	FromParts(p *request.Parts) error
}

// BodyExtractor populates the receiver from the full request and is
// allowed to consume the body.
type BodyExtractor interface {
	FromRequest(r *request.Request) error
}

// Error reports a failed extraction. Extractor names the argument that
// failed, for diagnostics; the client only ever sees a plain 400.
type Error struct {
	Extractor string
	Err       error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extract %s", e.Extractor)
	}
	return fmt.Sprintf("extract %s: %v", e.Extractor, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Response renders the failure for the client: a bare 400 with no detail
// about what exactly failed.
func (e *Error) Response() response.Response {
	return response.Error(response.StatusBadRequest, "")
}

func fail(extractor string, err error) error {
	return &Error{Extractor: extractor, Err: err}
}

// Headers exposes the request headers as an extractable argument.
type Headers struct {
	*request.Parts
}

func (h *Headers) FromParts(p *request.Parts) error {
	h.Parts = p
	return nil
}

func (h *Headers) FromRequest(r *request.Request) error {
	return h.FromParts(r.Parts())
}

// Get returns the first value of the named header.
func (h *Headers) Get(name string) (string, bool) {
	return h.Parts.Headers.Get(name)
}
