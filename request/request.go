// Package request defines the parsed HTTP request model and the incremental
// reader that produces it from a byte stream.
package request

import (
	"errors"
	"strconv"

	"github.com/tinyweb-go/tinyweb/headers"
)

// ErrBodyConsumed is returned by TakeBody after the body has already been
// handed out. The body is a plain byte slice read once from the connection;
// it is not re-readable without explicit buffering by the caller.
var ErrBodyConsumed = errors.New("request body already consumed")

// Param is a single path parameter bound by the router, e.g. the segment
// matched by ":id".
type Param struct {
	Name  string
	Value string
}

// Params holds path parameters in pattern order.
type Params []Param

// Get returns the value bound under name.
func (ps Params) Get(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// First returns the first bound parameter value.
func (ps Params) First() (string, bool) {
	if len(ps) == 0 {
		return "", false
	}
	return ps[0].Value, true
}

// Parts is the non-destructive view of a request: everything except the
// body. Extractors that only need Parts may run any number of times.
type Parts struct {
	Method  string
	Path    string
	Version string
	Headers *headers.Headers
	Params  Params
}

// Request is a fully parsed incoming HTTP request. It is owned by the
// worker handling the connection for the duration of one dispatch.
type Request struct {
	Method  string
	Path    string
	Version string
	Headers *headers.Headers
	Body    []byte

	params    Params
	bodyTaken bool
}

// New builds a request by hand. The reader in this package is the normal
// way to obtain one; New exists for tests and for callers that already
// hold a parsed request from elsewhere.
func New(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Version: "HTTP/1.1",
		Headers: headers.New(),
	}
}

// Parts returns the non-body view handed to parts extractors. The headers
// pointer is shared; parts extractors treat it as read-only.
func (r *Request) Parts() *Parts {
	return &Parts{
		Method:  r.Method,
		Path:    r.Path,
		Version: r.Version,
		Headers: r.Headers,
		Params:  r.params,
	}
}

// SetParams binds path parameters. Called by the router once per request,
// before the handler runs.
func (r *Request) SetParams(ps Params) {
	r.params = ps
}

// PathParams returns the parameters bound by the router.
func (r *Request) PathParams() Params {
	return r.params
}

// TakeBody returns the request body exactly once. Consuming the body is
// destructive: a second call fails rather than silently yielding an empty
// slice.
func (r *Request) TakeBody() ([]byte, error) {
	if r.bodyTaken {
		return nil, ErrBodyConsumed
	}
	r.bodyTaken = true
	body := r.Body
	r.Body = nil
	return body, nil
}

// ContentLength returns the declared Content-Length, or -1 if absent or
// unparseable.
func (r *Request) ContentLength() int64 {
	val, ok := r.Headers.Get("content-length")
	if !ok {
		return -1
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// isChunked reports whether the request declares a chunked transfer
// encoding, which this library does not accept.
func (r *Request) isChunked() bool {
	te, ok := r.Headers.Get("transfer-encoding")
	return ok && te != "" && te != "identity"
}
