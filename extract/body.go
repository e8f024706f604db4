package extract

import (
	"encoding/json"

	"github.com/tinyweb-go/tinyweb/request"
)

// Body extracts the request body as a string. It consumes the body, so it
// must be the final handler argument; only one body extractor may appear
// per signature.
type Body string

func (b *Body) FromRequest(r *request.Request) error {
	data, err := r.TakeBody()
	if err != nil {
		return fail("body", err)
	}
	*b = Body(data)
	return nil
}

// RawBody extracts the request body as raw bytes. Consumes the body.
type RawBody []byte

func (b *RawBody) FromRequest(r *request.Request) error {
	data, err := r.TakeBody()
	if err != nil {
		return fail("body", err)
	}
	*b = RawBody(data)
	return nil
}

// JSON decodes the request body into T. Consumes the body. Extraction
// fails on malformed JSON or on documents that do not fit T.
type JSON[T any] struct {
	Value T
}

func (j *JSON[T]) FromRequest(r *request.Request) error {
	data, err := r.TakeBody()
	if err != nil {
		return fail("json", err)
	}
	if err := json.Unmarshal(data, &j.Value); err != nil {
		return fail("json", err)
	}
	return nil
}
