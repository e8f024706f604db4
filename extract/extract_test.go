package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyweb-go/tinyweb/request"
	"github.com/tinyweb-go/tinyweb/response"
)

func newRequest(method, path string, params request.Params) *request.Request {
	req := request.New(method, path)
	req.SetParams(params)
	return req
}

func TestPathScalar(t *testing.T) {
	req := newRequest("GET", "/post/42", request.Params{{Name: "id", Value: "42"}})

	var p Path[int]
	require.NoError(t, p.FromParts(req.Parts()))
	assert.Equal(t, 42, p.Value)

	var s Path[string]
	require.NoError(t, s.FromParts(req.Parts()))
	assert.Equal(t, "42", s.Value)
}

func TestPathScalarParseFailure(t *testing.T) {
	req := newRequest("GET", "/post/abc", request.Params{{Name: "id", Value: "abc"}})

	var p Path[int]
	err := p.FromParts(req.Parts())
	require.Error(t, err)

	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "path", ee.Extractor)
	assert.Equal(t, response.StatusBadRequest, ee.Response().Status)
}

func TestPathScalarMissingParam(t *testing.T) {
	req := newRequest("GET", "/post", nil)

	var p Path[int]
	err := p.FromParts(req.Parts())
	require.ErrorIs(t, err, ErrNoPathParam)
}

func TestPathStruct(t *testing.T) {
	type key struct {
		User string `path:"user"`
		ID   int    `path:"id"`
	}
	req := newRequest("GET", "/u/alice/p/7", request.Params{
		{Name: "user", Value: "alice"},
		{Name: "id", Value: "7"},
	})

	var p Path[key]
	require.NoError(t, p.FromParts(req.Parts()))
	assert.Equal(t, "alice", p.Value.User)
	assert.Equal(t, 7, p.Value.ID)
}

func TestPathStructMissingNamedParam(t *testing.T) {
	type key struct {
		ID int `path:"id"`
	}
	req := newRequest("GET", "/u/alice", request.Params{{Name: "user", Value: "alice"}})

	var p Path[key]
	err := p.FromParts(req.Parts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"id"`)
}

func TestPathStructOptionalPointerField(t *testing.T) {
	type key struct {
		ID   int     `path:"id"`
		Slug *string `path:"slug"`
	}
	req := newRequest("GET", "/p/7", request.Params{{Name: "id", Value: "7"}})

	var p Path[key]
	require.NoError(t, p.FromParts(req.Parts()))
	assert.Equal(t, 7, p.Value.ID)
	assert.Nil(t, p.Value.Slug)
}

func TestPathIsRepeatable(t *testing.T) {
	// Parts extractors must not consume anything: running twice gives
	// the same answer.
	req := newRequest("GET", "/post/42", request.Params{{Name: "id", Value: "42"}})

	var first, second Path[int]
	require.NoError(t, first.FromParts(req.Parts()))
	require.NoError(t, second.FromParts(req.Parts()))
	assert.Equal(t, first.Value, second.Value)
}

func TestBodyConsumes(t *testing.T) {
	req := request.New("POST", "/x")
	req.Body = []byte("hello")

	var b Body
	require.NoError(t, b.FromRequest(req))
	assert.Equal(t, Body("hello"), b)

	// Consuming again fails deterministically.
	var again Body
	err := again.FromRequest(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, request.ErrBodyConsumed))
}

func TestRawBody(t *testing.T) {
	req := request.New("POST", "/x")
	req.Body = []byte{0xde, 0xad}

	var b RawBody
	require.NoError(t, b.FromRequest(req))
	assert.Equal(t, RawBody{0xde, 0xad}, b)
}

func TestJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	req := request.New("POST", "/x")
	req.Body = []byte(`{"name":"tiny"}`)

	var j JSON[payload]
	require.NoError(t, j.FromRequest(req))
	assert.Equal(t, "tiny", j.Value.Name)

	// Malformed documents fail extraction.
	req = request.New("POST", "/x")
	req.Body = []byte(`{`)
	var bad JSON[payload]
	err := bad.FromRequest(req)
	require.Error(t, err)
	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "json", ee.Extractor)
}

func TestQueryStruct(t *testing.T) {
	type opts struct {
		Page  int  `query:"page"`
		Limit *int `query:"limit"`
	}

	req := request.New("GET", "/posts?page=3&limit=20")
	var q Query[opts]
	require.NoError(t, q.FromParts(req.Parts()))
	assert.Equal(t, 3, q.Value.Page)
	require.NotNil(t, q.Value.Limit)
	assert.Equal(t, 20, *q.Value.Limit)

	// Missing optional field stays nil; missing required field errors.
	req = request.New("GET", "/posts?page=3")
	var q2 Query[opts]
	require.NoError(t, q2.FromParts(req.Parts()))
	assert.Nil(t, q2.Value.Limit)

	req = request.New("GET", "/posts")
	var q3 Query[opts]
	require.Error(t, q3.FromParts(req.Parts()))
}

func TestHeadersExtractor(t *testing.T) {
	req := request.New("GET", "/")
	req.Headers.Set("Authorization", "Bearer abc")

	var h Headers
	require.NoError(t, h.FromRequest(req))

	val, ok := h.Get("authorization")
	assert.True(t, ok)
	assert.Equal(t, "Bearer abc", val)
}

func TestErrorFormatting(t *testing.T) {
	err := &Error{Extractor: "path", Err: errors.New("boom")}
	assert.Equal(t, "extract path: boom", err.Error())
	assert.Equal(t, "boom", errors.Unwrap(err).Error())

	bare := &Error{Extractor: "body"}
	assert.Equal(t, "extract body", bare.Error())
}
