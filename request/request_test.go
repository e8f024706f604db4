package request

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader feeds data to the parser a few bytes at a time, simulating
// a request arriving across several TCP reads.
type chunkReader struct {
	data string
	size int
	pos  int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	end := min(r.pos+r.size, len(r.data))
	n := copy(p, r.data[r.pos:end])
	r.pos += n
	return n, nil
}

func TestReadSimpleGET(t *testing.T) {
	data := "GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n"
	req, err := Read(strings.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/index.html", req.Path)
	assert.Equal(t, "HTTP/1.1", req.Version)

	host, ok := req.Headers.Get("host")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
	assert.Empty(t, req.Body)
}

func TestReadPOSTWithContentLength(t *testing.T) {
	data := "POST /api/data HTTP/1.1\r\n" +
		"Host: api.example.com\r\n" +
		"Content-Length: 13\r\n" +
		"\r\n" +
		"Hello, World!"

	req, err := Read(strings.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, int64(13), req.ContentLength())
	assert.Equal(t, "Hello, World!", string(req.Body))
}

func TestReadAcrossManySmallReads(t *testing.T) {
	data := "POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"

	for _, size := range []int{1, 2, 3, 7} {
		req, err := Read(&chunkReader{data: data, size: size})
		require.NoError(t, err, "read size %d", size)
		assert.Equal(t, "POST", req.Method)
		assert.Equal(t, "hello", string(req.Body))
	}
}

func TestReadRejectsChunkedEncoding(t *testing.T) {
	data := "POST /upload HTTP/1.1\r\n" +
		"Transfer-Encoding: chunked\r\n" +
		"\r\n" +
		"5\r\nHello\r\n0\r\n\r\n"

	_, err := Read(strings.NewReader(data))
	require.ErrorIs(t, err, ErrChunkedNotSupported)
}

func TestReadMalformedRequestLine(t *testing.T) {
	// Test: missing version
	_, err := Read(strings.NewReader("GET /\r\n\r\n"))
	require.ErrorIs(t, err, ErrMalformedRequestLine)

	// Test: unknown method
	_, err = Read(strings.NewReader("BREW /coffee HTTP/1.1\r\n\r\n"))
	require.ErrorIs(t, err, ErrInvalidMethod)

	// Test: path without leading slash
	_, err = Read(strings.NewReader("GET index.html HTTP/1.1\r\n\r\n"))
	require.ErrorIs(t, err, ErrInvalidPath)

	// Test: unsupported protocol version
	_, err = Read(strings.NewReader("GET / HTTP/2.0\r\n\r\n"))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestReadHTTP10Accepted(t *testing.T) {
	req, err := Read(strings.NewReader("GET / HTTP/1.0\r\nHost: old.com\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.0", req.Version)
}

func TestReadTruncatedRequest(t *testing.T) {
	// Body shorter than the declared Content-Length.
	data := "POST /x HTTP/1.1\r\nContent-Length: 10\r\n\r\nhi"
	_, err := Read(strings.NewReader(data))
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadBodyTooLarge(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxBodyBytes = 4

	data := "POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"
	_, err := ReadWithLimits(strings.NewReader(data), limits)
	require.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestReadHeadersTooLarge(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxHeaderBytes = 64

	data := "GET / HTTP/1.1\r\nX-Padding: " + strings.Repeat("a", 128) + "\r\n\r\n"
	_, err := ReadWithLimits(strings.NewReader(data), limits)
	require.ErrorIs(t, err, ErrHeaderTooLarge)
}

func TestTakeBodyConsumesOnce(t *testing.T) {
	req := New("POST", "/x")
	req.Body = []byte("payload")

	body, err := req.TakeBody()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	// The second take must fail rather than yield an empty body.
	_, err = req.TakeBody()
	require.ErrorIs(t, err, ErrBodyConsumed)
}

func TestParams(t *testing.T) {
	ps := Params{{Name: "user", Value: "alice"}, {Name: "id", Value: "42"}}

	val, ok := ps.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "42", val)

	_, ok = ps.Get("missing")
	assert.False(t, ok)

	first, ok := ps.First()
	assert.True(t, ok)
	assert.Equal(t, "alice", first)

	_, ok = Params(nil).First()
	assert.False(t, ok)
}

func TestPartsReflectsRequest(t *testing.T) {
	req := New("GET", "/a/b")
	req.Headers.Set("Accept", "text/plain")
	req.SetParams(Params{{Name: "x", Value: "b"}})

	parts := req.Parts()
	assert.Equal(t, "GET", parts.Method)
	assert.Equal(t, "/a/b", parts.Path)
	val, _ := parts.Headers.Get("accept")
	assert.Equal(t, "text/plain", val)
	bound, _ := parts.Params.Get("x")
	assert.Equal(t, "b", bound)
}

func TestContentLength(t *testing.T) {
	req := New("POST", "/x")
	assert.Equal(t, int64(-1), req.ContentLength())

	req.Headers.Set("Content-Length", "17")
	assert.Equal(t, int64(17), req.ContentLength())

	req.Headers.Set("Content-Length", "not-a-number")
	assert.Equal(t, int64(-1), req.ContentLength())
}
