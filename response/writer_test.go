package response

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyweb-go/tinyweb/headers"
)

func TestWriteResponse(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteResponse(Text(StatusOK, "hi")))

	// Headers serialize in sorted name order, so the wire bytes are
	// deterministic.
	expected := "HTTP/1.1 200 OK\r\n" +
		"content-length: 2\r\n" +
		"content-type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"hi"
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, StatusOK, w.Status())
	assert.True(t, w.Written())
	assert.False(t, w.HadError())
}

func TestWriteResponseFillsContentLength(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	h := headers.New()
	h.Set("X-Thing", "yes")
	require.NoError(t, w.WriteResponse(Response{Status: StatusOK, Headers: h, Body: []byte("abc")}))

	assert.Contains(t, buf.String(), "content-length: 3\r\n")
	assert.Contains(t, buf.String(), "x-thing: yes\r\n")
}

func TestWriteResponseNilHeaders(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteResponse(Response{Status: StatusNoContent}))
	assert.Contains(t, buf.String(), "HTTP/1.1 204 No Content\r\n")
	assert.Contains(t, buf.String(), "content-length: 0\r\n")
}

func TestWriterEnforcesOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	// Test: body before status line
	_, err := w.WriteBody([]byte("x"))
	require.Error(t, err)

	// Test: headers before status line
	err = w.WriteHeaders(headers.New())
	require.Error(t, err)

	// Test: status line twice
	require.NoError(t, w.WriteStatusLine(StatusOK))
	err = w.WriteStatusLine(StatusOK)
	require.Error(t, err)
}
