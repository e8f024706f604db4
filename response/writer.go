package response

import (
	"fmt"
	"io"

	"github.com/tinyweb-go/tinyweb/headers"
)

// writerState tracks what has been put on the wire so far. The status
// line, headers, and body must be written in that order, once each.
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer serializes responses onto an io.Writer (normally the TCP
// connection).
type Writer struct {
	w        io.Writer
	state    writerState
	status   StatusCode
	hadError bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, state: stateStart}
}

// Status returns the status code written so far, or 0.
func (w *Writer) Status() StatusCode {
	return w.status
}

// Written reports whether any part of a response has gone out.
func (w *Writer) Written() bool {
	return w.state != stateStart
}

// HadError reports whether a wire write failed, in which case the
// connection is no longer usable.
func (w *Writer) HadError() bool {
	return w.hadError
}

// WriteResponse serializes a complete response: status line, headers
// (with Content-Length filled in if missing), and body.
func (w *Writer) WriteResponse(resp Response) error {
	if err := w.WriteStatusLine(resp.Status); err != nil {
		return err
	}

	h := resp.Headers
	if h == nil {
		h = headers.New()
	}
	if _, ok := h.Get("content-length"); !ok {
		h = h.Clone()
		h.Set("Content-Length", fmt.Sprintf("%d", len(resp.Body)))
	}
	if err := w.WriteHeaders(h); err != nil {
		return err
	}

	_, err := w.WriteBody(resp.Body)
	return err
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n".
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	line := fmt.Sprintf("HTTP/1.1 %d %s\r\n", code, code.Text())
	if _, err := w.w.Write([]byte(line)); err != nil {
		w.hadError = true
		return err
	}

	w.status = code
	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes the header block and the blank separator line.
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("must write status line before headers")
	}

	var werr error
	h.Each(func(name, value string) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w.w, "%s: %s\r\n", name, value)
	})
	if werr == nil {
		_, werr = w.w.Write([]byte("\r\n"))
	}
	if werr != nil {
		w.hadError = true
		return werr
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the response body.
func (w *Writer) WriteBody(p []byte) (int, error) {
	if w.state != stateHeadersWritten {
		return 0, fmt.Errorf("must write status line and headers before body")
	}

	n, err := w.w.Write(p)
	if err != nil {
		w.hadError = true
		return n, err
	}

	w.state = stateBodyWritten
	return n, nil
}
