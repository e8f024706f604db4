package request

import (
	"errors"
	"fmt"
	"io"
)

// Limits bound how much of a request the reader will buffer. They exist to
// keep a hostile peer from exhausting memory.
type Limits struct {
	MaxRequestLineBytes int
	MaxHeaderBytes      int
	MaxHeaderLines      int
	MaxBodyBytes        int64
}

// DefaultLimits returns the limits used by Read.
func DefaultLimits() Limits {
	return Limits{
		MaxRequestLineBytes: 8 << 10,  // 8KB
		MaxHeaderBytes:      1 << 20,  // 1MB
		MaxHeaderLines:      1000,
		MaxBodyBytes:        10 << 20, // 10MB
	}
}

var (
	ErrRequestLineTooLarge = errors.New("request line too large")
	ErrHeaderTooLarge      = errors.New("headers too large")
	ErrTooManyHeaders      = errors.New("too many header lines")
	ErrBodyTooLarge        = errors.New("request body exceeds maximum size")
	ErrChunkedNotSupported = errors.New("chunked transfer encoding not supported")
	ErrUnexpectedEOF       = errors.New("unexpected end of request")
)

// readerState tracks progress through one request.
type readerState int

const (
	stateRequestLine readerState = iota
	stateHeaders
	stateBody
	stateDone
)

// reader incrementally parses a single HTTP/1.x request from a stream.
type reader struct {
	state       readerState
	buf         []byte
	headerLines int
	limits      Limits
}

// Read parses one request from r using DefaultLimits.
func Read(r io.Reader) (*Request, error) {
	return ReadWithLimits(r, DefaultLimits())
}

// ReadWithLimits parses one request from r, enforcing the given limits.
// It blocks until the request is complete or the stream errors.
func ReadWithLimits(r io.Reader, limits Limits) (*Request, error) {
	p := &reader{
		state:  stateRequestLine,
		buf:    make([]byte, 0, 4096),
		limits: limits,
	}

	req := New("", "")
	readBuf := make([]byte, 4096)

	for p.state != stateDone {
		// Drain whatever is already buffered before reading more.
		if len(p.buf) > 0 {
			consumed, err := p.parse(p.buf, req)
			if err != nil {
				return nil, err
			}
			if consumed > 0 {
				p.buf = p.buf[consumed:]
				continue
			}
		}

		if p.state != stateBody && len(p.buf) >= limits.MaxHeaderBytes {
			return nil, ErrHeaderTooLarge
		}

		n, err := r.Read(readBuf)
		if n > 0 {
			if p.state != stateBody && len(p.buf)+n > limits.MaxHeaderBytes {
				return nil, ErrHeaderTooLarge
			}
			p.buf = append(p.buf, readBuf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				// A read can return data and EOF together; drain the
				// buffer before deciding the request was truncated.
				for len(p.buf) > 0 {
					consumed, perr := p.parse(p.buf, req)
					if perr != nil {
						return nil, perr
					}
					if consumed == 0 {
						break
					}
					p.buf = p.buf[consumed:]
				}
				if p.state == stateDone {
					break
				}
				return nil, ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("read request: %w", err)
		}
	}

	return req, nil
}

// parse advances the state machine over data, returning bytes consumed.
func (p *reader) parse(data []byte, req *Request) (int, error) {
	switch p.state {
	case stateRequestLine:
		return p.parseRequestLine(data, req)
	case stateHeaders:
		return p.parseHeaders(data, req)
	case stateBody:
		return p.parseBody(data, req)
	default:
		return 0, nil
	}
}

func (p *reader) parseRequestLine(data []byte, req *Request) (int, error) {
	if len(data) > p.limits.MaxRequestLineBytes {
		return 0, ErrRequestLineTooLarge
	}

	method, path, version, consumed, err := parseRequestLine(data)
	if err != nil {
		return 0, err
	}
	if consumed == 0 {
		return 0, nil // need more data
	}

	req.Method = method
	req.Path = path
	req.Version = version

	p.state = stateHeaders
	return consumed, nil
}

func (p *reader) parseHeaders(data []byte, req *Request) (int, error) {
	consumed, done, err := req.Headers.Parse(data)
	if err != nil {
		return 0, err
	}

	p.headerLines = req.Headers.Len()
	if p.headerLines > p.limits.MaxHeaderLines {
		return 0, ErrTooManyHeaders
	}

	if !done {
		return consumed, nil
	}

	if req.isChunked() {
		return 0, ErrChunkedNotSupported
	}

	cl := req.ContentLength()
	if cl > 0 {
		if cl > p.limits.MaxBodyBytes {
			return 0, ErrBodyTooLarge
		}
		p.state = stateBody
		return consumed, nil
	}

	p.state = stateDone
	return consumed, nil
}

func (p *reader) parseBody(data []byte, req *Request) (int, error) {
	cl := req.ContentLength()
	if cl < 0 {
		return 0, errors.New("missing Content-Length for body")
	}

	remaining := int(cl) - len(req.Body)
	if remaining <= 0 {
		p.state = stateDone
		return 0, nil
	}

	toRead := min(remaining, len(data))
	if int64(len(req.Body)+toRead) > p.limits.MaxBodyBytes {
		return 0, ErrBodyTooLarge
	}
	req.Body = append(req.Body, data[:toRead]...)

	if len(req.Body) == int(cl) {
		p.state = stateDone
	}
	return toRead, nil
}
