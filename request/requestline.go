package request

import (
	"bytes"
	"errors"
)

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrInvalidMethod        = errors.New("invalid HTTP method")
	ErrInvalidPath          = errors.New("invalid request path")
	ErrUnsupportedVersion   = errors.New("unsupported HTTP version")
)

var crlf = []byte("\r\n")

// parseRequestLine parses "METHOD PATH VERSION\r\n" from the front of data.
// consumed is 0 when the line is not yet complete.
func parseRequestLine(data []byte) (method, path, version string, consumed int, err error) {
	idx := bytes.Index(data, crlf)
	if idx == -1 {
		return "", "", "", 0, nil
	}

	line := data[:idx]
	consumed = idx + 2

	parts := bytes.SplitN(line, []byte(" "), 3)
	if len(parts) != 3 {
		return "", "", "", 0, ErrMalformedRequestLine
	}

	method = string(parts[0])
	path = string(parts[1])
	version = string(parts[2])

	if !validMethod(method) {
		return "", "", "", 0, ErrInvalidMethod
	}
	if !validPath(path) {
		return "", "", "", 0, ErrInvalidPath
	}
	if version != "HTTP/1.0" && version != "HTTP/1.1" {
		return "", "", "", 0, ErrUnsupportedVersion
	}

	return method, path, version, consumed, nil
}

func validMethod(method string) bool {
	switch method {
	case "GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS":
		return true
	}
	return false
}

func validPath(path string) bool {
	if len(path) == 0 {
		return false
	}
	// Origin-form, or "*" for OPTIONS.
	return path[0] == '/' || path == "*"
}
