// Package headers implements a case-insensitive HTTP header collection
// plus the wire-format parser used by the request reader.
package headers

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Headers stores header values keyed by lower-cased name. A name may carry
// multiple values (e.g. Set-Cookie).
type Headers struct {
	m map[string][]string
}

func New() *Headers {
	return &Headers{m: make(map[string][]string)}
}

// Get returns the first value for key.
func (h *Headers) Get(key string) (string, bool) {
	vals := h.m[strings.ToLower(key)]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Values returns all values for key.
func (h *Headers) Values(key string) []string {
	return h.m[strings.ToLower(key)]
}

// Set replaces all values for key.
func (h *Headers) Set(key, value string) {
	h.m[strings.ToLower(key)] = []string{value}
}

// Add appends a value under key.
func (h *Headers) Add(key, value string) {
	k := strings.ToLower(key)
	h.m[k] = append(h.m[k], value)
}

// Del removes key entirely.
func (h *Headers) Del(key string) {
	delete(h.m, strings.ToLower(key))
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.m)
}

// Each calls fn for every name/value pair in sorted name order, so that
// serialized output is deterministic.
func (h *Headers) Each(fn func(name, value string)) {
	names := make([]string, 0, len(h.m))
	for name := range h.m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range h.m[name] {
			fn(name, value)
		}
	}
}

// Clone returns a deep copy.
func (h *Headers) Clone() *Headers {
	c := New()
	for k, vals := range h.m {
		c.m[k] = append([]string(nil), vals...)
	}
	return c
}

var crlf = []byte("\r\n")

// Parse consumes as many complete header lines from data as possible.
// It returns the number of bytes consumed and whether the terminating
// empty line was reached. A partial trailing line is left unconsumed so
// the caller can retry with more data.
func (h *Headers) Parse(data []byte) (int, bool, error) {
	read := 0
	for {
		idx := bytes.Index(data[read:], crlf)
		if idx == -1 {
			return read, false, nil
		}
		if idx == 0 {
			// Empty line terminates the header block.
			return read + 2, true, nil
		}

		line := data[read : read+idx]

		// Obsolete line folding (RFC 7230 §3.2.4) is rejected outright.
		if line[0] == ' ' || line[0] == '\t' {
			return read, false, fmt.Errorf("obsolete line folding not supported")
		}

		name, value, err := splitHeaderLine(line)
		if err != nil {
			return read, false, err
		}
		h.Add(name, value)

		read += idx + 2
	}
}

func splitHeaderLine(line []byte) (string, string, error) {
	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		return "", "", fmt.Errorf("malformed header: missing colon")
	}

	name := line[:colon]
	if bytes.ContainsAny(name, " \t") {
		return "", "", fmt.Errorf("malformed header: whitespace in field name")
	}
	for _, b := range name {
		if !isTokenChar(b) {
			return "", "", fmt.Errorf("invalid character %q in header name", b)
		}
	}

	value := bytes.TrimSpace(line[colon+1:])
	return string(name), string(value), nil
}

// isTokenChar reports whether b is a valid tchar per RFC 7230 §3.2.6.
func isTokenChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
