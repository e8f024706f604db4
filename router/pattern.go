package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tinyweb-go/tinyweb/request"
)

var (
	ErrBadPattern     = errors.New("malformed route pattern")
	ErrEmptySegment   = errors.New("empty path segment in pattern")
	ErrDuplicateParam = errors.New("duplicate parameter name in pattern")
)

// segment is one element of a route pattern: either a literal string or
// a named dynamic placeholder (":name").
type segment struct {
	literal string
	param   string // non-empty for dynamic segments
}

func (s segment) dynamic() bool {
	return s.param != ""
}

// pattern is a parsed route path template.
type pattern struct {
	raw  string
	segs []segment
}

// parsePattern validates and splits a route pattern. "/" parses to zero
// segments; every other pattern must have non-empty segments and unique
// parameter names.
func parsePattern(raw string) (pattern, error) {
	if raw == "" || raw[0] != '/' {
		return pattern{}, fmt.Errorf("%w: %q must start with '/'", ErrBadPattern, raw)
	}

	trimmed := strings.TrimPrefix(raw, "/")
	if trimmed == "" {
		return pattern{raw: "/"}, nil
	}

	parts := strings.Split(trimmed, "/")
	segs := make([]segment, 0, len(parts))
	seen := make(map[string]bool)

	for _, part := range parts {
		if part == "" {
			return pattern{}, fmt.Errorf("%w: %q", ErrEmptySegment, raw)
		}
		if part[0] == ':' {
			name := part[1:]
			if name == "" {
				return pattern{}, fmt.Errorf("%w: %q has an unnamed parameter", ErrBadPattern, raw)
			}
			if seen[name] {
				return pattern{}, fmt.Errorf("%w: %q in %q", ErrDuplicateParam, name, raw)
			}
			seen[name] = true
			segs = append(segs, segment{param: name})
			continue
		}
		segs = append(segs, segment{literal: part})
	}

	return pattern{raw: raw, segs: segs}, nil
}

// join prepends a prefix pattern, producing the pattern used after a
// Merge. Parameter names must stay unique across the joined result.
func (p pattern) join(prefix pattern) (pattern, error) {
	if len(prefix.segs) == 0 {
		return p, nil
	}

	seen := make(map[string]bool)
	segs := make([]segment, 0, len(prefix.segs)+len(p.segs))
	for _, s := range append(append([]segment(nil), prefix.segs...), p.segs...) {
		if s.dynamic() {
			if seen[s.param] {
				return pattern{}, fmt.Errorf("%w: %q in %q", ErrDuplicateParam, s.param, prefix.raw+p.raw)
			}
			seen[s.param] = true
		}
		segs = append(segs, s)
	}

	raw := prefix.raw
	if p.raw != "/" {
		raw += p.raw
	}
	return pattern{raw: raw, segs: segs}, nil
}

// splitPath breaks an incoming request path into segments, dropping any
// query string. "/" yields zero segments to mirror parsePattern.
func splitPath(path string) []string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// match compares the pattern against path segments positionally. Segment
// counts must be equal; a literal matches only itself and a dynamic
// segment matches any single non-empty segment, binding it by name.
func (p pattern) match(segments []string) (request.Params, bool) {
	if len(p.segs) != len(segments) {
		return nil, false
	}

	var params request.Params
	for i, seg := range p.segs {
		got := segments[i]
		if seg.dynamic() {
			if got == "" {
				return nil, false
			}
			params = append(params, request.Param{Name: seg.param, Value: got})
			continue
		}
		if seg.literal != got {
			return nil, false
		}
	}
	return params, true
}

// moreSpecific reports whether p outranks q among patterns that both
// matched the same path: at the first position where they differ in
// kind, the literal segment wins. Equal shapes rank equal (caller keeps
// the earlier registration).
func (p pattern) moreSpecific(q pattern) bool {
	for i := range p.segs {
		if i >= len(q.segs) {
			break
		}
		pd, qd := p.segs[i].dynamic(), q.segs[i].dynamic()
		if pd != qd {
			return !pd
		}
	}
	return false
}
