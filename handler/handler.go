// Package handler erases typed handler functions into a single uniform
// shape the router can store and invoke.
//
// A typed handler takes zero or more extractable arguments and returns
// any value convertible by response.From. All arguments except the last
// must implement extract.PartsExtractor; the final argument implements
// extract.BodyExtractor, since only the last position is allowed to
// consume the body. Arguments are extracted left to right and the first
// failure short-circuits: later extractors do not run and the handler
// body is never invoked.
//
// One adapter exists per arity, New0 through New6. Six arguments is the
// supported maximum; handlers needing more state should bundle it into a
// struct extractor.
package handler

import (
	"errors"

	"github.com/tinyweb-go/tinyweb/extract"
	"github.com/tinyweb-go/tinyweb/request"
	"github.com/tinyweb-go/tinyweb/response"
)

// Handler is the erased invocable: one per route entry, regardless of the
// original function's signature.
type Handler func(r *request.Request) response.Response

// PartsPtr constrains an argument type whose pointer form extracts from
// the request parts.
type PartsPtr[T any] interface {
	*T
	extract.PartsExtractor
}

// BodyPtr constrains the final argument type, whose pointer form may
// consume the request body.
type BodyPtr[T any] interface {
	*T
	extract.BodyExtractor
}

// failed renders an extraction failure. Anything that is not an
// extract.Error still maps to a 400, since extraction errors are always
// the client's fault.
func failed(err error) response.Response {
	var ee *extract.Error
	if errors.As(err, &ee) {
		return ee.Response()
	}
	return response.Error(response.StatusBadRequest, "")
}

// New0 erases a handler with no arguments.
func New0[R any](fn func() R) Handler {
	return func(r *request.Request) response.Response {
		return response.From(fn())
	}
}

// New1 erases a handler with one argument.
func New1[L any, PL BodyPtr[L], R any](fn func(L) R) Handler {
	return func(r *request.Request) response.Response {
		var last L
		if err := PL(&last).FromRequest(r); err != nil {
			return failed(err)
		}
		return response.From(fn(last))
	}
}

// New2 erases a handler with two arguments.
func New2[A1 any, P1 PartsPtr[A1], L any, PL BodyPtr[L], R any](fn func(A1, L) R) Handler {
	return func(r *request.Request) response.Response {
		parts := r.Parts()

		var a1 A1
		if err := P1(&a1).FromParts(parts); err != nil {
			return failed(err)
		}

		var last L
		if err := PL(&last).FromRequest(r); err != nil {
			return failed(err)
		}
		return response.From(fn(a1, last))
	}
}

// New3 erases a handler with three arguments.
func New3[A1 any, P1 PartsPtr[A1], A2 any, P2 PartsPtr[A2], L any, PL BodyPtr[L], R any](fn func(A1, A2, L) R) Handler {
	return func(r *request.Request) response.Response {
		parts := r.Parts()

		var a1 A1
		if err := P1(&a1).FromParts(parts); err != nil {
			return failed(err)
		}
		var a2 A2
		if err := P2(&a2).FromParts(parts); err != nil {
			return failed(err)
		}

		var last L
		if err := PL(&last).FromRequest(r); err != nil {
			return failed(err)
		}
		return response.From(fn(a1, a2, last))
	}
}

// New4 erases a handler with four arguments.
func New4[A1 any, P1 PartsPtr[A1], A2 any, P2 PartsPtr[A2], A3 any, P3 PartsPtr[A3], L any, PL BodyPtr[L], R any](fn func(A1, A2, A3, L) R) Handler {
	return func(r *request.Request) response.Response {
		parts := r.Parts()

		var a1 A1
		if err := P1(&a1).FromParts(parts); err != nil {
			return failed(err)
		}
		var a2 A2
		if err := P2(&a2).FromParts(parts); err != nil {
			return failed(err)
		}
		var a3 A3
		if err := P3(&a3).FromParts(parts); err != nil {
			return failed(err)
		}

		var last L
		if err := PL(&last).FromRequest(r); err != nil {
			return failed(err)
		}
		return response.From(fn(a1, a2, a3, last))
	}
}

// New5 erases a handler with five arguments.
func New5[A1 any, P1 PartsPtr[A1], A2 any, P2 PartsPtr[A2], A3 any, P3 PartsPtr[A3], A4 any, P4 PartsPtr[A4], L any, PL BodyPtr[L], R any](fn func(A1, A2, A3, A4, L) R) Handler {
	return func(r *request.Request) response.Response {
		parts := r.Parts()

		var a1 A1
		if err := P1(&a1).FromParts(parts); err != nil {
			return failed(err)
		}
		var a2 A2
		if err := P2(&a2).FromParts(parts); err != nil {
			return failed(err)
		}
		var a3 A3
		if err := P3(&a3).FromParts(parts); err != nil {
			return failed(err)
		}
		var a4 A4
		if err := P4(&a4).FromParts(parts); err != nil {
			return failed(err)
		}

		var last L
		if err := PL(&last).FromRequest(r); err != nil {
			return failed(err)
		}
		return response.From(fn(a1, a2, a3, a4, last))
	}
}

// New6 erases a handler with six arguments, the supported maximum.
func New6[A1 any, P1 PartsPtr[A1], A2 any, P2 PartsPtr[A2], A3 any, P3 PartsPtr[A3], A4 any, P4 PartsPtr[A4], A5 any, P5 PartsPtr[A5], L any, PL BodyPtr[L], R any](fn func(A1, A2, A3, A4, A5, L) R) Handler {
	return func(r *request.Request) response.Response {
		parts := r.Parts()

		var a1 A1
		if err := P1(&a1).FromParts(parts); err != nil {
			return failed(err)
		}
		var a2 A2
		if err := P2(&a2).FromParts(parts); err != nil {
			return failed(err)
		}
		var a3 A3
		if err := P3(&a3).FromParts(parts); err != nil {
			return failed(err)
		}
		var a4 A4
		if err := P4(&a4).FromParts(parts); err != nil {
			return failed(err)
		}
		var a5 A5
		if err := P5(&a5).FromParts(parts); err != nil {
			return failed(err)
		}

		var last L
		if err := PL(&last).FromRequest(r); err != nil {
			return failed(err)
		}
		return response.From(fn(a1, a2, a3, a4, a5, last))
	}
}
