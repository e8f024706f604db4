package extract

import (
	"errors"
	"reflect"

	"github.com/tinyweb-go/tinyweb/request"
)

// ErrNoPathParam is the cause reported when a Path extractor runs against
// a route that bound no parameters.
var ErrNoPathParam = errors.New("no path parameter bound")

// Path extracts typed values from the path parameters the router bound.
//
// For a scalar T (string, integer, float, bool), the first bound
// parameter is parsed into T, matching the common single-parameter route
// like "/post/:id". For a struct T, each exported field is bound by name
// using the `path:"name"` tag (or the lower-cased field name), so routes
// with several parameters stay unambiguous:
//
//	type PostKey struct {
//		User string `path:"user"`
//		ID   int    `path:"id"`
//	}
//
//	func show(p extract.Path[PostKey]) response.Response { ... }
//
// Extraction fails when a named parameter is absent or does not parse
// into the field type.
type Path[T any] struct {
	Value T
}

func (p *Path[T]) FromParts(parts *request.Parts) error {
	rv := reflect.ValueOf(&p.Value).Elem()

	if rv.Kind() == reflect.Struct {
		err := bindStruct(rv, "path", func(name string) (string, bool) {
			return parts.Params.Get(name)
		})
		if err != nil {
			return fail("path", err)
		}
		return nil
	}

	raw, ok := parts.Params.First()
	if !ok {
		return fail("path", ErrNoPathParam)
	}
	if err := setScalar(rv, raw); err != nil {
		return fail("path", err)
	}
	return nil
}

func (p *Path[T]) FromRequest(r *request.Request) error {
	return p.FromParts(r.Parts())
}
