package extract

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/tinyweb-go/tinyweb/request"
)

// Query binds the URL query string into the struct T, field by field,
// using the `query:"name"` tag (or the lower-cased field name). Value
// fields are required; pointer fields are optional.
//
//	type ListOpts struct {
//		Page  int     `query:"page"`
//		Limit *int    `query:"limit"`
//	}
type Query[T any] struct {
	Value T
}

func (q *Query[T]) FromParts(parts *request.Parts) error {
	rv := reflect.ValueOf(&q.Value).Elem()
	if rv.Kind() != reflect.Struct {
		return fail("query", fmt.Errorf("query target must be a struct, got %s", rv.Type()))
	}

	values, err := queryValues(parts.Path)
	if err != nil {
		return fail("query", err)
	}

	err = bindStruct(rv, "query", func(name string) (string, bool) {
		if !values.Has(name) {
			return "", false
		}
		return values.Get(name), true
	})
	if err != nil {
		return fail("query", err)
	}
	return nil
}

func (q *Query[T]) FromRequest(r *request.Request) error {
	return q.FromParts(r.Parts())
}

func queryValues(path string) (url.Values, error) {
	idx := strings.IndexByte(path, '?')
	if idx == -1 {
		return url.Values{}, nil
	}
	return url.ParseQuery(path[idx+1:])
}
