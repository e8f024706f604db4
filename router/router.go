// Package router maps (method, path) pairs onto erased handlers. Routes
// are registered during startup, optionally composed out of sub-routers
// with Merge, and then frozen; lookups never mutate router state, so a
// frozen router is safe for concurrent use by every worker.
package router

import (
	"errors"
	"fmt"

	"github.com/tinyweb-go/tinyweb/handler"
	"github.com/tinyweb-go/tinyweb/request"
	"github.com/tinyweb-go/tinyweb/response"
)

var (
	ErrDuplicateRoute = errors.New("duplicate route registration")
	ErrRouterFrozen   = errors.New("router is frozen; registration after serve has begun")
	ErrNilHandler     = errors.New("nil handler")
)

// route is a single routing-table entry.
type route struct {
	method string
	pat    pattern
	h      handler.Handler
}

// Router is the routing table plus its builder surface. The zero value is
// not usable; call New.
type Router struct {
	routes []*route
	frozen bool
}

func New() *Router {
	return &Router{}
}

// Route registers the method/handler pairs in mh under pattern. It fails
// on malformed patterns and on a (method, pattern) pair that is already
// registered; duplicates are a build-time error, never silent shadowing.
func (r *Router) Route(patternStr string, mh *MethodHandler) error {
	if r.frozen {
		return ErrRouterFrozen
	}
	if mh == nil || len(mh.entries) == 0 {
		return fmt.Errorf("%w: no methods registered for %q", ErrNilHandler, patternStr)
	}

	pat, err := parsePattern(patternStr)
	if err != nil {
		return err
	}

	for _, e := range mh.entries {
		if e.h == nil {
			return fmt.Errorf("%w: %s %q", ErrNilHandler, e.method, patternStr)
		}
		if err := r.add(&route{method: e.method, pat: pat, h: e.h}); err != nil {
			return err
		}
	}
	return nil
}

// Get is shorthand for Route(pattern, Get(h)).
func (r *Router) Get(pattern string, h handler.Handler) error {
	return r.Route(pattern, Get(h))
}

// Post is shorthand for Route(pattern, Post(h)).
func (r *Router) Post(pattern string, h handler.Handler) error {
	return r.Route(pattern, Post(h))
}

// Put is shorthand for Route(pattern, Put(h)).
func (r *Router) Put(pattern string, h handler.Handler) error {
	return r.Route(pattern, Put(h))
}

// Delete is shorthand for Route(pattern, Delete(h)).
func (r *Router) Delete(pattern string, h handler.Handler) error {
	return r.Route(pattern, Delete(h))
}

// Merge copies every route of other into r with prefix prepended to its
// pattern. A merge that would produce two identical (method, pattern)
// registrations fails; nothing is silently shadowed. other is read but
// not modified.
func (r *Router) Merge(prefix string, other *Router) error {
	if r.frozen {
		return ErrRouterFrozen
	}
	if other == nil {
		return nil
	}

	var prefixPat pattern
	if prefix != "" && prefix != "/" {
		var err error
		prefixPat, err = parsePattern(prefix)
		if err != nil {
			return err
		}
	}

	for _, rt := range other.routes {
		joined, err := rt.pat.join(prefixPat)
		if err != nil {
			return err
		}
		if err := r.add(&route{method: rt.method, pat: joined, h: rt.h}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) add(rt *route) error {
	for _, existing := range r.routes {
		if existing.method == rt.method && existing.pat.raw == rt.pat.raw {
			return fmt.Errorf("%w: %s %q", ErrDuplicateRoute, rt.method, rt.pat.raw)
		}
	}
	r.routes = append(r.routes, rt)
	return nil
}

// Freeze marks the router immutable. The serve loop calls this before
// accepting connections; further Route/Merge calls fail. Idempotent.
func (r *Router) Freeze() {
	r.frozen = true
}

// Routes lists registered (method, pattern) pairs in registration order,
// for startup logging and tests.
func (r *Router) Routes() []string {
	out := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.method+" "+rt.pat.raw)
	}
	return out
}

// Lookup resolves method+path to a handler and its bound path
// parameters. When no pattern matches the path at all, found is false
// and allow is nil. When the path matches but not for this method, found
// is false and allow lists the methods that would have matched, so the
// caller can distinguish 404 from 405.
func (r *Router) Lookup(method, path string) (h handler.Handler, params request.Params, found bool, allow []string) {
	segments := splitPath(path)

	var best *route
	var bestParams request.Params
	for _, rt := range r.routes {
		ps, ok := rt.pat.match(segments)
		if !ok {
			continue
		}
		if rt.method != method {
			if !contains(allow, rt.method) {
				allow = append(allow, rt.method)
			}
			continue
		}
		// Literal segments outrank dynamic ones at the same position;
		// among equally specific patterns the first registered wins.
		if best == nil || rt.pat.moreSpecific(best.pat) {
			best = rt
			bestParams = ps
		}
	}

	if best == nil {
		return nil, nil, false, allow
	}
	return best.h, bestParams, true, nil
}

// Dispatch resolves the request to a handler, binds its path parameters,
// and invokes it. Unmatched paths produce a 404 response and known paths
// with an unregistered method a 405; neither is an error at this layer.
func (r *Router) Dispatch(req *request.Request) response.Response {
	h, params, found, allow := r.Lookup(req.Method, req.Path)
	if !found {
		if len(allow) > 0 {
			return response.MethodNotAllowed(allow)
		}
		return response.NotFound()
	}

	req.SetParams(params)
	return h(req)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
