package router

import "github.com/tinyweb-go/tinyweb/handler"

// MethodHandler pairs one or more HTTP methods with erased handlers for a
// single path pattern. Build one with the package-level constructors and
// chain further methods onto it:
//
//	router.Get(listPosts).Post(createPost)
type MethodHandler struct {
	entries []methodEntry
}

type methodEntry struct {
	method string
	h      handler.Handler
}

func (m *MethodHandler) on(method string, h handler.Handler) *MethodHandler {
	m.entries = append(m.entries, methodEntry{method: method, h: h})
	return m
}

// Get registers h for GET requests.
func Get(h handler.Handler) *MethodHandler { return new(MethodHandler).Get(h) }

// Post registers h for POST requests.
func Post(h handler.Handler) *MethodHandler { return new(MethodHandler).Post(h) }

// Put registers h for PUT requests.
func Put(h handler.Handler) *MethodHandler { return new(MethodHandler).Put(h) }

// Delete registers h for DELETE requests.
func Delete(h handler.Handler) *MethodHandler { return new(MethodHandler).Delete(h) }

// Patch registers h for PATCH requests.
func Patch(h handler.Handler) *MethodHandler { return new(MethodHandler).Patch(h) }

// Head registers h for HEAD requests.
func Head(h handler.Handler) *MethodHandler { return new(MethodHandler).Head(h) }

// Options registers h for OPTIONS requests.
func Options(h handler.Handler) *MethodHandler { return new(MethodHandler).Options(h) }

func (m *MethodHandler) Get(h handler.Handler) *MethodHandler     { return m.on("GET", h) }
func (m *MethodHandler) Post(h handler.Handler) *MethodHandler    { return m.on("POST", h) }
func (m *MethodHandler) Put(h handler.Handler) *MethodHandler     { return m.on("PUT", h) }
func (m *MethodHandler) Delete(h handler.Handler) *MethodHandler  { return m.on("DELETE", h) }
func (m *MethodHandler) Patch(h handler.Handler) *MethodHandler   { return m.on("PATCH", h) }
func (m *MethodHandler) Head(h handler.Handler) *MethodHandler    { return m.on("HEAD", h) }
func (m *MethodHandler) Options(h handler.Handler) *MethodHandler { return m.on("OPTIONS", h) }
