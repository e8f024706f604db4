package server

import (
	"runtime"
	"time"

	"github.com/tinyweb-go/tinyweb/request"
)

// Config controls the connection layer. The routing core has no knobs of
// its own; everything here is about sockets, sizing, and time.
type Config struct {
	// Addr is the listen address for ListenAndServe, e.g. ":8080".
	Addr string

	// Workers is the size of the worker pool that executes accepted
	// connections. Zero means one worker per CPU.
	Workers int

	// ReadTimeout bounds reading one full request from a connection.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration

	// MaxHeaderBytes caps the request line plus headers.
	MaxHeaderBytes int

	// MaxBodyBytes caps the declared request body size.
	MaxBodyBytes int64
}

func DefaultConfig() Config {
	limits := request.DefaultLimits()
	return Config{
		Addr:           ":8080",
		Workers:        runtime.NumCPU(),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: limits.MaxHeaderBytes,
		MaxBodyBytes:   limits.MaxBodyBytes,
	}
}

// limits translates the configured caps into reader limits.
func (c Config) limits() request.Limits {
	lim := request.DefaultLimits()
	if c.MaxHeaderBytes > 0 {
		lim.MaxHeaderBytes = c.MaxHeaderBytes
	}
	if c.MaxBodyBytes > 0 {
		lim.MaxBodyBytes = c.MaxBodyBytes
	}
	return lim
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
