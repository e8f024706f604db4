package server

import (
	"errors"
	"log/slog"
	"net"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/tinyweb-go/tinyweb/headers"
	"github.com/tinyweb-go/tinyweb/request"
	"github.com/tinyweb-go/tinyweb/response"
)

// serveConn handles exactly one request on the connection and closes it.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	s.metrics.ActiveConnections.Add(1)
	defer s.metrics.ActiveConnections.Add(-1)

	requestID := uuid.NewString()
	start := time.Now()

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	req, err := request.ReadWithLimits(conn, s.cfg.limits())
	if err != nil {
		s.logger.Warn("bad request",
			slog.String("request_id", requestID),
			slog.String("remote", conn.RemoteAddr().String()),
			slog.Any("error", err),
		)
		resp := parseFailure(err)
		s.writeResponse(conn, resp, requestID)
		s.metrics.RecordRequest(int(resp.Status), time.Since(start))
		return
	}

	resp := s.dispatch(req, requestID)
	s.writeResponse(conn, resp, requestID)

	duration := time.Since(start)
	s.metrics.RecordRequest(int(resp.Status), duration)
	s.logger.Info("request handled",
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", int(resp.Status)),
		slog.Duration("duration", duration),
		slog.String("remote", conn.RemoteAddr().String()),
	)
}

// dispatch runs the router with panic containment: a panicking handler
// costs its request a 500, never the process.
func (s *Server) dispatch(req *request.Request, requestID string) (resp response.Response) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("handler panic",
				slog.String("request_id", requestID),
				slog.String("method", req.Method),
				slog.String("path", req.Path),
				slog.Any("panic", p),
				slog.String("stack", string(debug.Stack())),
			)
			resp = response.Error(response.StatusInternalServerError, "")
		}
	}()

	return s.router.Dispatch(req)
}

func (s *Server) writeResponse(conn net.Conn, resp response.Response, requestID string) {
	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	if resp.Headers == nil {
		resp.Headers = headers.New()
	}
	resp.Headers.Set("Connection", "close")
	resp.Headers.Set("X-Request-ID", requestID)

	w := response.NewWriter(conn)
	if err := w.WriteResponse(resp); err != nil {
		s.logger.Error("write response failed",
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
	}
}

// parseFailure maps a request-parse error onto the right 4xx.
func parseFailure(err error) response.Response {
	switch {
	case errors.Is(err, request.ErrBodyTooLarge):
		return response.Error(response.StatusPayloadTooLarge, "")
	case errors.Is(err, request.ErrRequestLineTooLarge):
		return response.Error(response.StatusURITooLong, "")
	case errors.Is(err, request.ErrChunkedNotSupported):
		return response.Error(response.StatusLengthRequired, "chunked transfer encoding not supported")
	default:
		return response.Error(response.StatusBadRequest, "")
	}
}
