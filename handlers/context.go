package handlers

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ZacxDev/commands-site/config"
	"github.com/ZacxDev/commands-site/session"
)

// RequestContext is the per-request state handed to every handler.
type RequestContext struct {
	Config  *config.Site
	Logger  *zap.Logger
	Session *session.Session
}

type requestContextKey struct{}

// FromRequest returns the RequestContext installed by the router. Requests
// that bypassed the router get a context with a no-op logger and an
// anonymous session.
func FromRequest(r *http.Request) *RequestContext {
	if rc, ok := r.Context().Value(requestContextKey{}).(*RequestContext); ok {
		return rc
	}
	cfg := config.Default()
	return &RequestContext{Config: &cfg, Logger: zap.NewNop(), Session: &session.Session{}}
}

func withRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// requestContextMiddleware loads the admin session and logs one line per
// request.
func (s *site) requestContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With(
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		if ip := remoteIP(r); ip != "" {
			logger = logger.With(zap.String("remote_ip", ip))
		}

		rc := &RequestContext{
			Config:  s.cfg,
			Logger:  logger,
			Session: s.sessions.Load(r),
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r.WithContext(withRequestContext(r.Context(), rc)))

		fields := []zap.Field{
			zap.Int("status", recorder.status),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case recorder.status >= http.StatusInternalServerError:
			logger.Error("request completed", fields...)
		case recorder.status >= http.StatusBadRequest:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func remoteIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, _ := strings.Cut(forwarded, ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
