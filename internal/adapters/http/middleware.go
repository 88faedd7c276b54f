package httpadapter

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okondratev/devdocs-qa/internal/observability/metrics"
)

const requestIDHeader = "X-Request-Id"

type ctxKeyRequestID struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

// withRequestID honours an inbound X-Request-Id and mints one otherwise, so
// every log line and response of a single ask carries the same identifier.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withTelemetry emits one access-log line per request and feeds the HTTP
// server metrics from the same observation. The metrics may be nil: the CLI
// path assembles the pipeline without a registry.
func withTelemetry(m *metrics.HTTPServerMetrics, service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		if m != nil {
			m.RequestStarted()
			defer m.RequestFinished()
		}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		if m != nil {
			m.RecordRequest(service, r.Method, r.URL.Path, rec.status, elapsed)
		}

		clientIP := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			clientIP = host
		}
		attrs := []any{
			"request_id", requestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", rec.status,
			"duration_ms", float64(elapsed.Microseconds()) / 1000.0,
			"bytes", rec.bytes,
			"client_ip", clientIP,
		}
		switch {
		case rec.status >= 500:
			slog.Error("api_request", attrs...)
		case rec.status >= 400:
			slog.Warn("api_request", attrs...)
		default:
			slog.Info("api_request", attrs...)
		}
	})
}

// responseRecorder captures the status and body size for the access log and
// metrics. Every endpoint writes buffered JSON, so no streaming interfaces
// are forwarded.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *responseRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}
