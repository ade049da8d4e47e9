package logger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
)

func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Use Chi's WrapResponseWriter to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// Get request ID from context (ensure RequestID middleware runs before this)
			reqID := middleware.GetReqID(r.Context())

			requestLogger := logger.With(
				slog.String("req_id", reqID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
				slog.String("proto", r.Proto),
			)

			requestLogger.InfoContext(r.Context(), "Request started")

			next.ServeHTTP(ww, r)

			requestLogger.InfoContext(r.Context(), "Request completed",
				slog.Int("status", ww.Status()),
				slog.Int("bytes_written", ww.BytesWritten()),
				slog.Duration("latency", time.Since(start)),
				slog.String("latency_human", time.Since(start).String()),
			)
		})
	}
}
