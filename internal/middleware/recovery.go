package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"importdocs/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response.
// When the panic hits after the response has started, such as midway
// through a ZIP stream, the connection is aborted instead so the client
// never mistakes a truncated archive for a complete one.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.Error("panic recovered",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", w.Header().Get(RequestIDHeader),
					"response_started", rec.status != 0,
					"stack", string(debug.Stack()),
				)

				if rec.status != 0 {
					panic(http.ErrAbortHandler)
				}
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
