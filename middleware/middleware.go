// Package middleware provides net/http middleware that wires logplus into a
// request pipeline. Both middlewares have the func(http.Handler) http.Handler
// shape, so they compose with chi routers and plain http.ServeMux alike.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tactlabs/logplus"
)

// RequestIDHeader is the header consulted for an inbound request ID and set
// on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID ensures every request carries a request ID, generating a UUID
// when the client did not send one. The ID is echoed on the response and
// bound into the request context as a logplus field, so any *Context log
// call downstream includes it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logplus.BindContext(r.Context(), logplus.Fields{
			logplus.F("request_id", id),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per completed request with method, path,
// status and duration. Severity follows the response status: server errors
// log at error, client errors at warning, everything else at info.
func RequestLogger(l *logplus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			payload := logplus.Fields{
				logplus.F("method", r.Method),
				logplus.F("path", r.URL.Path),
				logplus.F("status", rec.status),
				logplus.F("duration_ms", time.Since(start).Milliseconds()),
			}
			switch {
			case rec.status >= http.StatusInternalServerError:
				l.ErrorContext(r.Context(), payload)
			case rec.status >= http.StatusBadRequest:
				l.WarningContext(r.Context(), payload)
			default:
				l.InfoContext(r.Context(), payload)
			}
		})
	}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
