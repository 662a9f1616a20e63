package api

import (
	"net/http"
	"time"

	"github.com/fatali-fataliyev/lesson_board/internal/contextutil"
	"github.com/fatali-fataliyev/lesson_board/logging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const TRACE_HEADER = "X-Trace-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// WithTrace gives every request a trace ID and the session token from the
// Authorization header, both carried in the request context.
func WithTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a client trace ID is kept only when it is a UUID; it ends up in log lines
		traceID := uuid.NewString()
		if id, err := uuid.Parse(r.Header.Get(TRACE_HEADER)); err == nil {
			traceID = id.String()
		}
		w.Header().Set(TRACE_HEADER, traceID)

		ctx := contextutil.WithTraceID(r.Context(), traceID)
		ctx = contextutil.WithToken(ctx, bearer(r.Header.Get("Authorization")))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		logging.Logger.WithFields(logrus.Fields{
			"trace_id": traceID,
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request served")
	})
}
