package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/frahmantamala/timesheet-tracker/pkg/logger"
)

const TraceIDHeader = "X-Trace-ID"

// RequestID reuses an inbound X-Trace-ID or mints one, echoes it back and
// attaches it to the request logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set(TraceIDHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
