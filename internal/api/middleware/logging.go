package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logging журнал запросов: 5xx на уровне Error, 4xx на уровне Warn
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			route := routeTemplate(r)
			requestID, _ := GetRequestID(r.Context())
			duration := time.Since(start)

			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - %d (%s) request_id=%s", r.Method, route, rec.status, duration, requestID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - %d (%s) request_id=%s", r.Method, route, rec.status, duration, requestID)
			default:
				logger.Info("%s %s - %d (%s) request_id=%s", r.Method, route, rec.status, duration, requestID)
			}
		})
	}
}
