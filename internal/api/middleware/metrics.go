package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/metrics"
)

// statusRecorder перехватывает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware собирает HTTP метрики (латентность, статусы, in-flight)
// по шаблону роута, а не по конкретному URL.
func MetricsMiddleware(collector *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			collector.IncHTTPInFlight()
			defer collector.DecHTTPInFlight()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Используем шаблон роута, чтобы не плодить лейблы на каждый ID
			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}

			collector.ObserveHTTPRequest(r.Method, path, rec.status, time.Since(start))
		})
	}
}
