package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/velomark/fulfillment/internal/logger"
)

// LogHandle - логирование входящих HTTP-запросов: метод, путь, статус,
// длительность и размер ответа
func LogHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			logger.Info("got incoming HTTP request",
				"uri", r.RequestURI,
				"method", r.Method,
				"status", wrapped.Status(),
				"duration", time.Since(start),
				"size", wrapped.BytesWritten(),
			)
		}()

		next.ServeHTTP(wrapped, r)
	})
}
