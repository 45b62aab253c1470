package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Timeout ограничивает время выполнения запроса через контекст.
// Обработчик работает в той же горутине, поэтому ответ пишется только один раз
func Timeout(timeout time.Duration, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return
			}

			logger.Warn("request timeout",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("timeout", timeout),
			)
			// Если обработчик уже ответил, заголовки не трогаем
			if ww.Status() == 0 {
				writeError(w, http.StatusGatewayTimeout, "TIMEOUT", "request timeout")
			}
		})
	}
}
