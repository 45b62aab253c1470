package transport

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niklvrr/codybot/internal/transport/handler"
	transportMiddleware "github.com/niklvrr/codybot/internal/transport/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Вебхук только ставит задачу в очередь, поэтому короткого таймаута хватает
const requestTimeout = 5 * time.Second

type Handlers struct {
	Webhook    *handler.WebhookHandler
	User       *handler.UserHandler
	Rule       *handler.RuleHandler
	Repository *handler.RepositoryHandler
	Stats      *handler.StatsHandler
	Health     *handler.HealthHandler
}

func NewRouter(h Handlers, log *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	// Recovery должен быть первым для обработки паник во всех middleware
	router.Use(transportMiddleware.Recovery(log))

	// RequestID для трейсинга запросов
	router.Use(middleware.RequestID)

	router.Use(transportMiddleware.Logging(log))
	router.Use(transportMiddleware.Timeout(requestTimeout, log))
	router.Use(transportMiddleware.Metrics)

	// Эндпоинт для Prometheus метрик
	router.Handle("/metrics", promhttp.Handler())

	router.Post("/webhooks/github", h.Webhook.Receive)

	router.Route("/users", func(r chi.Router) {
		r.Post("/setPaused", h.User.SetPaused)
		r.Get("/getReview", h.User.GetReview)
	})

	router.Route("/rules", func(r chi.Router) {
		r.Post("/add", h.Rule.AddRule)
		r.Get("/get", h.Rule.GetRule)
	})

	router.Post("/repositories/settings", h.Repository.SetSettings)

	router.Get("/stats", h.Stats.GetStats)

	router.Get("/health", h.Health.HealthCheck)
	return router
}
