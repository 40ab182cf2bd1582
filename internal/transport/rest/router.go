package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-bot/internal"
	"github.com/frahmantamala/expense-bot/internal/bot"
	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/frahmantamala/expense-bot/internal/expense"
	"github.com/frahmantamala/expense-bot/internal/transport/middleware"
	"github.com/frahmantamala/expense-bot/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Routes collects the handlers mounted by RegisterAllRoutes. Nil handlers
// are skipped.
type Routes struct {
	Health        *HealthHandler
	Webhook       *bot.Handler
	WebhookSecret string
	Expenses      *expense.Handler
	Categories    *category.Handler
	Spec          *swagger.Spec
}

func RegisterAllRoutes(router *chi.Mux, routes Routes, logger *slog.Logger) {
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	if routes.Spec != nil {
		router.Get(swagger.SpecURL, routes.Spec.ServeHTTP)
		router.Handle("/swagger/*", swagger.Handler())
	}

	if routes.Webhook != nil {
		router.With(middleware.WebhookSecret(routes.WebhookSecret, logger)).
			Post("/telegram_webhook", routes.Webhook.HandleWebhook)
	}

	router.NotFound(notFound)

	router.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if routes.Health != nil {
			r.Get("/health", routes.Health.Health)
			r.Get("/ping", routes.Health.Ping)
		}

		if routes.Categories != nil {
			r.Route("/categories", func(cr chi.Router) {
				cr.Get("/", routes.Categories.GetCategories)
				cr.Get("/resolve", routes.Categories.ResolveCategory)
			})
		}

		if routes.Expenses != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.Get("/", routes.Expenses.GetExpenses)
				er.Get("/summary", routes.Expenses.GetSummary)
			})
		}
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	status, body := internal.NewNotFoundError("no route for "+r.Method+" "+r.URL.Path, internal.ErrCodeRouteNotFound).ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
