package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"intakebot/internal/config"
	"intakebot/internal/handlers"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config    *config.Config
	SecretKey string // Токен бота, ключ проверки initData
	Store     handlers.OrderStore
	Bot       *handlers.BotHandler
}

// NewRouter создает роутер HTTP API оператора.
func NewRouter(deps ApiDependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Telegram-Auth"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	SetupRoutes(r, deps)
	return r
}

// SetupRoutes настраивает все маршруты для API.
func SetupRoutes(r chi.Router, deps ApiDependencies) {
	h := &apiHandler{deps: deps}

	r.Get("/healthz", h.Health)
	r.Get("/api/bot-qr", h.BotQRCode)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(AuthMiddleware(deps.SecretKey))
		r.Use(OperatorMiddleware(deps.Config.OperatorChatID))

		r.Get("/orders", h.ListOrders)
		r.Get("/orders/export", h.ExportOrders)
		r.Get("/orders/{id}", h.GetOrder)
		r.Post("/orders/{id}/take", h.TakeOrder)
		r.Post("/orders/{id}/done", h.DoneOrder)
	})
}
