// Package router wires the HTTP surface: public auth endpoints, the
// authenticated API grouped by role, and the order event websocket.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/enum"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/handler"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/middleware"
	"github.com/Saisanjeev6/smart-restaurant-billing-system/internal/ws"
)

type Deps struct {
	Auth      *handler.AuthHandler
	Menu      *handler.MenuHandler
	Users     *handler.UserHandler
	Settings  *handler.SettingsHandler
	Orders    *handler.OrderHandler
	Reports   *handler.ReportsHandler
	Hub       *ws.Hub
	JWTSecret string
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/auth/login", d.Auth.Login)
	r.Post("/api/auth/refresh", d.Auth.Refresh)

	// Token arrives as a query parameter; browsers cannot set headers
	// on websocket dials.
	r.Get("/ws/orders", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(d.Hub, d.JWTSecret, w, req)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.JWTSecret))

		r.Route("/api/menu", func(r chi.Router) {
			r.Get("/", d.Menu.List)
			r.With(middleware.RequireRole(enum.RoleAdmin)).Post("/", d.Menu.Create)
			r.With(middleware.RequireRole(enum.RoleAdmin)).Put("/{id}", d.Menu.Update)
			r.With(middleware.RequireRole(enum.RoleAdmin)).Delete("/{id}", d.Menu.Delete)
		})

		r.Route("/api/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(enum.RoleAdmin))
			r.Get("/", d.Users.List)
			r.Post("/", d.Users.Create)
			r.Put("/{id}/password", d.Users.UpdatePassword)
			r.Delete("/{id}", d.Users.Delete)
		})

		r.Route("/api/settings", func(r chi.Router) {
			r.Get("/", d.Settings.Get)
			r.Get("/tables", d.Settings.Tables)
			r.With(middleware.RequireRole(enum.RoleAdmin)).Put("/", d.Settings.Update)
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", d.Orders.List)
			r.Get("/{id}", d.Orders.Get)
			r.With(middleware.RequireRole(enum.RoleWaiter, enum.RoleAdmin)).Post("/", d.Orders.Create)
			r.With(middleware.RequireRole(enum.RoleWaiter, enum.RoleAdmin)).Post("/{id}/items", d.Orders.AddItems)
			r.Patch("/{id}/status", d.Orders.UpdateStatus)
			r.With(middleware.RequireRole(enum.RoleWaiter, enum.RoleAdmin)).Get("/{id}/bill", d.Orders.Bill)
			r.With(middleware.RequireRole(enum.RoleAdmin)).Post("/{id}/pay", d.Orders.Pay)
			r.With(middleware.RequireRole(enum.RoleAdmin)).Delete("/{id}", d.Orders.Cancel)
		})

		r.With(middleware.RequireRole(enum.RoleAdmin)).Get("/api/reports/sales", d.Reports.Sales)
	})

	return r
}
