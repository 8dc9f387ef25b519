/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for tooling frontends

ROUTE GROUPS:
  /api/customers/*         Customer lookup and payee management
  /api/accounts/*          Account, statement, transaction reads
  /api/payment-requests/*  Bill-pay request lifecycle
  /api/cards/*             Card lock / unlock
  /api/disputes/*          Dispute filing and reads
  /api/instrumentation/*   Shift-event recording
  /api/tasks/*             Park / resume workflow handles
  /api/session/*           User-side projection
  /api/admin/*             Snapshot export and scenario reset (dev only)

SECURITY NOTE:
  No authentication middleware. The server simulates a bank back end for
  conversational-agent evaluation; identity checks happen in the dialog
  layer, not here.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Customer routes
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.LookupCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Get("/{id}/accounts", h.GetAccounts)
			r.Post("/{id}/payees", h.AddPayee)
		})

		// Account routes
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/{id}", h.GetAccount)
			r.Get("/{id}/statements", h.GetStatements)
			r.Get("/{id}/transactions", h.GetTransactions)
		})

		// Payment request routes
		r.Route("/payment-requests", func(r chi.Router) {
			r.Post("/", h.CreatePaymentRequest)
			r.Get("/{id}", h.CheckPaymentRequest)
			r.Post("/{id}/authorize", h.AuthorizePaymentRequest)
			r.Post("/{id}/pay", h.MakePayment)
			r.Post("/{id}/cancel", h.CancelPaymentRequest)
		})

		// Card routes
		r.Route("/cards", func(r chi.Router) {
			r.Post("/{id}/lock", h.LockCard)
			r.Post("/{id}/unlock", h.UnlockCard)
		})

		// Dispute routes
		r.Route("/disputes", func(r chi.Router) {
			r.Post("/", h.FileDispute)
			r.Get("/{id}", h.GetDispute)
		})

		// Instrumentation routes
		r.Route("/instrumentation", func(r chi.Router) {
			r.Post("/shift-events", h.LogShiftEvent)
			r.Get("/shift-events", h.ListShiftEvents)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/park", h.ParkTask)
			r.Post("/{id}/resume", h.ResumeTask)
		})
		r.Post("/handoff", h.Handoff)

		// Session projection
		r.Get("/session/view", h.SessionView)

		// Admin routes
		r.Get("/health", h.Health)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/snapshot", h.GetSnapshot)
			r.Post("/reset", h.Reset)
		})
	})

	return r
}
