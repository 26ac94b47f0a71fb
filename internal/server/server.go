// Package server exposes the PeerFlow services over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/White-Devil2839/peerflow/internal/auth"
	"github.com/White-Devil2839/peerflow/internal/middleware"
	"github.com/White-Devil2839/peerflow/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth     *service.AuthService
	Groups   *service.GroupService
	Expenses *service.ExpenseService
	Payments *service.PaymentService
	Balances *service.BalanceService
	Overdue  *service.OverdueService
}

// Server is the HTTP front of PeerFlow.
type Server struct {
	services Services
	tokens   *auth.JWTManager
	logger   *slog.Logger
	handler  http.Handler
}

// New builds the router with all API routes and middleware attached.
func New(services Services, tokens *auth.JWTManager, logger *slog.Logger) *Server {
	s := &Server{services: services, tokens: tokens, logger: logger}

	r := mux.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging(logger))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.RequireAuth(tokens))
	authed.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	authed.HandleFunc("/groups", s.handleCreateGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups", s.handleListGroups).Methods(http.MethodGet)
	authed.HandleFunc("/groups/join", s.handleJoinGroup).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{groupId}", s.handleGetGroup).Methods(http.MethodGet)

	authed.HandleFunc("/expenses", s.handleCreateExpense).Methods(http.MethodPost)
	authed.HandleFunc("/expenses/{expenseId}", s.handleGetExpense).Methods(http.MethodGet)
	authed.HandleFunc("/expenses/{expenseId}/vote", s.handleVoteExpense).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{groupId}/expenses", s.handleListExpenses).Methods(http.MethodGet)
	authed.HandleFunc("/groups/{groupId}/expenses/pending", s.handleListPendingExpenses).Methods(http.MethodGet)

	authed.HandleFunc("/groups/{groupId}/payments", s.handleRecordPayment).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{groupId}/payments", s.handleListPayments).Methods(http.MethodGet)

	authed.HandleFunc("/groups/{groupId}/balances", s.handleBalances).Methods(http.MethodGet)

	authed.HandleFunc("/groups/{groupId}/overdue/{userId}/vote", s.handleOverdueVote).Methods(http.MethodPost)
	authed.HandleFunc("/groups/{groupId}/overdue-status", s.handleOverdueStatus).Methods(http.MethodGet)

	// h2c lets clients speak HTTP/2 without TLS behind a terminating
	// proxy.
	s.handler = h2c.NewHandler(r, &http2.Server{})
	return s
}

// Handler returns the root handler for serving.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
