package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/gigboard/internal/domain/contract"
	"github.com/rpggio/gigboard/internal/domain/dashboard"
	"github.com/rpggio/gigboard/internal/domain/message"
	"github.com/rpggio/gigboard/internal/domain/milestone"
	"github.com/rpggio/gigboard/internal/domain/notification"
	"github.com/rpggio/gigboard/internal/domain/profile"
	"github.com/rpggio/gigboard/internal/domain/project"
	"github.com/rpggio/gigboard/internal/domain/proposal"
	"github.com/rpggio/gigboard/internal/domain/review"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/metrics"
)

// Services bundles the domain services the HTTP API dispatches to.
type Services struct {
	Users         *user.Service
	Projects      *project.Service
	Proposals     *proposal.Service
	Contracts     *contract.Service
	Milestones    *milestone.Service
	Notifications *notification.Service
	Reviews       *review.Service
	Profiles      *profile.Service
	Messages      *message.Service
	Dashboard     *dashboard.Service
}

// Server wires HTTP handlers.
type Server struct {
	Services
	logger *slog.Logger
}

// NewServer creates the API router. Every route except health, metrics, and
// the auth endpoints requires a bearer token understood by tokens.
func NewServer(svcs Services, tokens TokenParser, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{Services: svcs, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(srv.logRequests)

	r.Get("/health", srv.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Post("/auth/register", srv.handleRegister)
	r.Post("/auth/login", srv.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(tokens))

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", srv.handleCreateProject)
			r.Get("/", srv.handleListProjects)
			r.Get("/{id}", srv.handleGetProject)
			r.Put("/{id}", srv.handleUpdateProject)
			r.Post("/{id}/cancel", srv.handleCancelProject)
			r.Get("/{id}/proposals", srv.handleListProjectProposals)
			r.Get("/{id}/my-proposal", srv.handleGetMyProposal)
			r.Post("/{id}/milestones", srv.handleInitializeMilestones)
			r.Get("/{id}/milestones", srv.handleListMilestones)
		})

		r.Route("/proposals", func(r chi.Router) {
			r.Post("/", srv.handleSubmitProposal)
			r.Get("/mine", srv.handleListMyProposals)
			r.Post("/{id}/accept", srv.handleAcceptProposal)
			r.Post("/{id}/reject", srv.handleRejectProposal)
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", srv.handleListContracts)
			r.Get("/{id}", srv.handleGetContract)
			r.Post("/{id}/payments", srv.handleCreatePayment)
			r.Get("/{id}/payments", srv.handleListPayments)
			r.Post("/{id}/complete", srv.handleCompleteContract)
			r.Post("/{id}/cancel", srv.handleCancelContract)
			r.Post("/{id}/reviews", srv.handleCreateReview)
		})

		r.Route("/milestones", func(r chi.Router) {
			r.Put("/{id}", srv.handleUpdateMilestone)
			r.Post("/{id}/updates", srv.handleAddMilestoneUpdate)
			r.Get("/{id}/updates", srv.handleListMilestoneUpdates)
		})

		r.Get("/notifications", srv.handleListNotifications)
		r.Post("/notifications/{id}/read", srv.handleMarkNotificationRead)

		r.Get("/users/{id}", srv.handleGetUser)
		r.Get("/users/{id}/reviews", srv.handleListUserReviews)

		r.Get("/profile", srv.handleGetProfile)
		r.Put("/profile", srv.handleUpdateProfile)
		r.Get("/freelancers", srv.handleListFreelancers)
		r.Get("/dashboard", srv.handleDashboard)

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", srv.handleSendMessage)
			r.Get("/", srv.handleListMessages)
			r.Post("/mark-read", srv.handleMarkMessagesRead)
		})
		r.Get("/conversations", srv.handleListConversations)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
