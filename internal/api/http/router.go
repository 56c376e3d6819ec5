package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"instrument-rental-backend/internal/security"
)

// Handlers collects every resource handler the router mounts.
type Handlers struct {
	Auth           *AuthHandler
	Users          *UserHandler
	Instruments    *InstrumentHandler
	Ownerships     *OwnershipHandler
	Rentals        *RentalHandler
	Payments       *PaymentHandler
	Reviews        *ReviewHandler
	Surveys        *SurveyHandler
	Recommendation *RecommendationHandler
	Chatbot        *ChatbotHandler
	Dashboard      *DashboardHandler
}

// NewRouter mounts the API under /api. Auth endpoints and catalog reads are
// public; everything else requires a Bearer access token.
func NewRouter(h Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(ObservabilityMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public auth routes.
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	// Browsing the catalog does not require an account.
	api.HandleFunc("/instruments", h.Instruments.List).Methods(http.MethodGet)
	api.HandleFunc("/instruments/available", h.Instruments.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/instruments/{id:[0-9]+}", h.Instruments.Get).Methods(http.MethodGet)
	api.HandleFunc("/instru-ownership", h.Ownerships.ListAvailable).Methods(http.MethodGet)
	api.HandleFunc("/instru-ownership/{id:[0-9]+}", h.Ownerships.Get).Methods(http.MethodGet)

	// Everything below requires a valid access token.
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/auth/profile", h.Auth.Profile).Methods(http.MethodGet)

	authed.HandleFunc("/users", h.Users.List).Methods(http.MethodGet)
	authed.HandleFunc("/users/{id:[0-9]+}", h.Users.Get).Methods(http.MethodGet)
	authed.HandleFunc("/users/{id:[0-9]+}", h.Users.Update).Methods(http.MethodPut)
	authed.HandleFunc("/users/{id:[0-9]+}", h.Users.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/instruments", h.Instruments.Create).Methods(http.MethodPost)

	authed.HandleFunc("/instru-ownership", h.Ownerships.Create).Methods(http.MethodPost)
	authed.HandleFunc("/instru-ownership/my-instruments", h.Ownerships.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/instru-ownership/{id:[0-9]+}", h.Ownerships.Update).Methods(http.MethodPut)
	authed.HandleFunc("/instru-ownership/{id:[0-9]+}", h.Ownerships.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/rentals", h.Rentals.Create).Methods(http.MethodPost)
	authed.HandleFunc("/rentals", h.Rentals.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/lendings", h.Rentals.ListLendings).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}", h.Rentals.Get).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id:[0-9]+}", h.Rentals.Cancel).Methods(http.MethodDelete)
	authed.HandleFunc("/rentals/{id:[0-9]+}/return", h.Rentals.Return).Methods(http.MethodPost)

	authed.HandleFunc("/payments", h.Payments.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/payments/{rentalId:[0-9]+}/initiate", h.Payments.Initiate).Methods(http.MethodPost)
	authed.HandleFunc("/payments/{rentalId:[0-9]+}/confirm", h.Payments.Confirm).Methods(http.MethodPost)
	authed.HandleFunc("/payments/{id:[0-9]+}/refund", h.Payments.Refund).Methods(http.MethodPost)
	authed.HandleFunc("/payments/{id:[0-9]+}", h.Payments.Get).Methods(http.MethodGet)

	authed.HandleFunc("/reviews", h.Reviews.Create).Methods(http.MethodPost)
	authed.HandleFunc("/reviews", h.Reviews.List).Methods(http.MethodGet)
	authed.HandleFunc("/reviews/ownership/{id:[0-9]+}", h.Reviews.ListForOwnership).Methods(http.MethodGet)
	authed.HandleFunc("/reviews/owner/{id:[0-9]+}", h.Reviews.ListForOwner).Methods(http.MethodGet)
	authed.HandleFunc("/reviews/{id:[0-9]+}", h.Reviews.Get).Methods(http.MethodGet)
	authed.HandleFunc("/reviews/{id:[0-9]+}", h.Reviews.Update).Methods(http.MethodPut)
	authed.HandleFunc("/reviews/{id:[0-9]+}", h.Reviews.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/survey", h.Surveys.Submit).Methods(http.MethodPost)
	authed.HandleFunc("/survey", h.Surveys.GetMine).Methods(http.MethodGet)
	authed.HandleFunc("/survey", h.Surveys.Update).Methods(http.MethodPut)
	authed.HandleFunc("/survey", h.Surveys.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/recommendations", h.Recommendation.ForUser).Methods(http.MethodGet)
	authed.HandleFunc("/recommendations/by-needs", h.Recommendation.ByNeeds).Methods(http.MethodGet, http.MethodPost)

	authed.HandleFunc("/chatbot/chat", h.Chatbot.Chat).Methods(http.MethodPost)
	authed.HandleFunc("/chatbot/ask-instrument-question", h.Chatbot.AskInstrumentQuestion).Methods(http.MethodPost)
	authed.HandleFunc("/chatbot/recommend-for-me", h.Chatbot.RecommendForMe).Methods(http.MethodPost)
	authed.HandleFunc("/chatbot/history/{session}", h.Chatbot.History).Methods(http.MethodGet)
	authed.HandleFunc("/chatbot/sessions", h.Chatbot.Sessions).Methods(http.MethodGet)
	authed.HandleFunc("/chatbot/clear-session/{session}", h.Chatbot.ClearSession).Methods(http.MethodDelete)

	authed.HandleFunc("/dashboard/stats", h.Dashboard.Stats).Methods(http.MethodGet)
	authed.HandleFunc("/dashboard/owner", h.Dashboard.Owner).Methods(http.MethodGet)
	authed.HandleFunc("/dashboard/renter", h.Dashboard.Renter).Methods(http.MethodGet)

	return r
}
