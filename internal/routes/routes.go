package routes

import (
	"net/http"

	"github.com/adlaunch/adlaunch-api/internal/handlers"
	"github.com/gorilla/mux"
)

// NewRouter sets up the API routes
func NewRouter(
	auth *handlers.AuthHandler,
	accounts *handlers.AccountHandler,
	campaigns *handlers.CampaignHandler,
	jobs *handlers.JobHandler,
	assets *handlers.AssetHandler,
	notifications *handlers.NotificationHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/signup", auth.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/login", auth.Login).Methods(http.MethodPost)

	// Everything else requires a valid token.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.JWTMiddleware)

	// Ad account connections
	api.HandleFunc("/accounts/auth-url", accounts.AuthURL).Methods(http.MethodGet)
	api.HandleFunc("/accounts/exchange", accounts.ExchangeToken).Methods(http.MethodPost)
	api.HandleFunc("/accounts", accounts.List).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}/refresh", accounts.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}", accounts.Delete).Methods(http.MethodDelete)

	// Campaigns
	api.HandleFunc("/campaigns", campaigns.List).Methods(http.MethodGet)
	api.HandleFunc("/campaigns", campaigns.Create).Methods(http.MethodPost)
	api.HandleFunc("/campaigns/{id}", campaigns.Update).Methods(http.MethodPut)
	api.HandleFunc("/campaigns/{id}", campaigns.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/campaigns/submit", campaigns.BulkSubmit).Methods(http.MethodPost)

	// Submission jobs
	api.HandleFunc("/jobs", jobs.List).Methods(http.MethodGet)
	api.HandleFunc("/jobs/stats", jobs.Stats).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}", jobs.Get).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}/cancel", jobs.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/jobs/{id}/retry", jobs.Retry).Methods(http.MethodPost)

	// Asset library
	api.HandleFunc("/asset-folders", assets.ListFolders).Methods(http.MethodGet)
	api.HandleFunc("/asset-folders", assets.CreateFolder).Methods(http.MethodPost)
	api.HandleFunc("/asset-folders/{id}", assets.RenameFolder).Methods(http.MethodPut)
	api.HandleFunc("/asset-folders/{id}", assets.DeleteFolder).Methods(http.MethodDelete)
	api.HandleFunc("/assets", assets.List).Methods(http.MethodGet)
	api.HandleFunc("/assets", assets.Create).Methods(http.MethodPost)
	api.HandleFunc("/assets/{id}", assets.Update).Methods(http.MethodPut)
	api.HandleFunc("/assets/{id}", assets.Delete).Methods(http.MethodDelete)

	// Notifications
	api.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", notifications.MarkRead).Methods(http.MethodPost)

	return router
}
