package http

import (
	"net/http"

	"experano/internal/delivery/http/controllers"
	"experano/internal/delivery/http/middleware"
	"experano/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	userController *controllers.UserController,
	eventController *controllers.EventController,
	onboardingController *controllers.OnboardingController,
	uploadController *controllers.UploadController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// User routes
	mux.HandleFunc("GET /api/user/getUserAndPreference", auth(userController.GetUserAndPreference))
	mux.HandleFunc("GET /api/user/getMatchingEvents", auth(userController.GetMatchingEvents))
	mux.HandleFunc("GET /api/user/getAllEvents", eventController.GetAllEvents)
	mux.HandleFunc("POST /api/user/preference/llama-agent", auth(onboardingController.Converse))
	mux.HandleFunc("POST /api/user/updateGoingStatus", eventController.UpdateGoingStatus)

	// Catalog management
	mux.HandleFunc("POST /api/events", auth(eventController.CreateEvent))
	mux.HandleFunc("POST /api/events/import", eventController.ImportEvents)
	mux.HandleFunc("POST /api/upload", uploadController.Upload)

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
