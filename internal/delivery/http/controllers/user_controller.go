package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"experano/internal/delivery/http/helpers"
	"experano/internal/delivery/http/middleware"
	"experano/internal/domain"
)

// UserController handles the authenticated user profile and recommendation endpoints.
type UserController struct {
	Logger          *slog.Logger
	Users           domain.UserService
	Recommendations domain.RecommendationService
}

// NewUserController creates a UserController with the given logger and services.
func NewUserController(logger *slog.Logger, users domain.UserService, recommendations domain.RecommendationService) *UserController {
	return &UserController{
		Logger:          logger,
		Users:           users,
		Recommendations: recommendations,
	}
}

// GetUserAndPreference godoc
// @Summary Get current user and preference profile
// @Description Returns the caller's user record including the stored preference profile. Requires Bearer token.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/user/getUserAndPreference [get]
func (c *UserController) GetUserAndPreference(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Users.GetByEmail(r.Context(), identity.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// GetMatchingEvents godoc
// @Summary Get personalized event recommendations
// @Description Runs the matching pipeline against the caller's stored preference profile. Falls back to a random selection (is_random=true) when personalization yields nothing. Requires Bearer token.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Recommendation
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request (profile has no usable keywords)"
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found (no stored profile)"
// @Failure 500 {object} helpers.ErrorResponse "error.code: upstream_error or internal_error"
// @Router /api/user/getMatchingEvents [get]
func (c *UserController) GetMatchingEvents(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	rec, err := c.Recommendations.GetMatchingEvents(r.Context(), identity.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no preference profile found; complete onboarding first")
		case errors.Is(err, domain.ErrNoKeywords):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "preference profile contains no usable keywords")
		case errors.Is(err, domain.ErrUpstreamFormat):
			c.Logger.ErrorContext(r.Context(), "model output unusable", "path", r.URL.Path, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeUpstreamError, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, rec)
}
