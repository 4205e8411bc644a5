package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"experano/internal/delivery/http/helpers"
	"experano/internal/delivery/http/middleware"
	"experano/internal/domain"
)

// ConverseRequest is the request body for POST /api/user/preference/llama-agent.
// The conversation field must be present; an empty array starts a new interview.
type ConverseRequest struct {
	Conversation *[]domain.Message `json:"conversation"`
}

// ConverseResponse is the response body for POST /api/user/preference/llama-agent.
type ConverseResponse struct {
	Reply string `json:"reply"`
}

// OnboardingController handles the turn-based preference interview endpoint.
type OnboardingController struct {
	Logger  *slog.Logger
	Service domain.OnboardingService
}

// NewOnboardingController creates an OnboardingController with the given logger and service.
func NewOnboardingController(logger *slog.Logger, svc domain.OnboardingService) *OnboardingController {
	return &OnboardingController{
		Logger:  logger,
		Service: svc,
	}
}

// Converse godoc
// @Summary Advance the onboarding conversation
// @Description Sends the full client-held transcript to the model and returns the next reply. Once the transcript reaches ten turns the reply is stored as the caller's preference profile. Requires Bearer token.
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ConverseRequest true "Full conversation transcript"
// @Success 200 {object} ConverseResponse
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "error.code: upstream_error or internal_error"
// @Router /api/user/preference/llama-agent [post]
func (c *OnboardingController) Converse(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ConverseRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	if req.Conversation == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "conversation is required")
		return
	}
	for _, msg := range *req.Conversation {
		if msg.Sender != domain.SenderBot && msg.Sender != domain.SenderUser {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "message sender must be \"bot\" or \"user\"")
			return
		}
	}

	reply, err := c.Service.Converse(r.Context(), identity, *req.Conversation)
	if err != nil {
		if errors.Is(err, domain.ErrNoReply) {
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeUpstreamError, "model returned an empty reply")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ConverseResponse{Reply: reply})
}
