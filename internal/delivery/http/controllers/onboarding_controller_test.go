package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"experano/internal/delivery/http/helpers"
	"experano/internal/delivery/http/middleware"
	"experano/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingController_Converse(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fake       *fakeOnboardingService
		wantStatus int
		wantCode   string
		wantReply  string
	}{
		{
			name:       "first turn with empty conversation",
			body:       `{"conversation":[]}`,
			fake:       &fakeOnboardingService{reply: "What do you enjoy doing on weekends?"},
			wantStatus: http.StatusOK,
			wantReply:  "What do you enjoy doing on weekends?",
		},
		{
			name:       "mid conversation",
			body:       `{"conversation":[{"sender":"bot","text":"Hi"},{"sender":"user","text":"Hello"}]}`,
			fake:       &fakeOnboardingService{reply: "Great! Do you prefer indoor or outdoor events?"},
			wantStatus: http.StatusOK,
			wantReply:  "Great! Do you prefer indoor or outdoor events?",
		},
		{
			name:       "missing conversation field",
			body:       `{}`,
			fake:       &fakeOnboardingService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unknown sender",
			body:       `{"conversation":[{"sender":"system","text":"x"}]}`,
			fake:       &fakeOnboardingService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"conversation":`,
			fake:       &fakeOnboardingService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "empty model reply",
			body:       `{"conversation":[]}`,
			fake:       &fakeOnboardingService{err: domain.ErrNoReply},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeUpstreamError,
		},
		{
			name:       "service error",
			body:       `{"conversation":[]}`,
			fake:       &fakeOnboardingService{err: assert.AnError},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewOnboardingController(testLogger(), tt.fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/api/user/preference/llama-agent", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(middleware.SetIdentity(req.Context(), domain.Identity{Email: "alex@example.com", Name: "Alex"}))
			rr := httptest.NewRecorder()

			ctrl.Converse(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp ConverseResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.wantReply, resp.Reply)
				return
			}
			assert.Equal(t, tt.wantCode, decodeError(t, rr).Error.Code)
		})
	}
}

func TestOnboardingController_Converse_RequiresIdentity(t *testing.T) {
	ctrl := NewOnboardingController(testLogger(), &fakeOnboardingService{})
	req := httptest.NewRequest(http.MethodPost, "http://test/api/user/preference/llama-agent", bytes.NewBufferString(`{"conversation":[]}`))
	rr := httptest.NewRecorder()

	ctrl.Converse(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, helpers.ErrCodeUnauthorized, decodeError(t, rr).Error.Code)
}
