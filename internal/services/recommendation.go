package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"experano/internal/domain"
	"experano/internal/matching"
	"experano/internal/retry"
)

// recommendationPrompt instructs the model to answer with nothing but a JSON
// array of event IDs, which is the one response contract the orchestrator
// validates against.
const recommendationPrompt = `You are an AI assistant for Experano, responsible for recommending the most relevant events based on a user's preference profile.

Instructions:
- The user's preferences and a list of upcoming events with full details will be provided.
- Identify only the most relevant events based on keywords, category, and user preferences.
- You must return a JSON array of event IDs only (e.g., [12, 45, 78]), without any extra text or explanations.
- Do not include any additional information such as descriptions, summaries, or reasoning.
- The response must be a valid JSON array containing only event IDs.
- If no relevant events are found, return an empty JSON array: [].`

// RecommendationConfig holds the orchestrator tunables.
type RecommendationConfig struct {
	MatchThreshold     float64
	CandidateLimit     int
	RandomFallbackSize int
	RetryAttempts      int
	RetryDelay         time.Duration
}

type recommendationService struct {
	userRepo  domain.UserRepository
	eventRepo domain.EventRepository
	inference domain.InferenceClient
	logger    *slog.Logger
	matcher   matching.Matcher
	cfg       RecommendationConfig

	// randIntn is swappable so tests can pin the fallback offset.
	randIntn func(n int) int
}

// NewRecommendationService wires the matching pipeline: profile lookup,
// keyword extraction, candidate filtering, model invocation with retry, and
// the random fallback.
func NewRecommendationService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	inference domain.InferenceClient,
	logger *slog.Logger,
	cfg RecommendationConfig,
) domain.RecommendationService {
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = 1000
	}
	if cfg.RandomFallbackSize <= 0 {
		cfg.RandomFallbackSize = 10
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 5
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &recommendationService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		inference: inference,
		logger:    logger,
		matcher:   matching.NewMatcher(cfg.MatchThreshold),
		cfg:       cfg,
		randIntn:  rand.Intn,
	}
}

func (s *recommendationService) GetMatchingEvents(ctx context.Context, email string) (*domain.Recommendation, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Preferences == "" {
		return nil, domain.ErrNotFound
	}

	keywords := matching.ExtractKeywords(user.Preferences)
	if len(keywords) == 0 {
		return nil, domain.ErrNoKeywords
	}

	allEvents, err := s.eventRepo.ListByPopularity(ctx, s.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	candidates := matching.FilterCandidates(keywords, allEvents, s.matcher)
	if len(candidates) == 0 {
		s.logger.Info("no matching events found, returning random events", "email", email)
		return s.randomFallback(ctx, len(allEvents))
	}

	ids, err := s.requestEventIDs(ctx, user.Preferences, candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamFormat, err)
	}
	if len(ids) == 0 {
		return s.randomFallback(ctx, len(allEvents))
	}

	events, err := s.eventRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list events by ids: %w", err)
	}
	if len(events) == 0 {
		return s.randomFallback(ctx, len(allEvents))
	}

	return &domain.Recommendation{Events: events, IsRandom: false}, nil
}

// requestEventIDs invokes the model, retrying until it produces a response
// that parses as a JSON array of event IDs.
func (s *recommendationService) requestEventIDs(ctx context.Context, profile string, candidates []*domain.Event) ([]int64, error) {
	payload, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}

	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: recommendationPrompt},
		{
			Role: domain.RoleUser,
			Content: fmt.Sprintf(
				"User Profile: %s\n\nHere are some filtered events:\n%s\n\nReturn only the most relevant event IDs as an array.",
				profile, payload,
			),
		},
	}

	attempt := 0
	return retry.Do(ctx, s.cfg.RetryAttempts, s.cfg.RetryDelay, func(ctx context.Context) ([]int64, error) {
		attempt++
		reply, err := s.inference.ChatCompletion(ctx, messages)
		if err != nil {
			s.logger.Warn("model invocation failed", "attempt", attempt, "err", err)
			return nil, err
		}
		ids, err := parseEventIDs(reply)
		if err != nil {
			s.logger.Warn("model response invalid", "attempt", attempt, "err", err)
			return nil, err
		}
		return ids, nil
	})
}

// parseEventIDs validates the canonical response contract: the trimmed reply
// must be a JSON array of integer event IDs.
func parseEventIDs(reply string) ([]int64, error) {
	trimmed := strings.TrimSpace(reply)
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("response is not a JSON array")
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("response array does not contain event ids: %w", err)
	}
	return ids, nil
}

// randomFallback serves a bounded window of the catalog at a random offset,
// tagged is_random so clients can tell personalization produced nothing.
func (s *recommendationService) randomFallback(ctx context.Context, totalEvents int) (*domain.Recommendation, error) {
	size := s.cfg.RandomFallbackSize
	offset := 0
	if spread := totalEvents - size; spread > 0 {
		offset = s.randIntn(spread)
	}
	events, err := s.eventRepo.ListWindow(ctx, offset, size)
	if err != nil {
		return nil, fmt.Errorf("list random events: %w", err)
	}
	return &domain.Recommendation{Events: events, IsRandom: true}, nil
}
