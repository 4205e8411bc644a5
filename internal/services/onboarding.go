package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"experano/internal/domain"
)

// onboardingPrompt drives the five-question preference interview. The model
// is expected to ask one question per turn and, after the fifth answer,
// produce the profile paragraph that gets persisted.
const onboardingPrompt = `You are Experano's onboarding assistant. Your goal is to create a user preference profile by asking five short but insightful questions. Based on the user's responses, tailor the next question to gather relevant details.

Guidelines:
- Ask only one question at a time.
- Keep your questions concise and friendly.
- Focus on personality, interests, and lifestyle to make relevant event recommendations.
- Do not repeat questions and adapt based on previous answers.
- Once all 5 questions are answered, summarize the user's preferences into a polished profile paragraph for future event recommendations.

Final step:
- After the 5th response, generate a short user preference profile paragraph.
- The paragraph should summarize their interests, event preferences, social preferences, and time availability.
- Be engaging, well-structured, and polite.

Always keep the conversation polite and engaging. `

type onboardingService struct {
	userRepo  domain.UserRepository
	inference domain.InferenceClient
	email     domain.EmailService
	logger    *slog.Logger
}

// NewOnboardingService creates the conversation driver. The email service is
// optional; pass nil to skip the preferences-saved notification.
func NewOnboardingService(
	userRepo domain.UserRepository,
	inference domain.InferenceClient,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.OnboardingService {
	return &onboardingService{
		userRepo:  userRepo,
		inference: inference,
		email:     emailService,
		logger:    logger,
	}
}

func (s *onboardingService) Converse(ctx context.Context, identity domain.Identity, conversation []domain.Message) (string, error) {
	messages := make([]domain.ChatMessage, 0, len(conversation)+1)
	messages = append(messages, domain.ChatMessage{
		Role:    domain.RoleSystem,
		Content: onboardingPrompt + fmt.Sprintf("The user's name is %s", identity.DisplayName()),
	})
	for _, msg := range conversation {
		role := domain.RoleUser
		if msg.Sender == domain.SenderBot {
			role = domain.RoleAssistant
		}
		messages = append(messages, domain.ChatMessage{Role: role, Content: msg.Text})
	}

	reply, err := s.inference.ChatCompletion(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("onboarding completion: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", domain.ErrNoReply
	}

	// After 5 question/answer pairs the reply is the synthesized profile.
	// A failed upsert must not fail the exchange; the reply is still returned
	// and the user can redo onboarding.
	if len(conversation) >= domain.OnboardingTurns {
		if _, err := s.userRepo.UpsertPreferences(ctx, identity.Email, reply); err != nil {
			s.logger.Error("failed to save user preference", "email", identity.Email, "err", err)
		} else if s.email != nil {
			data := &domain.PreferencesSavedEmailData{
				Email:       identity.Email,
				Name:        identity.DisplayName(),
				Preferences: reply,
			}
			if err := s.email.SendPreferencesSaved(ctx, data); err != nil {
				s.logger.Error("failed to send preferences-saved email", "email", identity.Email, "err", err)
			}
		}
	}

	return reply, nil
}
