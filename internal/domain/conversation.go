package domain

import "context"

// Message senders in the onboarding conversation.
const (
	SenderBot  = "bot"
	SenderUser = "user"
)

// OnboardingTurns is the transcript length (5 question/answer pairs) at which
// the model's next reply is treated as the synthesized preference profile.
const OnboardingTurns = 10

// Message is one turn of the onboarding conversation. The transcript is owned
// by the client and sent whole on every turn; nothing is kept server-side.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ChatMessage is a role-attributed message for the inference endpoint.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// InferenceClient is the port to the hosted model endpoint.
type InferenceClient interface {
	ChatCompletion(ctx context.Context, messages []ChatMessage) (string, error)
}

// OnboardingService drives the turn-based preference-gathering conversation.
type OnboardingService interface {
	// Converse sends the full transcript to the model and returns its reply.
	// Once the transcript reaches OnboardingTurns, the reply is persisted as
	// the caller's preference profile.
	Converse(ctx context.Context, identity Identity, conversation []Message) (string, error)
}
