package application

import (
	"context"
	"fmt"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/input"
	"drive-rag/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure ChatService implements the input port
var _ input.ChatService = (*ChatService)(nil)

// Fallback replies
const (
	NoCandidateReply    = "I could not generate a response. The model might have blocked it due to safety settings."
	generationErrorText = "An error occurred while generating the response: %v"
)

// ChatService struct - Application service answering questions against the synced documents
type ChatService struct {
	sessions      output.SessionStore
	geminiFactory output.GeminiClientFactory
	maxTurns      int
}

// NewChatService func - Creates new chat service.
// maxTurns caps the stored history in (user, model) pairs, 0 keeps everything.
func NewChatService(sessions output.SessionStore, geminiFactory output.GeminiClientFactory, maxTurns int) *ChatService {
	if maxTurns < 0 {
		maxTurns = 0
	}
	return &ChatService{
		sessions:      sessions,
		geminiFactory: geminiFactory,
		maxTurns:      maxTurns,
	}
}

// Reply func - Use case: answer one message and persist the exchange
func (s *ChatService) Reply(ctx context.Context, request domain.ChatRequest) (*domain.ChatResponse, error) {
	if request.SessionKey == "" {
		return nil, domain.ErrSessionKeyMissing
	}

	session, err := s.sessions.GetSession(ctx, request.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.HasStore() {
		return nil, domain.ErrChatNotInitialized
	}
	if !session.HasAPIKey() {
		return nil, domain.ErrAPIKeyMissing
	}

	text, _, err := s.Converse(ctx, session.APIKey, session.StoreName, session.History, request.Message)
	if err != nil {
		return nil, err
	}

	session.AddTurn(request.Message, text, s.maxTurns)

	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &domain.ChatResponse{
		Response: text,
		History:  session.GetHistory(),
	}, nil
}

// Converse rehydrates a conversation over storeName seeded with prior, sends
// message and returns the reply with prior plus the new exchange. Generation
// failures become the reply text; only a failure to build the conversation
// is returned as an error.
func (s *ChatService) Converse(ctx context.Context, apiKey, storeName string, prior []domain.Turn, message string) (string, []domain.Turn, error) {
	client, err := s.geminiFactory.NewClient(apiKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	conversation, err := client.NewConversation(storeName, prior)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	var text string
	reply, err := conversation.Send(ctx, message)
	switch {
	case err != nil:
		logrus.Errorf("Error generating response: %v", err)
		text = fmt.Sprintf(generationErrorText, err)
	case !reply.HasCandidates:
		text = NoCandidateReply
	default:
		text = reply.Text
	}

	updated := make([]domain.Turn, 0, len(prior)+2)
	updated = append(updated, prior...)
	updated = append(updated,
		domain.Turn{Role: domain.TurnRoleUser, Text: message},
		domain.Turn{Role: domain.TurnRoleModel, Text: text},
	)

	return text, updated, nil
}
