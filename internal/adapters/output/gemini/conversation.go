package gemini

import (
	"context"
	"fmt"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Compile-time check to ensure Conversation implements the output port
var _ output.Conversation = (*Conversation)(nil)

// SystemInstruction steers the answers given over the retrieved documents
const SystemInstruction = `You are a helpful, professional AI assistant.
When answering questions based on the provided documents:
1. Use Markdown formatting (bolding, headers, bullet points) to make your answers easy to read.
2. Be concise and direct. Avoid walls of text.
3. Use tables if comparing data.
4. If the answer is not in the documents, state that clearly.`

// Conversation struct - A chat bound to the File Search tool of one store
type Conversation struct {
	client *ClientAdapter
	chat   *genai.Chat
}

// NewConversation rehydrates a conversation from stored history
func (a *ClientAdapter) NewConversation(storeName string, history []domain.Turn) (output.Conversation, error) {
	if storeName == "" {
		return nil, fmt.Errorf("%w: store name is required", domain.ErrInvalidRequest)
	}

	contents := make([]*genai.Content, 0, len(history))
	for i, turn := range history {
		if turn.Role != domain.TurnRoleUser && turn.Role != domain.TurnRoleModel {
			return nil, fmt.Errorf("%w: history entry %d has unknown role %q", domain.ErrInvalidRequest, i, turn.Role)
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(turn.Role)))
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemInstruction}}},
		Tools: []*genai.Tool{{
			FileSearch: &genai.FileSearch{FileSearchStoreNames: []string{storeName}},
		}},
	}

	// Creating a chat makes no request
	chat, err := a.client.Chats.Create(context.Background(), a.model, config, contents)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	return &Conversation{client: a, chat: chat}, nil
}

// Send sends one user message and returns the model's reply.
// The chat records the exchange only when it succeeds.
func (c *Conversation) Send(ctx context.Context, message string) (*domain.ModelReply, error) {
	var resp *genai.GenerateContentResponse
	err := c.client.retryWithBackoff(ctx, func() error {
		var err error
		resp, err = c.chat.SendMessage(ctx, genai.Part{Text: message})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		blockReason := ""
		if resp.PromptFeedback != nil {
			blockReason = string(resp.PromptFeedback.BlockReason)
		}
		logrus.Warnf("Gemini returned no candidates, block reason: %q", blockReason)
		return &domain.ModelReply{HasCandidates: false}, nil
	}

	var tokens int32
	if resp.UsageMetadata != nil {
		tokens = resp.UsageMetadata.TotalTokenCount
	}
	logrus.Infof("Generated reply with model %s, tokens: %d", c.client.model, tokens)

	return &domain.ModelReply{Text: resp.Text(), HasCandidates: true}, nil
}
