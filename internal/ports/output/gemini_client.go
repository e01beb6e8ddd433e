package output

import (
	"context"

	"drive-rag/internal/domain"
)

// KnowledgeStore interface - Output port
// Defines what the ingestion driver needs from the retrieval index backend
// (Gemini File Search). Ingestion is asynchronous: an upload returns an
// operation handle that must be polled until it reports completion.
type KnowledgeStore interface {
	// CreateStore creates an empty store with the given display name and
	// returns it with its backend-assigned name.
	CreateStore(ctx context.Context, displayName string) (*domain.KnowledgeStore, error)

	// UploadFile submits the file at path for ingestion into storeName,
	// labelled with displayName and mimeType. The returned operation is
	// usually not done yet.
	UploadFile(ctx context.Context, storeName, path, displayName, mimeType string) (*domain.UploadOperation, error)

	// GetOperation refreshes an ingestion operation by name.
	GetOperation(ctx context.Context, name string) (*domain.UploadOperation, error)
}

// ChatModel interface - Output port
// Defines what the chat session manager needs from the language model.
type ChatModel interface {
	// NewConversation rehydrates a conversation bound to the retrieval tool of
	// exactly one store and seeded with history. It fails only when the
	// conversational context itself cannot be built.
	NewConversation(storeName string, history []domain.Turn) (Conversation, error)
}

// Conversation interface - A rehydrated model conversation
type Conversation interface {
	// Send sends one user message and waits for one model reply.
	// A reply without candidates is returned with HasCandidates=false, not as an error.
	Send(ctx context.Context, message string) (*domain.ModelReply, error)
}

// GeminiClient interface - Output port
// One client is built per request from the API key saved on the session.
type GeminiClient interface {
	KnowledgeStore
	ChatModel
}

// GeminiClientFactory interface - Output port
// Builds a GeminiClient for a user-supplied API key.
type GeminiClientFactory interface {
	// NewClient returns a client authenticated with apiKey.
	// Returns an error if apiKey is empty or the client cannot be configured.
	NewClient(apiKey string) (GeminiClient, error)
}
