package input

import (
	"context"

	"drive-rag/internal/domain"
)

// SyncService interface - Input port (use case)
// Ingests a selection of Drive files and folders into a knowledge store.
type SyncService interface {
	// Sync validates the session synchronously and then runs the sync in the
	// background. Progress events are delivered in order on the returned
	// channel, which is closed when the run ends. Cancelling ctx stops the
	// run before the next file; files already ingested are still committed.
	Sync(ctx context.Context, request domain.SyncRequest) (<-chan domain.ProgressEvent, error)
}

// ChatService interface - Input port (use case)
type ChatService interface {
	// Reply answers one message against the session's knowledge store and
	// persists the exchange in the session history.
	Reply(ctx context.Context, request domain.ChatRequest) (*domain.ChatResponse, error)
}

// DriveService interface - Input port (use case)
type DriveService interface {
	// ListFolder lists the direct children of a folder for browsing.
	ListFolder(ctx context.Context, sessionKey, folderID string) ([]domain.FileDescriptor, error)
}

// AuthService interface - Input port (use case)
type AuthService interface {
	Login(ctx context.Context, sessionKey string) (*domain.LoginURL, error)
	// Callback completes the OAuth flow and returns where to redirect the user.
	Callback(ctx context.Context, request domain.CallbackRequest) (string, error)
	Status(ctx context.Context, sessionKey string) (*domain.AuthStatus, error)
	SaveAPIKey(ctx context.Context, sessionKey, apiKey string) error
	Logout(ctx context.Context, sessionKey string) error
}
