package http

import (
	"context"

	"drive-rag/internal/domain"
)

// MockAuthService implements input.AuthService for testing
type MockAuthService struct {
	LoginFunc      func(sessionKey string) (*domain.LoginURL, error)
	CallbackFunc   func(request domain.CallbackRequest) (string, error)
	StatusFunc     func(sessionKey string) (*domain.AuthStatus, error)
	SaveAPIKeyFunc func(sessionKey, apiKey string) error
	LogoutFunc     func(sessionKey string) error

	// Captured values for assertions
	LastSessionKey string
	LastAPIKey     string
	LastCallback   domain.CallbackRequest
}

func (m *MockAuthService) Login(ctx context.Context, sessionKey string) (*domain.LoginURL, error) {
	m.LastSessionKey = sessionKey
	if m.LoginFunc != nil {
		return m.LoginFunc(sessionKey)
	}
	if sessionKey == "" {
		return nil, domain.ErrSessionKeyMissing
	}
	return &domain.LoginURL{URL: "https://accounts.example.com/auth?state=" + sessionKey}, nil
}

func (m *MockAuthService) Callback(ctx context.Context, request domain.CallbackRequest) (string, error) {
	m.LastCallback = request
	if m.CallbackFunc != nil {
		return m.CallbackFunc(request)
	}
	return "http://localhost:5173?auth=success", nil
}

func (m *MockAuthService) Status(ctx context.Context, sessionKey string) (*domain.AuthStatus, error) {
	m.LastSessionKey = sessionKey
	if m.StatusFunc != nil {
		return m.StatusFunc(sessionKey)
	}
	return &domain.AuthStatus{}, nil
}

func (m *MockAuthService) SaveAPIKey(ctx context.Context, sessionKey, apiKey string) error {
	m.LastSessionKey = sessionKey
	m.LastAPIKey = apiKey
	if m.SaveAPIKeyFunc != nil {
		return m.SaveAPIKeyFunc(sessionKey, apiKey)
	}
	return nil
}

func (m *MockAuthService) Logout(ctx context.Context, sessionKey string) error {
	m.LastSessionKey = sessionKey
	if m.LogoutFunc != nil {
		return m.LogoutFunc(sessionKey)
	}
	return nil
}

// MockDriveService implements input.DriveService for testing
type MockDriveService struct {
	ListFolderFunc func(sessionKey, folderID string) ([]domain.FileDescriptor, error)

	LastFolderID string
}

func (m *MockDriveService) ListFolder(ctx context.Context, sessionKey, folderID string) ([]domain.FileDescriptor, error) {
	m.LastFolderID = folderID
	if m.ListFolderFunc != nil {
		return m.ListFolderFunc(sessionKey, folderID)
	}
	return []domain.FileDescriptor{}, nil
}

// MockSyncService implements input.SyncService for testing.
// By default it replays Events on a closed channel.
type MockSyncService struct {
	SyncFunc func(ctx context.Context, request domain.SyncRequest) (<-chan domain.ProgressEvent, error)
	Events   []domain.ProgressEvent

	LastRequest domain.SyncRequest
}

func (m *MockSyncService) Sync(ctx context.Context, request domain.SyncRequest) (<-chan domain.ProgressEvent, error) {
	m.LastRequest = request
	if m.SyncFunc != nil {
		return m.SyncFunc(ctx, request)
	}
	events := make(chan domain.ProgressEvent, len(m.Events))
	for _, event := range m.Events {
		events <- event
	}
	close(events)
	return events, nil
}

// MockChatService implements input.ChatService for testing
type MockChatService struct {
	ReplyFunc func(request domain.ChatRequest) (*domain.ChatResponse, error)

	LastRequest domain.ChatRequest
}

func (m *MockChatService) Reply(ctx context.Context, request domain.ChatRequest) (*domain.ChatResponse, error) {
	m.LastRequest = request
	if m.ReplyFunc != nil {
		return m.ReplyFunc(request)
	}
	return &domain.ChatResponse{Response: "answer to " + request.Message}, nil
}
