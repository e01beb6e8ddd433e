package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"
)

// Mock implementations for testing

// MockSessionStore implements output.SessionStore for testing.
// It keeps sessions in a map so load/modify/save flows behave like a real store.
type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session

	GetSessionFunc    func(key string) (*domain.Session, error)
	UpdateSessionFunc func(session *domain.Session) error

	// Captured values for assertions
	UpdateCalls []*domain.Session
	DeleteCalls []string
}

func NewMockSessionStore(sessions ...*domain.Session) *MockSessionStore {
	m := &MockSessionStore{sessions: make(map[string]*domain.Session)}
	for _, s := range sessions {
		m.sessions[s.Key] = s.Clone()
	}
	return m
}

func (m *MockSessionStore) GetSession(ctx context.Context, key string) (*domain.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok {
		return s.Clone(), nil
	}
	return nil, nil
}

func (m *MockSessionStore) UpdateSession(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, session.Clone())
	if m.UpdateSessionFunc != nil {
		if err := m.UpdateSessionFunc(session); err != nil {
			return err
		}
	}
	m.sessions[session.Key] = session.Clone()
	return nil
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	delete(m.sessions, key)
	return nil
}

func (m *MockSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// Stored returns a copy of what is currently saved for key
func (m *MockSessionStore) Stored(key string) *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok {
		return s.Clone()
	}
	return nil
}

// MockDriveClient implements output.DriveClient for testing
type MockDriveClient struct {
	ListChildrenFunc func(folderID string) ([]domain.FileDescriptor, error)
	ListAllFilesFunc func(folderID string) ([]domain.FileDescriptor, error)
	DownloadFunc     func(fileID, mimeType string) ([]byte, error)

	// Captured values for assertions
	ListedFolders []string
	Downloads     []string
}

func (m *MockDriveClient) ListChildren(ctx context.Context, folderID string) ([]domain.FileDescriptor, error) {
	m.ListedFolders = append(m.ListedFolders, folderID)
	if m.ListChildrenFunc != nil {
		return m.ListChildrenFunc(folderID)
	}
	return []domain.FileDescriptor{}, nil
}

func (m *MockDriveClient) ListAllFiles(ctx context.Context, folderID string) ([]domain.FileDescriptor, error) {
	m.ListedFolders = append(m.ListedFolders, folderID)
	if m.ListAllFilesFunc != nil {
		return m.ListAllFilesFunc(folderID)
	}
	return []domain.FileDescriptor{}, nil
}

func (m *MockDriveClient) Download(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	m.Downloads = append(m.Downloads, fileID)
	if m.DownloadFunc != nil {
		return m.DownloadFunc(fileID, mimeType)
	}
	return []byte("content of " + fileID), nil
}

// MockDriveClientFactory implements output.DriveClientFactory for testing
type MockDriveClientFactory struct {
	Client *MockDriveClient
	Err    error

	LastCredentials *domain.Credentials
}

func (m *MockDriveClientFactory) NewDriveClient(ctx context.Context, credentials *domain.Credentials) (output.DriveClient, error) {
	m.LastCredentials = credentials
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Client, nil
}

// UploadCall records one UploadFile invocation
type UploadCall struct {
	StoreName   string
	DisplayName string
	MimeType    string
	Content     string
	Path        string
}

// MockGeminiClient implements output.GeminiClient for testing
type MockGeminiClient struct {
	mu sync.Mutex

	CreateStoreFunc     func(displayName string) (*domain.KnowledgeStore, error)
	UploadFileFunc      func(call UploadCall) (*domain.UploadOperation, error)
	GetOperationFunc    func(name string) (*domain.UploadOperation, error)
	NewConversationFunc func(storeName string, history []domain.Turn) (output.Conversation, error)

	// Captured values for assertions
	CreatedStores []string
	Uploads       []UploadCall
	Polls         int
	Conversations int
	LastHistory   []domain.Turn
	LastStoreName string
	storeSequence int
}

func (m *MockGeminiClient) CreateStore(ctx context.Context, displayName string) (*domain.KnowledgeStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatedStores = append(m.CreatedStores, displayName)
	if m.CreateStoreFunc != nil {
		return m.CreateStoreFunc(displayName)
	}
	m.storeSequence++
	return &domain.KnowledgeStore{Name: storeName(m.storeSequence), DisplayName: displayName}, nil
}

func (m *MockGeminiClient) UploadFile(ctx context.Context, storeName, path, displayName, mimeType string) (*domain.UploadOperation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := UploadCall{StoreName: storeName, DisplayName: displayName, MimeType: mimeType, Content: readFile(path), Path: path}
	m.Uploads = append(m.Uploads, call)
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(call)
	}
	return &domain.UploadOperation{Name: "operations/" + displayName, Done: true}, nil
}

func (m *MockGeminiClient) GetOperation(ctx context.Context, name string) (*domain.UploadOperation, error) {
	m.mu.Lock()
	m.Polls++
	m.mu.Unlock()
	if m.GetOperationFunc != nil {
		return m.GetOperationFunc(name)
	}
	return &domain.UploadOperation{Name: name, Done: true}, nil
}

func (m *MockGeminiClient) NewConversation(storeName string, history []domain.Turn) (output.Conversation, error) {
	m.Conversations++
	m.LastStoreName = storeName
	m.LastHistory = append([]domain.Turn(nil), history...)
	if m.NewConversationFunc != nil {
		return m.NewConversationFunc(storeName, history)
	}
	return &MockConversation{}, nil
}

// MockConversation implements output.Conversation for testing
type MockConversation struct {
	SendFunc func(message string) (*domain.ModelReply, error)

	Messages []string
}

func (m *MockConversation) Send(ctx context.Context, message string) (*domain.ModelReply, error) {
	m.Messages = append(m.Messages, message)
	if m.SendFunc != nil {
		return m.SendFunc(message)
	}
	return &domain.ModelReply{Text: "answer to " + message, HasCandidates: true}, nil
}

// MockGeminiFactory implements output.GeminiClientFactory for testing
type MockGeminiFactory struct {
	Client *MockGeminiClient
	Err    error

	LastAPIKey string
}

func (m *MockGeminiFactory) NewClient(apiKey string) (output.GeminiClient, error) {
	m.LastAPIKey = apiKey
	if m.Err != nil {
		return nil, m.Err
	}
	if apiKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}
	return m.Client, nil
}

// MockIdentityProvider implements output.IdentityProvider for testing
type MockIdentityProvider struct {
	ExchangeFunc     func(code string) (*domain.Credentials, error)
	FetchProfileFunc func(credentials *domain.Credentials) (*domain.UserProfile, error)

	LastState string
	LastCode  string
}

func (m *MockIdentityProvider) AuthCodeURL(state string) string {
	m.LastState = state
	return "https://accounts.example.com/auth?state=" + state
}

func (m *MockIdentityProvider) Exchange(ctx context.Context, code string) (*domain.Credentials, error) {
	m.LastCode = code
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(code)
	}
	return &domain.Credentials{Token: "access", RefreshToken: "refresh"}, nil
}

func (m *MockIdentityProvider) FetchProfile(ctx context.Context, credentials *domain.Credentials) (*domain.UserProfile, error) {
	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(credentials)
	}
	return &domain.UserProfile{Name: "Ada", Email: "ada@example.com"}, nil
}

// MockStateSigner implements StateSigner for testing with a trivial encoding
type MockStateSigner struct{}

func (MockStateSigner) Sign(sessionKey string) (string, error) {
	return "state:" + sessionKey, nil
}

func (MockStateSigner) Verify(state string) (string, error) {
	if len(state) <= len("state:") || state[:len("state:")] != "state:" {
		return "", errors.New("bad state")
	}
	return state[len("state:"):], nil
}

func storeName(n int) string {
	return fmt.Sprintf("fileSearchStores/store-%d", n)
}

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
