package application

import (
	"context"
	"fmt"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/input"
	"drive-rag/internal/ports/output"
)

// Compile-time check to ensure DriveService implements the input port
var _ input.DriveService = (*DriveService)(nil)

// DriveService struct - Application service for browsing the user's Drive
type DriveService struct {
	sessions     output.SessionStore
	driveFactory output.DriveClientFactory
}

// NewDriveService func - Creates new drive service
func NewDriveService(sessions output.SessionStore, driveFactory output.DriveClientFactory) *DriveService {
	return &DriveService{
		sessions:     sessions,
		driveFactory: driveFactory,
	}
}

// ListFolder func - Use case: list one folder, folders first
func (s *DriveService) ListFolder(ctx context.Context, sessionKey, folderID string) ([]domain.FileDescriptor, error) {
	if sessionKey == "" {
		return nil, domain.ErrSessionKeyMissing
	}

	session, err := s.sessions.GetSession(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}

	if folderID == "" {
		folderID = domain.RootFolderID
	}

	client, err := s.driveFactory.NewDriveClient(ctx, session.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	return client.ListChildren(ctx, folderID)
}
