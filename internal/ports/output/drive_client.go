package output

import (
	"context"

	"drive-rag/internal/domain"
)

// DriveClient interface - Output port
// Defines what the application needs from the remote file storage provider.
type DriveClient interface {
	// ListChildren returns one page of the direct children of folderID,
	// folders first, for interactive browsing.
	ListChildren(ctx context.Context, folderID string) ([]domain.FileDescriptor, error)

	// ListAllFiles returns every leaf file below folderID, descending into
	// subfolders depth-first and paging until the provider has no more
	// results. Any provider error aborts the whole listing; partial results
	// are never returned.
	ListAllFiles(ctx context.Context, folderID string) ([]domain.FileDescriptor, error)

	// Download returns the full content of a file. Editor-native documents
	// are exported to a portable format instead of being fetched raw.
	Download(ctx context.Context, fileID, mimeType string) ([]byte, error)
}

// DriveClientFactory interface - Output port
// Builds a DriveClient acting on behalf of the session's credentials.
// ctx bounds the lifetime of the token refreshes done by the client.
type DriveClientFactory interface {
	NewDriveClient(ctx context.Context, credentials *domain.Credentials) (DriveClient, error)
}

// IdentityProvider interface - Output port
// Handles the OAuth authorization-code exchange with the identity provider.
type IdentityProvider interface {
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a refreshable credential bundle.
	Exchange(ctx context.Context, code string) (*domain.Credentials, error)

	// FetchProfile returns the signed-in user's profile.
	FetchProfile(ctx context.Context, credentials *domain.Credentials) (*domain.UserProfile, error)
}
