package google

import (
	"context"
	"fmt"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Compile-time check to ensure DriveClientFactory implements DriveClientFactory interface
var _ output.DriveClientFactory = (*DriveClientFactory)(nil)

// DriveClientFactory struct - Builds a Drive adapter per request from session credentials
type DriveClientFactory struct {
	maxDepth int
	options  []option.ClientOption
}

// NewDriveClientFactory func - Creates the factory.
// opts are appended to every Drive service it builds.
func NewDriveClientFactory(maxDepth int, opts ...option.ClientOption) *DriveClientFactory {
	return &DriveClientFactory{
		maxDepth: maxDepth,
		options:  opts,
	}
}

// NewDriveClient returns a Drive adapter authorized with credentials
func (f *DriveClientFactory) NewDriveClient(ctx context.Context, credentials *domain.Credentials) (output.DriveClient, error) {
	if credentials == nil {
		return nil, domain.ErrNotAuthenticated
	}

	opts := append([]option.ClientOption{option.WithTokenSource(TokenSource(ctx, credentials))}, f.options...)
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return NewDriveClientAdapter(srv, f.maxDepth), nil
}
