package google

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
)

// Compile-time check to ensure DriveClientAdapter implements DriveClient interface
var _ output.DriveClient = (*DriveClientAdapter)(nil)

// Listing configuration constants
const (
	listPageSize    = 100
	defaultMaxDepth = 32
	listFields      = "nextPageToken, files(id, name, mimeType)"
	browseFields    = "nextPageToken, files(id, name, mimeType, iconLink)"
)

// DriveClientAdapter struct - Output adapter for the Google Drive v3 API
type DriveClientAdapter struct {
	srv      *drive.Service
	maxDepth int
}

// NewDriveClientAdapter func - Wraps an authorized Drive service.
// maxDepth bounds folder nesting during recursive listing, 0 uses the default.
func NewDriveClientAdapter(srv *drive.Service, maxDepth int) *DriveClientAdapter {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &DriveClientAdapter{
		srv:      srv,
		maxDepth: maxDepth,
	}
}

// queryEscaper escapes a value for a single-quoted Drive query string
var queryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func childrenQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and trashed = false", queryEscaper.Replace(folderID))
}

// ListChildren returns the first page of direct children, folders first
func (a *DriveClientAdapter) ListChildren(ctx context.Context, folderID string) ([]domain.FileDescriptor, error) {
	if folderID == "" {
		folderID = domain.RootFolderID
	}

	resp, err := a.srv.Files.List().
		Q(childrenQuery(folderID)).
		PageSize(listPageSize).
		Fields(browseFields).
		OrderBy("folder,name").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: list children of %s: %w", domain.ErrDriveFetch, folderID, err)
	}

	files := make([]domain.FileDescriptor, len(resp.Files))
	for i, f := range resp.Files {
		files[i] = toDescriptor(f)
	}
	return files, nil
}

// ListAllFiles returns every non-folder file below folderID, depth-first
func (a *DriveClientAdapter) ListAllFiles(ctx context.Context, folderID string) ([]domain.FileDescriptor, error) {
	files := make([]domain.FileDescriptor, 0)
	visited := make(map[string]struct{})

	if err := a.walk(ctx, folderID, 0, visited, &files); err != nil {
		return nil, err
	}

	logrus.Debugf("Listed %d files under folder %s", len(files), folderID)
	return files, nil
}

func (a *DriveClientAdapter) walk(ctx context.Context, folderID string, depth int, visited map[string]struct{}, files *[]domain.FileDescriptor) error {
	if _, seen := visited[folderID]; seen {
		// A folder reachable through several parents is listed once
		return nil
	}
	visited[folderID] = struct{}{}

	if depth > a.maxDepth {
		return fmt.Errorf("%w: folder %s is nested deeper than %d levels", domain.ErrDriveFetch, folderID, a.maxDepth)
	}

	pageToken := ""
	seenTokens := make(map[string]struct{})
	for {
		req := a.srv.Files.List().
			Q(childrenQuery(folderID)).
			PageSize(listPageSize).
			Fields(listFields).
			Context(ctx)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		resp, err := req.Do()
		if err != nil {
			return fmt.Errorf("%w: list folder %s: %w", domain.ErrDriveFetch, folderID, err)
		}

		for _, f := range resp.Files {
			if f.MimeType == domain.FolderMimeType {
				if err := a.walk(ctx, f.Id, depth+1, visited, files); err != nil {
					return err
				}
				continue
			}
			*files = append(*files, toDescriptor(f))
		}

		if resp.NextPageToken == "" {
			return nil
		}
		if _, repeated := seenTokens[resp.NextPageToken]; repeated {
			logrus.Warnf("Drive returned a repeated page token for folder %s, stopping pagination", folderID)
			return nil
		}
		seenTokens[resp.NextPageToken] = struct{}{}
		pageToken = resp.NextPageToken
	}
}

// Download returns the whole content of a file, exporting editor-native documents
func (a *DriveClientAdapter) Download(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	var (
		resp *http.Response
		err  error
	)
	if exportMime, ok := domain.ResolveDownloadExport(mimeType); ok {
		resp, err = a.srv.Files.Export(fileID, exportMime).Context(ctx).Download()
	} else {
		resp, err = a.srv.Files.Get(fileID).Context(ctx).Download()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %w", domain.ErrDriveFetch, fileID, err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrDriveFetch, fileID, err)
	}
	return content, nil
}

func toDescriptor(f *drive.File) domain.FileDescriptor {
	return domain.FileDescriptor{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		IconLink: f.IconLink,
	}
}
