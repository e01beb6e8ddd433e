package application

import (
	"context"
	"fmt"
	"sync"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/input"
	"drive-rag/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure SyncService implements the input port
var _ input.SyncService = (*SyncService)(nil)

// progressBufferSize bounds how far the sync can run ahead of the client
const progressBufferSize = 32

// Sync progress messages
const (
	MessageScanning         = "Scanning files..."
	MessageNoFiles          = "No files found to sync."
	MessageDownloading      = "Downloading data"
	MessageInitializingChat = "Initializing Chat Session..."
	MessageProvidingContext = "Providing context to the LLM"
	MessageNothingSynced    = "Failed to sync any files."
)

// SyncService struct - Application service orchestrating Drive to knowledge store syncs
type SyncService struct {
	sessions      output.SessionStore
	driveFactory  output.DriveClientFactory
	geminiFactory output.GeminiClientFactory
	ingestion     *IngestionDriver

	// active holds the keys of sessions with a running sync
	active sync.Map
}

// NewSyncService func - Creates new sync service
func NewSyncService(sessions output.SessionStore, driveFactory output.DriveClientFactory, geminiFactory output.GeminiClientFactory, ingestion *IngestionDriver) *SyncService {
	return &SyncService{
		sessions:      sessions,
		driveFactory:  driveFactory,
		geminiFactory: geminiFactory,
		ingestion:     ingestion,
	}
}

// Sync func - Use case: ingest the selected Drive items into a new knowledge store
func (s *SyncService) Sync(ctx context.Context, request domain.SyncRequest) (<-chan domain.ProgressEvent, error) {
	if request.SessionKey == "" {
		return nil, domain.ErrSessionKeyMissing
	}
	if len(request.Items) == 0 {
		return nil, fmt.Errorf("%w: no items selected", domain.ErrInvalidRequest)
	}

	session, err := s.sessions.GetSession(ctx, request.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if !session.HasAPIKey() {
		return nil, domain.ErrAPIKeyMissing
	}

	if _, running := s.active.LoadOrStore(request.SessionKey, struct{}{}); running {
		return nil, domain.ErrSyncInProgress
	}

	gemini, err := s.geminiFactory.NewClient(session.APIKey)
	if err != nil {
		s.active.Delete(request.SessionKey)
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	drive, err := s.driveFactory.NewDriveClient(ctx, session.Credentials)
	if err != nil {
		s.active.Delete(request.SessionKey)
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	run := &syncRun{
		id:        uuid.NewString(),
		service:   s,
		request:   request,
		drive:     drive,
		knowledge: gemini,
		events:    make(chan domain.ProgressEvent, progressBufferSize),
	}

	go run.execute(ctx)

	return run.events, nil
}

// commit replaces the session's store and clears its history.
// The session is reloaded so changes saved during the sync are kept.
func (s *SyncService) commit(ctx context.Context, sessionKey, storeName string) error {
	session, err := s.sessions.GetSession(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to reload session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session %s no longer exists", sessionKey)
	}

	session.CommitStore(storeName)

	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// syncRun holds the state of one sync stream
type syncRun struct {
	id        string
	service   *SyncService
	request   domain.SyncRequest
	drive     output.DriveClient
	knowledge output.KnowledgeStore
	events    chan domain.ProgressEvent
}

func (r *syncRun) log() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"sync_id": r.id, "session": r.request.SessionKey})
}

// send delivers an event unless the client has gone away
func (r *syncRun) send(ctx context.Context, event domain.ProgressEvent) {
	select {
	case r.events <- event:
	case <-ctx.Done():
	}
}

func (r *syncRun) execute(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log().Errorf("Critical sync error: %v", rec)
			r.send(ctx, criticalEvent(fmt.Errorf("%v", rec)))
		}
		r.service.active.Delete(r.request.SessionKey)
		close(r.events)
	}()

	r.log().Infof("Sync started with %d items", len(r.request.Items))

	r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusInfo, MessageScanning))

	files, err := r.expand(ctx)
	if err != nil {
		r.log().Errorf("Critical sync error: %v", err)
		r.send(ctx, criticalEvent(err))
		return
	}

	if len(files) == 0 {
		r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusError, MessageNoFiles))
		return
	}

	r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusInfo, fmt.Sprintf("Found %d files to process.", len(files))))

	storeName, succeeded := r.processAll(ctx, files)

	if len(succeeded) == 0 || storeName == "" {
		r.log().Warn("Sync finished without any ingested file")
		r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusError, MessageNothingSynced))
		return
	}

	r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusProgress, MessageInitializingChat).WithDetail(MessageProvidingContext))

	// Files already ingested are committed even if the client went away
	if err := r.service.commit(context.WithoutCancel(ctx), r.request.SessionKey, storeName); err != nil {
		r.log().Errorf("Critical sync error: %v", err)
		r.send(ctx, criticalEvent(err))
		return
	}

	r.log().Infof("Sync committed store %s with %d files", storeName, len(succeeded))

	complete := domain.NewProgressEvent(domain.ProgressStatusComplete, fmt.Sprintf("Sync complete! %d files ready.", len(succeeded)))
	complete.Files = succeeded
	r.send(ctx, complete)
}

// expand replaces folder items with every file below them
func (r *syncRun) expand(ctx context.Context) ([]domain.FileDescriptor, error) {
	files := make([]domain.FileDescriptor, 0, len(r.request.Items))
	for _, item := range r.request.Items {
		if item.MimeType != domain.FolderMimeType {
			files = append(files, domain.FileDescriptor{ID: item.ID, Name: item.Name, MimeType: item.MimeType})
			continue
		}

		r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusInfo, fmt.Sprintf("Scanning folder: %s...", item.Name)))

		found, err := r.drive.ListAllFiles(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// processAll ingests files one by one. The first store created is reused by
// every later file. It stops early when ctx is cancelled.
func (r *syncRun) processAll(ctx context.Context, files []domain.FileDescriptor) (string, []string) {
	storeName := ""
	succeeded := make([]string, 0, len(files))

	for i, file := range files {
		if ctx.Err() != nil {
			r.log().Infof("Client disconnected, stopping after %d of %d files", i, len(files))
			break
		}

		label := fmt.Sprintf("Processing %d/%d: %s", i+1, len(files), file.Name)
		r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusProgress, label).WithDetail(MessageDownloading))

		name, err := r.processFile(ctx, file, storeName, func(message string) {
			r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusProgress, label).WithDetail(message))
		})
		if storeName == "" && name != "" {
			storeName = name
		}
		if err != nil {
			r.log().Warnf("Failed to process %s: %v", file.Name, err)
			r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusError, fmt.Sprintf("Failed to process %s: %v", file.Name, err)))
			continue
		}

		succeeded = append(succeeded, file.Name)
		r.send(ctx, domain.NewProgressEvent(domain.ProgressStatusSuccess, fmt.Sprintf("Successfully processed: %s", file.Name)))
	}

	return storeName, succeeded
}

func (r *syncRun) processFile(ctx context.Context, file domain.FileDescriptor, storeName string, sink func(string)) (string, error) {
	content, err := r.drive.Download(ctx, file.ID, file.MimeType)
	if err != nil {
		return storeName, err
	}

	// The materializer exports editor-native documents, so the upload is labelled with the exported type
	mimeType := file.MimeType
	if exportMime, ok := domain.ResolveDownloadExport(file.MimeType); ok {
		mimeType = exportMime
	}

	return r.service.ingestion.Ingest(ctx, r.knowledge, domain.IngestRequest{
		Content:     content,
		DisplayName: file.Name,
		MimeType:    mimeType,
		StoreName:   storeName,
	}, sink)
}

func criticalEvent(err error) domain.ProgressEvent {
	return domain.NewProgressEvent(domain.ProgressStatusError, fmt.Sprintf("Critical Error: %v", err))
}
