package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"drive-rag/configs"
	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// Ingestion progress messages, in the order they are reported for one file
const (
	MessageSendingFile    = "Sending file to File Search"
	MessageRetryPlainText = "Retrying upload as text/plain..."
	MessageIndexing       = "Indexing and chunking"
)

// Default polling configuration
const (
	defaultPollInterval    = 1 * time.Second
	defaultPollMaxInterval = 10 * time.Second
	defaultPollTimeout     = 10 * time.Minute
)

// storeDisplayNamePrefix names stores created by a sync
const storeDisplayNamePrefix = "Drive_RAG_Store_"

// IngestionDriver struct - Submits one file to a knowledge store and waits until it is searchable
type IngestionDriver struct {
	pollInterval    time.Duration
	pollMaxInterval time.Duration
	pollTimeout     time.Duration
	now             func() time.Time
}

// NewIngestionDriver func - Creates the driver, applying defaults to zero values
func NewIngestionDriver(config configs.Sync) *IngestionDriver {
	driver := &IngestionDriver{
		pollInterval:    config.PollInterval,
		pollMaxInterval: config.PollMaxInterval,
		pollTimeout:     config.PollTimeout,
		now:             time.Now,
	}
	if driver.pollInterval <= 0 {
		driver.pollInterval = defaultPollInterval
	}
	if driver.pollMaxInterval < driver.pollInterval {
		driver.pollMaxInterval = defaultPollMaxInterval
		if driver.pollMaxInterval < driver.pollInterval {
			driver.pollMaxInterval = driver.pollInterval
		}
	}
	if driver.pollTimeout <= 0 {
		driver.pollTimeout = defaultPollTimeout
	}
	return driver
}

// Ingest writes request.Content to a temporary file, uploads it to the store
// and polls the ingestion operation until it completes. When request.StoreName
// is empty a new store is created first. Progress messages are passed to sink.
//
// The returned store name is set as soon as a store exists, even when the
// ingestion itself fails, so the caller can reuse it for the next file.
func (d *IngestionDriver) Ingest(ctx context.Context, store output.KnowledgeStore, request domain.IngestRequest, sink func(string)) (string, error) {
	if sink == nil {
		sink = func(string) {}
	}

	path, cleanup, err := writeTempFile(request.Content, request.MimeType, request.DisplayName)
	if err != nil {
		return request.StoreName, err
	}
	defer cleanup()

	storeName := request.StoreName
	if storeName == "" {
		created, err := store.CreateStore(ctx, fmt.Sprintf("%s%d", storeDisplayNamePrefix, d.now().Unix()))
		if err != nil {
			return "", fmt.Errorf("failed to create knowledge store: %w", err)
		}
		storeName = created.Name
		logrus.Infof("Created knowledge store %s", storeName)
	}

	contentType := domain.ResolveUploadContentType(request.MimeType, request.DisplayName)

	sink(MessageSendingFile)

	op, err := store.UploadFile(ctx, storeName, path, request.DisplayName, contentType)
	if err != nil {
		if ctx.Err() != nil {
			return storeName, ctx.Err()
		}
		logrus.Warnf("Upload of %s as %s failed, retrying as %s: %v", request.DisplayName, contentType, domain.PlainTextMimeType, err)
		sink(MessageRetryPlainText)

		op, err = store.UploadFile(ctx, storeName, path, request.DisplayName, domain.PlainTextMimeType)
		if err != nil {
			return storeName, fmt.Errorf("upload failed: %w", err)
		}
	}

	sink(MessageIndexing)

	op, err = d.waitForOperation(ctx, store, op)
	if err != nil {
		return storeName, err
	}
	if op.Error != "" {
		return storeName, fmt.Errorf("indexing failed: %s", op.Error)
	}

	logrus.Infof("Ingested %s into %s", request.DisplayName, storeName)
	return storeName, nil
}

// waitForOperation polls op with exponential backoff until it is done or pollTimeout elapses
func (d *IngestionDriver) waitForOperation(ctx context.Context, store output.KnowledgeStore, op *domain.UploadOperation) (*domain.UploadOperation, error) {
	if op.Done {
		return op, nil
	}
	if op.Name == "" {
		return nil, fmt.Errorf("%w: upload returned no operation to poll", domain.ErrGeminiUnavailable)
	}

	pollCtx, cancel := context.WithTimeout(ctx, d.pollTimeout)
	defer cancel()

	timedOut := func() error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s still running after %v", domain.ErrIngestionTimeout, op.Name, d.pollTimeout)
	}

	delay := d.pollInterval
	for !op.Done {
		select {
		case <-pollCtx.Done():
			return nil, timedOut()
		case <-time.After(delay):
		}

		next, err := store.GetOperation(pollCtx, op.Name)
		if err != nil {
			if pollCtx.Err() != nil {
				return nil, timedOut()
			}
			return nil, fmt.Errorf("failed to poll ingestion: %w", err)
		}
		op = next

		delay *= 2
		if delay > d.pollMaxInterval {
			delay = d.pollMaxInterval
		}
	}
	return op, nil
}

// tempFileSuffix derives a file suffix from the MIME type, then from the
// display name, then falls back to .bin
func tempFileSuffix(mimeType, displayName string) string {
	if m := mimetype.Lookup(mimeType); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	if ext := filepath.Ext(displayName); ext != "" && ext != "." {
		return ext
	}
	return ".bin"
}

func writeTempFile(content []byte, mimeType, displayName string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "drive-rag-*"+tempFileSuffix(mimeType, displayName))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logrus.Warnf("Failed to remove temp file %s: %v", path, err)
		}
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	logrus.Debugf("Temp file created at %s, size: %d bytes", path, len(content))
	return path, cleanup, nil
}
