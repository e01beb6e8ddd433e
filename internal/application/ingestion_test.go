package application

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"drive-rag/configs"
	"drive-rag/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestIngestionDriver returns a driver with fast polling
func newTestIngestionDriver() *IngestionDriver {
	driver := NewIngestionDriver(configs.Sync{
		PollInterval:    time.Millisecond,
		PollMaxInterval: 4 * time.Millisecond,
		PollTimeout:     time.Second,
	})
	driver.now = func() time.Time { return time.Unix(1700000000, 0) }
	return driver
}

// collectSink returns a sink and the slice it appends to
func collectSink() (func(string), *[]string) {
	messages := make([]string, 0)
	return func(m string) { messages = append(messages, m) }, &messages
}

func TestNewIngestionDriverAppliesDefaults(t *testing.T) {
	driver := NewIngestionDriver(configs.Sync{})

	assert.Equal(t, defaultPollInterval, driver.pollInterval)
	assert.Equal(t, defaultPollMaxInterval, driver.pollMaxInterval)
	assert.Equal(t, defaultPollTimeout, driver.pollTimeout)
}

func TestIngestIntoExistingStoreEmitsTwoMessages(t *testing.T) {
	// Arrange
	gemini := &MockGeminiClient{}
	sink, messages := collectSink()

	// Act
	name, err := newTestIngestionDriver().Ingest(context.Background(), gemini, domain.IngestRequest{
		Content:     []byte("%PDF-1.4 report"),
		DisplayName: "report.pdf",
		MimeType:    "application/pdf",
		StoreName:   "fileSearchStores/existing",
	}, sink)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "fileSearchStores/existing", name)
	assert.Empty(t, gemini.CreatedStores)
	assert.Equal(t, []string{MessageSendingFile, MessageIndexing}, *messages)

	require.Len(t, gemini.Uploads, 1)
	upload := gemini.Uploads[0]
	assert.Equal(t, "fileSearchStores/existing", upload.StoreName)
	assert.Equal(t, "application/pdf", upload.MimeType)
	assert.Equal(t, "%PDF-1.4 report", upload.Content)
	assert.True(t, strings.HasSuffix(upload.Path, ".pdf"), "temp file should carry the pdf suffix, got %s", upload.Path)

	_, statErr := os.Stat(upload.Path)
	assert.True(t, os.IsNotExist(statErr), "temp file should be removed")
}

func TestIngestCreatesStoreWhenMissing(t *testing.T) {
	gemini := &MockGeminiClient{}

	name, err := newTestIngestionDriver().Ingest(context.Background(), gemini, domain.IngestRequest{
		Content:     []byte("hello"),
		DisplayName: "notes.txt",
		MimeType:    "text/plain",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, storeName(1), name)
	assert.Equal(t, []string{"Drive_RAG_Store_1700000000"}, gemini.CreatedStores)
	assert.Equal(t, storeName(1), gemini.Uploads[0].StoreName)
}

func TestIngestCreateStoreFailure(t *testing.T) {
	gemini := &MockGeminiClient{
		CreateStoreFunc: func(displayName string) (*domain.KnowledgeStore, error) {
			return nil, domain.ErrGeminiUnavailable
		},
	}

	name, err := newTestIngestionDriver().Ingest(context.Background(), gemini, domain.IngestRequest{
		Content:     []byte("hello"),
		DisplayName: "notes.txt",
		MimeType:    "text/plain",
	}, nil)

	assert.ErrorIs(t, err, domain.ErrGeminiUnavailable)
	assert.Empty(t, name)
	assert.Empty(t, gemini.Uploads)
}

func TestIngestResolvesCSVToPlainText(t *testing.T) {
	gemini := &MockGeminiClient{}

	_, err := newTestIngestionDriver().Ingest(context.Background(), gemini, domain.IngestRequest{
		Content:     []byte("a,b\n1,2\n"),
		DisplayName: "numbers.csv",
		MimeType:    "text/csv",
		StoreName:   "fileSearchStores/s",
	}, nil)

	require.NoError(t, err)
	require.Len(t, gemini.Uploads, 1)
	assert.Equal(t, domain.PlainTextMimeType, gemini.Uploads[0].MimeType)
}

func TestIngestRetriesOnceAsPlainText(t *testing.T) {
	// Arrange
	gemini := &MockGeminiClient{
		UploadFileFunc: func(call UploadCall) (*domain.UploadOperation, error) {
			if call.MimeType != domain.PlainTextMimeType {
				return nil, domain.ErrInvalidRequest
			}
			return &domain.UploadOperation{Name: "operations/1", Done: true}, nil
		},
	}
	sink, messages := collectSink()

	// Act
	_, err := newTestIngestionDriver().Ingest(context.Background(), gemini, domain.IngestRequest{
		Content:     []byte("PK\x03\x04"),
		DisplayName: "slides.pptx",
		MimeType:    "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		StoreName:   "fileSearchStores/s",
	}, sink)

	// Assert
	require.NoError(t, err)
	require.Len(t, gemini.Uploads, 2)
	assert.Equal(t, domain.PlainTextMimeType, gemini.Uploads[1].MimeType)
	assert.Equal(t, []string{MessageSendingFile, MessageRetryPlainText, MessageIndexing}, *messages)
}

func TestIngestGivesUpAfterOneRetry(t *testing.T) {
	gemini := &MockGeminiClient{
		UploadFileFunc: func(call UploadCall) (*domain.UploadOperation, error) {
			return nil, domain.ErrInvalidRequest
		},
	}
	sink, messages := collectSink()

	name, err := newTestIngestionDriver().Ingest(context.Background(), gemini, domain.IngestRequest{
		Content:     []byte("x"),
		DisplayName: "x.bin",
		MimeType:    "application/octet-stream",
	}, sink)

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, storeName(1), name, "a created store is returned for reuse")
	assert.Len(t, gemini.Uploads, 2)
	assert.NotContains(t, *messages, MessageIndexing)
}

func TestIngestPollsUntilDone(t *testing.T) {
	polls := 0
	gemini := &MockGeminiClient{
		UploadFileFunc: func(call UploadCall) (*domain.UploadOperation, error) {
			return &domain.UploadOperation{Name: "operations/1"}, nil
		},
		GetOperationFunc: func(name string) (*domain.UploadOperation, error) {
			polls++
			return &domain.UploadOperation{Name: name, Done: polls == 3}, nil
		},
	}

	_, err := newTestIngestionDriver().Ingest(context.Background(), gemini, domain.IngestRequest{
		Content: []byte("x"), DisplayName: "x.txt", MimeType: "text/plain", StoreName: "fileSearchStores/s",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, polls)
}

func TestIngestTimesOutWhenOperationNeverFinishes(t *testing.T) {
	gemini := &MockGeminiClient{
		UploadFileFunc: func(call UploadCall) (*domain.UploadOperation, error) {
			return &domain.UploadOperation{Name: "operations/stuck"}, nil
		},
		GetOperationFunc: func(name string) (*domain.UploadOperation, error) {
			return &domain.UploadOperation{Name: name}, nil
		},
	}
	driver := newTestIngestionDriver()
	driver.pollTimeout = 20 * time.Millisecond

	_, err := driver.Ingest(context.Background(), gemini, domain.IngestRequest{
		Content: []byte("x"), DisplayName: "x.txt", MimeType: "text/plain", StoreName: "fileSearchStores/s",
	}, nil)

	assert.ErrorIs(t, err, domain.ErrIngestionTimeout)
}

func TestIngestStopsPollingWhenCancelled(t *testing.T) {
	gemini := &MockGeminiClient{
		UploadFileFunc: func(call UploadCall) (*domain.UploadOperation, error) {
			return &domain.UploadOperation{Name: "operations/slow"}, nil
		},
		GetOperationFunc: func(name string) (*domain.UploadOperation, error) {
			return &domain.UploadOperation{Name: name}, nil
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestIngestionDriver().Ingest(ctx, gemini, domain.IngestRequest{
		Content: []byte("x"), DisplayName: "x.txt", MimeType: "text/plain", StoreName: "fileSearchStores/s",
	}, nil)

	assert.True(t, errors.Is(err, context.DeadlineExceeded), "expected caller deadline, got %v", err)
	assert.False(t, errors.Is(err, domain.ErrIngestionTimeout))
}

func TestIngestReportsFailedOperation(t *testing.T) {
	gemini := &MockGeminiClient{
		UploadFileFunc: func(call UploadCall) (*domain.UploadOperation, error) {
			return &domain.UploadOperation{Name: "operations/1", Done: true, Error: "unsupported file"}, nil
		},
	}

	_, err := newTestIngestionDriver().Ingest(context.Background(), gemini, domain.IngestRequest{
		Content: []byte("x"), DisplayName: "x.txt", MimeType: "text/plain", StoreName: "fileSearchStores/s",
	}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file")
}

func TestTempFileSuffix(t *testing.T) {
	tests := []struct {
		name        string
		mimeType    string
		displayName string
		want        string
	}{
		{"from mime type", "application/pdf", "whatever", ".pdf"},
		{"csv mime type", "text/csv", "data", ".csv"},
		{"unknown mime falls back to name", "application/x-made-up", "deck.key", ".key"},
		{"generic binary falls back to name", "application/octet-stream", "report.docx", ".docx"},
		{"nothing known", "application/x-made-up", "README", ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tempFileSuffix(tt.mimeType, tt.displayName))
		})
	}
}
