package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"drive-rag/configs"
	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Compile-time checks to ensure the adapters implement the output ports
var (
	_ output.GeminiClientFactory = (*ClientFactory)(nil)
	_ output.GeminiClient        = (*ClientAdapter)(nil)
)

// Defaults for the Gemini Developer API
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	apiVersion     = "v1beta"
	defaultTimeout = 120 * time.Second
)

// Retry configuration constants
const (
	maxRetryAttempts  = 5
	initialDelay      = 1 * time.Second
	maxDelay          = 8 * time.Second
	backoffMultiplier = 2
)

// ClientFactory struct - Builds per-key Gemini adapters sharing one HTTP client
type ClientFactory struct {
	httpClient *http.Client
	baseURL    string
	model      string
	timeout    time.Duration
}

// NewClientFactory func - Creates the Gemini client factory
func NewClientFactory(config configs.Gemini) *ClientFactory {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// Remove trailing slash if present
	baseURL = strings.TrimSuffix(baseURL, "/")

	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("Gemini client factory initialized with base URL: %s, model: %s, timeout: %v", baseURL, model, timeout)

	return &ClientFactory{
		httpClient: httpClient,
		baseURL:    baseURL,
		model:      model,
		timeout:    timeout,
	}
}

// NewClient returns an adapter authenticated with apiKey
func (f *ClientFactory) NewClient(apiKey string) (output.GeminiClient, error) {
	if apiKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}

	// RetryOptions stay nil: the SDK makes a single attempt per call and
	// retries are decided by retryWithBackoff.
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: f.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    f.baseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &ClientAdapter{
		client:       client,
		model:        f.model,
		maxAttempts:  maxRetryAttempts,
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
	}, nil
}

// ClientAdapter struct - Output adapter for Gemini File Search stores and chats
type ClientAdapter struct {
	client *genai.Client
	model  string

	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// retryWithBackoff executes an operation with exponential backoff retry logic
func (a *ClientAdapter) retryWithBackoff(ctx context.Context, operation func() error) error {
	var lastErr error
	delay := a.initialDelay

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		if !isTransientError(err) {
			return classifyError(err)
		}
		lastErr = err

		if attempt == a.maxAttempts {
			logrus.Warnf("Gemini request attempt %d/%d failed with error: %v", attempt, a.maxAttempts, err)
			break
		}
		logrus.Warnf("Gemini request attempt %d/%d failed with error: %v, retrying in %v", attempt, a.maxAttempts, err, delay)

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay = delay * backoffMultiplier
		if delay > a.maxDelay {
			delay = a.maxDelay
		}
	}

	return fmt.Errorf("%w: %v after %d attempts", domain.ErrGeminiUnavailable, lastErr, a.maxAttempts)
}

// isTransientError determines if an error is transient and should be retried
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	// A cancelled caller is never retried
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || (apiErr.Code >= 500 && apiErr.Code < 600)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range []string{"connection refused", "connection reset", "no such host", "network is unreachable", "i/o timeout", "eof"} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}

// classifyError maps 4xx API errors to ErrInvalidRequest
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 {
		return fmt.Errorf("%w: status %d - %s", domain.ErrInvalidRequest, apiErr.Code, strings.TrimSpace(apiErr.Message))
	}
	return err
}

// CreateStore creates an empty File Search store
func (a *ClientAdapter) CreateStore(ctx context.Context, displayName string) (*domain.KnowledgeStore, error) {
	var store *genai.FileSearchStore
	err := a.retryWithBackoff(ctx, func() error {
		var err error
		store, err = a.client.FileSearchStores.Create(ctx, &genai.CreateFileSearchStoreConfig{DisplayName: displayName})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create file search store: %w", err)
	}
	if store == nil || store.Name == "" {
		return nil, fmt.Errorf("%w: store created without a name", domain.ErrGeminiUnavailable)
	}

	logrus.Infof("Created file search store: %s", store.Name)

	return &domain.KnowledgeStore{Name: store.Name, DisplayName: store.DisplayName}, nil
}

// UploadFile submits the file at path to storeName with a resumable upload.
// Uploads make a single attempt; the ingestion driver owns the one fallback
// resubmission as plain text.
func (a *ClientAdapter) UploadFile(ctx context.Context, storeName, path, displayName, mimeType string) (*domain.UploadOperation, error) {
	op, err := a.client.FileSearchStores.UploadToFileSearchStoreFromPath(ctx, path, storeName, &genai.UploadToFileSearchStoreConfig{
		DisplayName: displayName,
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", displayName, err)
	}

	logrus.Debugf("Upload of %s (%s) accepted as operation %s", displayName, mimeType, op.Name)

	return toDomainOperation(op), nil
}

// GetOperation refreshes a long-running ingestion operation
func (a *ClientAdapter) GetOperation(ctx context.Context, name string) (*domain.UploadOperation, error) {
	var op *genai.UploadToFileSearchStoreOperation
	err := a.retryWithBackoff(ctx, func() error {
		var err error
		op, err = a.client.Operations.GetUploadToFileSearchStoreOperation(ctx, &genai.UploadToFileSearchStoreOperation{Name: name}, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get operation %s: %w", name, err)
	}
	return toDomainOperation(op), nil
}

// toDomainOperation marks an operation carrying an error as done and failed
func toDomainOperation(op *genai.UploadToFileSearchStoreOperation) *domain.UploadOperation {
	result := &domain.UploadOperation{Name: op.Name, Done: op.Done}
	if len(op.Error) == 0 {
		return result
	}

	result.Done = true
	if message, ok := op.Error["message"].(string); ok && message != "" {
		result.Error = message
	} else {
		result.Error = fmt.Sprintf("operation failed with code %v", op.Error["code"])
	}
	return result
}
