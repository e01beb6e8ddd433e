package domain

import "errors"

// Client error types (reported synchronously, no side effects)

var (
	// ErrSessionKeyMissing indicates the request carried no session key
	ErrSessionKeyMissing = errors.New("session ID header is required")

	// ErrNotAuthenticated indicates the session holds no Drive credentials
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAPIKeyMissing indicates no Gemini API key was saved on the session
	ErrAPIKeyMissing = errors.New("gemini API key not set, please provide it in settings")

	// ErrChatNotInitialized indicates chat was requested before any sync committed a store
	ErrChatNotInitialized = errors.New("chat session not initialized, please sync a folder first")

	// ErrSyncInProgress indicates another sync is already running for the session
	ErrSyncInProgress = errors.New("a sync is already running for this session")

	// ErrInvalidState indicates the OAuth state could not be verified
	ErrInvalidState = errors.New("state (session ID) is missing or invalid")
)

// Backend error types

var (
	// ErrDriveFetch indicates a Drive listing or download failed
	ErrDriveFetch = errors.New("drive fetch failed")

	// ErrNoFilesFound indicates folder expansion produced nothing to sync
	ErrNoFilesFound = errors.New("no files found to sync")

	// ErrGeminiUnavailable indicates the Gemini API could not be reached after retries
	ErrGeminiUnavailable = errors.New("gemini service unavailable")

	// ErrIngestionTimeout indicates an ingestion operation did not finish in time
	ErrIngestionTimeout = errors.New("ingestion operation timed out")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")
)
