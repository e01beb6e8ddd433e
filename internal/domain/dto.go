package domain

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// SyncItem is one user selection: a single file or a folder reference
	SyncItem struct {
		ID       string
		Name     string
		MimeType string
	}

	// SyncRequest struct - Domain request DTO for a sync operation
	SyncRequest struct {
		SessionKey string
		Items      []SyncItem
	}

	// IngestRequest struct - One file handed to the ingestion driver
	IngestRequest struct {
		Content     []byte
		DisplayName string
		MimeType    string
		// StoreName is empty for the first file of a sync; the driver then
		// creates the store and returns its name.
		StoreName string
	}

	// ChatRequest struct - Domain request DTO for one chat exchange
	ChatRequest struct {
		SessionKey string
		Message    string
	}

	// ChatResponse struct - Domain response DTO for one chat exchange
	ChatResponse struct {
		Response string
		History  []Turn
	}

	// AuthStatus struct - What the client needs to render its login state
	AuthStatus struct {
		Authenticated bool
		IsAPIKeySet   bool
		User          *UserProfile
	}

	// LoginURL struct - Authorization URL the client redirects to
	LoginURL struct {
		URL string
	}

	// CallbackRequest struct - Query of the OAuth redirect
	CallbackRequest struct {
		Code  string
		State string
	}

	// UploadOperation struct - Handle of an asynchronous ingestion in the index backend
	UploadOperation struct {
		Name  string
		Done  bool
		Error string
	}

	// KnowledgeStore struct - A backend-managed retrieval store
	KnowledgeStore struct {
		Name        string
		DisplayName string
	}

	// ModelReply struct - One generated answer
	ModelReply struct {
		Text string
		// HasCandidates is false when the backend returned no candidate,
		// e.g. the answer was blocked by safety filtering.
		HasCandidates bool
	}
)
