package http

type (
	// APIKeyRequest struct - HTTP request DTO
	APIKeyRequest struct {
		APIKey string `json:"api_key" validate:"required"`
	}

	// SyncItemRequest struct - One selected file or folder
	SyncItemRequest struct {
		ID       string `json:"id" validate:"required"`
		Name     string `json:"name" validate:"required"`
		MimeType string `json:"mimeType" validate:"required"`
	}

	// SyncRequest struct - HTTP request DTO
	SyncRequest struct {
		Items []SyncItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	// ChatRequest struct - HTTP request DTO
	ChatRequest struct {
		Message string `json:"message" validate:"required"`
	}

	// ListFolderQuery struct - HTTP query request DTO
	ListFolderQuery struct {
		FolderID string `query:"folder_id"`
	}

	// CallbackQuery struct - OAuth redirect query
	CallbackQuery struct {
		Code  string `query:"code"`
		State string `query:"state"`
	}
)
