package http

import (
	"errors"
	"net/http"

	"drive-rag/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var (
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// Unauthorized response
	Unauthorized = Status{Code: http.StatusUnauthorized, Message: []string{"Sorry, We are not able to process your request. Please try again"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// ConFlict response
	ConFlict = Status{Code: http.StatusConflict, Message: []string{"Sorry, Data is conflict"}}
)

// ResponseBody struct - Error response wrapper
type ResponseBody struct {
	Status Status `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// MessageResponse struct - Plain acknowledgement
	MessageResponse struct {
		Message string `json:"message"`
	}

	// HealthResponse struct
	HealthResponse struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Database  string `json:"database"`
	}

	// LoginResponse struct - Consent page the client redirects to
	LoginResponse struct {
		URL string `json:"url"`
	}

	// UserResponse struct
	UserResponse struct {
		Name    string `json:"name,omitempty"`
		Email   string `json:"email,omitempty"`
		Picture string `json:"picture,omitempty"`
	}

	// AuthStatusResponse struct
	AuthStatusResponse struct {
		Authenticated bool          `json:"authenticated"`
		IsAPIKeySet   bool          `json:"isApiKeySet"`
		User          *UserResponse `json:"user,omitempty"`
	}

	// FileResponse struct - One Drive entry
	FileResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		MimeType string `json:"mimeType"`
		IconLink string `json:"iconLink,omitempty"`
	}

	// ListFilesResponse struct
	ListFilesResponse struct {
		Files []FileResponse `json:"files"`
	}

	// ChatResponse struct
	ChatResponse struct {
		Response string `json:"response"`
	}
)

// errorResponse writes err with the status its kind maps to
func errorResponse(c *fiber.Ctx, err error) error {
	status := InternalServerError

	switch {
	case errors.Is(err, domain.ErrSessionKeyMissing),
		errors.Is(err, domain.ErrAPIKeyMissing),
		errors.Is(err, domain.ErrChatNotInitialized),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidRequest):
		status = BadRequest
	case errors.Is(err, domain.ErrNotAuthenticated):
		status = Unauthorized
	case errors.Is(err, domain.ErrSyncInProgress):
		status = ConFlict
	}

	if status.Code == http.StatusInternalServerError {
		logrus.Errorln(err)
	} else {
		logrus.Warnln(err)
	}

	return c.Status(status.Code).JSON(ResponseBody{Status: status, Detail: err.Error()})
}
