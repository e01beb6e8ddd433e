package http

import (
	"fmt"
	"strings"
	"time"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/input"
	"drive-rag/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SessionHeader carries the client-generated session key on every API call
const SessionHeader = "x-session-id"

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	auth      input.AuthService
	drive     input.DriveService
	sync      input.SyncService
	chat      input.ChatService
	db        *gorm.DB
	validator validator.Validator
}

// New func - Creates new HTTP handler.
// db may be nil when sessions are kept in memory.
func New(auth input.AuthService, drive input.DriveService, sync input.SyncService, chat input.ChatService, db *gorm.DB) *HTTPHandler {
	return &HTTPHandler{
		auth:      auth,
		drive:     drive,
		sync:      sync,
		chat:      chat,
		db:        db,
		validator: validator.New(),
	}
}

// RegisterRoutes func - Mounts every endpoint on router
func (hdl *HTTPHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", hdl.Root)
	router.Get("/health", hdl.HealthCheck)
	router.Get("/rest/oauth2-credential/callback", hdl.Callback)

	api := router.Group("/api")
	{
		api.Get("/auth/login", hdl.Login)
		api.Get("/auth/status", hdl.Status)
		api.Post("/auth/apikey", hdl.SaveAPIKey)
		api.Get("/auth/logout", hdl.Logout)

		api.Get("/drive/list", hdl.ListDrive)
		api.Post("/sync", hdl.Sync)

		api.Post("/chat", hdl.Chat)
	}
}

// Root godoc
// @Summary Service banner
// @Tags HEALTH
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func (hdl *HTTPHandler) Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "Gemini Drive RAG Agent Backend is running."})
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports liveness and the session database connection
// @Tags HEALTH
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 500 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  "not configured",
	}

	if hdl.db != nil {
		sqlDB, err := hdl.db.DB()
		if err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError, Detail: err.Error()})
		}

		if err := sqlDB.PingContext(c.Context()); err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError, Detail: err.Error()})
		}
		response.Database = "connected"
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// sessionKey reads the session header, empty when absent
func sessionKey(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Get(SessionHeader))
}

// bind decodes and validates a JSON body into request.
// Failures are wrapped in domain.ErrInvalidRequest.
func (hdl *HTTPHandler) bind(c *fiber.Ctx, request interface{}) error {
	if err := c.BodyParser(request); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}
