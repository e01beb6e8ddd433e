package http

import (
	"drive-rag/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// Chat godoc
// @Summary Ask a question about the synced files
// @Tags CHAT
// @Accept application/json
// @Produce json
// @Param x-session-id header string true "session key"
// @Param Chat body ChatRequest true "Chat"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /api/chat [post]
func (hdl *HTTPHandler) Chat(c *fiber.Ctx) error {
	key := sessionKey(c)
	if key == "" {
		return errorResponse(c, domain.ErrSessionKeyMissing)
	}

	var request ChatRequest
	if err := hdl.bind(c, &request); err != nil {
		return errorResponse(c, err)
	}

	reply, err := hdl.chat.Reply(c.UserContext(), domain.ChatRequest{SessionKey: key, Message: request.Message})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ChatResponse{Response: reply.Response})
}
