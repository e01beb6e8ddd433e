package http

import (
	"drive-rag/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// Login godoc
// @Summary Google sign-in URL
// @Description Returns the consent page URL bound to the session
// @Tags AUTH
// @Produce json
// @Param x-session-id header string true "session key"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ResponseBody
// @Router /api/auth/login [get]
func (hdl *HTTPHandler) Login(c *fiber.Ctx) error {
	login, err := hdl.auth.Login(c.UserContext(), sessionKey(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(LoginResponse{URL: login.URL})
}

// Callback godoc
// @Summary OAuth redirect target
// @Description Stores the granted credentials and redirects back to the client
// @Tags AUTH
// @Param code query string true "authorization code"
// @Param state query string true "signed state"
// @Success 307
// @Failure 400 {object} ResponseBody
// @Router /rest/oauth2-credential/callback [get]
func (hdl *HTTPHandler) Callback(c *fiber.Ctx) error {
	var query CallbackQuery
	if err := c.QueryParser(&query); err != nil {
		return errorResponse(c, domain.ErrInvalidRequest)
	}

	redirect, err := hdl.auth.Callback(c.UserContext(), domain.CallbackRequest{
		Code:  query.Code,
		State: query.State,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Redirect(redirect, fiber.StatusTemporaryRedirect)
}

// Status godoc
// @Summary Sign-in state of the session
// @Tags AUTH
// @Produce json
// @Param x-session-id header string false "session key"
// @Success 200 {object} AuthStatusResponse
// @Router /api/auth/status [get]
func (hdl *HTTPHandler) Status(c *fiber.Ctx) error {
	status, err := hdl.auth.Status(c.UserContext(), sessionKey(c))
	if err != nil {
		return errorResponse(c, err)
	}

	response := AuthStatusResponse{
		Authenticated: status.Authenticated,
		IsAPIKeySet:   status.IsAPIKeySet,
	}
	if status.User != nil {
		response.User = &UserResponse{
			Name:    status.User.Name,
			Email:   status.User.Email,
			Picture: status.User.Picture,
		}
	}
	return c.Status(fiber.StatusOK).JSON(response)
}

// SaveAPIKey godoc
// @Summary Save the Gemini API key
// @Tags AUTH
// @Accept application/json
// @Produce json
// @Param x-session-id header string true "session key"
// @Param APIKey body APIKeyRequest true "APIKey"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ResponseBody
// @Router /api/auth/apikey [post]
func (hdl *HTTPHandler) SaveAPIKey(c *fiber.Ctx) error {
	key := sessionKey(c)
	if key == "" {
		return errorResponse(c, domain.ErrSessionKeyMissing)
	}

	var request APIKeyRequest
	if err := hdl.bind(c, &request); err != nil {
		return errorResponse(c, err)
	}

	if err := hdl.auth.SaveAPIKey(c.UserContext(), key, request.APIKey); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "API Key saved"})
}

// Logout godoc
// @Summary Forget the session
// @Tags AUTH
// @Produce json
// @Param x-session-id header string false "session key"
// @Success 200 {object} MessageResponse
// @Router /api/auth/logout [get]
func (hdl *HTTPHandler) Logout(c *fiber.Ctx) error {
	if err := hdl.auth.Logout(c.UserContext(), sessionKey(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "Logged out"})
}
