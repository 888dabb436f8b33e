// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"mutual-aid/internal/domain/user"
	"mutual-aid/internal/services"
	"mutual-aid/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users    *services.UserService
	sessions *services.SessionService
}

func NewAuthHandler(users *services.UserService, sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// Register handles POST /users/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	u, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		Location:    req.Location,
		Role:        req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.respond(c, http.StatusCreated, u)
}

// Login handles POST /users/login. Possession of the contact identifier is
// enough.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	u, err := h.users.Login(c.Request.Context(), req.ContactInfo)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respond(c, http.StatusOK, u)
}

func (h *AuthHandler) respond(c *gin.Context, status int, u user.User) {
	session, err := h.sessions.Issue(u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, httpdto.NewSuccessResponse(httpdto.NewAuthResponse(u, session.Token, session.ExpiresAt)))
}
