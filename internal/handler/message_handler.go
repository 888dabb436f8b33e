package handler

import (
	"net/http"
	"time"

	"mutual-aid/internal/services"
	"mutual-aid/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Post handles POST /chat. A session user, when present, is the sender.
func (h *ChatHandler) Post(c *gin.Context) {
	var req httpdto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	requestID, err := parseUUID(req.RequestID)
	if err != nil {
		badRequest(c, "invalid request_id")
		return
	}

	senderID, ok := services.ActorIDFromContext(c.Request.Context())
	if !ok {
		senderID, err = parseUUID(req.SenderID)
		if err != nil {
			badRequest(c, "invalid sender_id")
			return
		}
	}

	m, err := h.service.PostMessage(c.Request.Context(), services.PostMessageInput{
		RequestID:  requestID,
		SenderID:   senderID,
		SenderName: req.SenderName,
		Text:       req.Body(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromChatMessage(m)))
}

// List handles GET /chat/:requestId. after takes an RFC 3339 timestamp.
func (h *ChatHandler) List(c *gin.Context) {
	requestID, err := parseUUID(c.Param("requestId"))
	if err != nil {
		badRequest(c, "invalid request id")
		return
	}

	var after time.Time
	if raw := c.Query("after"); raw != "" {
		after, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			badRequest(c, "invalid after")
			return
		}
	}

	items, err := h.service.ListMessages(c.Request.Context(), requestID, after)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromChatMessageSlice(items)))
}

// Availability handles GET /chat/:requestId/availability.
func (h *ChatHandler) Availability(c *gin.Context) {
	requestID, err := parseUUID(c.Param("requestId"))
	if err != nil {
		badRequest(c, "invalid request id")
		return
	}

	viewerID, ok := services.ActorIDFromContext(c.Request.Context())
	if !ok {
		viewerID, err = parseUUID(c.Query("viewer_id"))
		if err != nil {
			badRequest(c, "invalid viewer_id")
			return
		}
	}

	open, err := h.service.Availability(c.Request.Context(), requestID, viewerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ChatAvailabilityDTO{
		RequestID: requestID.String(),
		ViewerID:  viewerID.String(),
		Open:      open,
	}))
}
