package handler

import (
	"net/http"

	"mutual-aid/internal/services"
	"mutual-aid/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	service *services.AttachmentService
}

func NewAttachmentHandler(service *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// Presign handles POST /requests/:id/attachments.
func (h *AttachmentHandler) Presign(c *gin.Context) {
	requestID, err := parseUUID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid request id")
		return
	}

	var req httpdto.PresignAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	res, err := h.service.CreatePresignedUpload(c.Request.Context(), services.PresignInput{
		RequestID:   requestID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.PresignAttachmentResponse{
		UploadURL: res.UploadURL,
		UploadKey: res.UploadKey,
		FileURL:   res.FileURL,
		Headers:   res.Headers,
	}))
}
