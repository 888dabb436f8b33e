package handler

import (
	"net/http"

	"mutual-aid/internal/domain/request"
	"mutual-aid/internal/services"
	"mutual-aid/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	service *services.RequestService
}

func NewRequestHandler(service *services.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	var req httpdto.CreateHelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	residentID, ok := services.ActorIDFromContext(c.Request.Context())
	if !ok {
		id, err := parseUUID(req.Resident())
		if err != nil {
			badRequest(c, "invalid resident_id")
			return
		}
		residentID = id
	}

	hr, err := h.service.Create(c.Request.Context(), services.CreateRequestInput{
		ResidentID:   residentID,
		ResidentName: req.ResidentName,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Urgency:      req.Urgency,
		Location:     req.Location,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromHelpRequest(hr)))
}

// List handles GET /requests. Filters are optional and combine.
func (h *RequestHandler) List(c *gin.Context) {
	var q httpdto.ListHelpRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid query")
		return
	}

	var filter request.Filter
	if q.Status != "" {
		status, ok := request.ParseStatus(q.Status)
		if !ok {
			badRequest(c, "invalid status")
			return
		}
		filter.Status = status
	}
	resident, err := parseOptionalUUID(q.Resident())
	if err != nil {
		badRequest(c, "invalid resident_id")
		return
	}
	helper, err := parseOptionalUUID(q.Helper())
	if err != nil {
		badRequest(c, "invalid helper_id")
		return
	}
	filter.ResidentID = resident
	filter.HelperID = helper

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromHelpRequestSlice(items)))
}

// GetByID handles GET /requests/:id.
func (h *RequestHandler) GetByID(c *gin.Context) {
	id, ok := lookupID(c, "id")
	if !ok {
		return
	}

	hr, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromHelpRequest(hr)))
}

// Update handles PUT /requests/:id. The actor is the session user when a
// token was sent, otherwise the helper_id in the body.
func (h *RequestHandler) Update(c *gin.Context) {
	id, ok := lookupID(c, "id")
	if !ok {
		return
	}

	var req httpdto.UpdateHelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	target, ok := request.ParseStatus(req.Status)
	if !ok {
		badRequest(c, "invalid status")
		return
	}

	actor := services.Actor{Name: req.HelperName}
	if sessionID, ok := services.ActorIDFromContext(c.Request.Context()); ok {
		actor.ID = sessionID
	} else if req.Helper() != "" {
		helperID, err := parseUUID(req.Helper())
		if err != nil {
			badRequest(c, "invalid helper_id")
			return
		}
		actor.ID = helperID
	}

	hr, err := h.service.UpdateStatus(c.Request.Context(), id, target, actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromHelpRequest(hr)))
}

// Delete handles DELETE /requests/:id. Deleting a missing request succeeds.
func (h *RequestHandler) Delete(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid request id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.DeleteResponse{Message: "Request deleted successfully"}))
}
