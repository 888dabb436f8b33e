package handler

import (
	"net/http"

	"mutual-aid/internal/services"
	"mutual-aid/internal/transport/httpdto"
	aid_errors "mutual-aid/pkg/errors"
	"mutual-aid/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		if l := logger.GetGlobalLogger(); l != nil {
			l.WithContext(c.Request.Context()).Error("request failed", zap.Error(err))
		}
		message = "internal server error"
	}
	c.JSON(status, httpdto.NewErrorResponse(message, services.ErrorCode(err)))
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(message, "INVALID_REQUEST"))
}

// lookupID parses a path id used to fetch a record. An id that cannot be
// parsed cannot match anything, so it is reported as not found.
func lookupID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		writeError(c, aid_errors.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(value)
}

// parseOptionalUUID treats an empty value as absent.
func parseOptionalUUID(value string) (uuid.NullUUID, error) {
	if value == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.NullUUID{}, err
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}
