package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeAlreadyExists, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleSyncError maps domain sync errors to HTTP responses
func (h *BaseHandler) HandleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sync.ErrInvalidRange):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidRange, err.Error())
	case errors.Is(err, sync.ErrNoOrders):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "No orders found")
	case errors.Is(err, sync.ErrNoPersistedOrders):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "No orders found in the database to sync")
	case errors.Is(err, sync.ErrConnectorNotFound):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, "Connector not found")
	default:
		var fetchErr *sync.FetchError
		var gqlErr *sync.GraphQLError
		if errors.As(err, &fetchErr) || errors.As(err, &gqlErr) {
			h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstream, err.Error())
			return
		}
		h.InternalError(c, err.Error())
	}
}
