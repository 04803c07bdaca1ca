package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

// ConnectorHandler manages stored store credentials. Responses never carry
// the API key or password.
type ConnectorHandler struct {
	BaseHandler
	repo sync.ConnectorRepository
}

// NewConnectorHandler creates a new ConnectorHandler
func NewConnectorHandler(repo sync.ConnectorRepository) *ConnectorHandler {
	return &ConnectorHandler{repo: repo}
}

// List handles GET /api/v1/connectors
func (h *ConnectorHandler) List(c *gin.Context) {
	connectors, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		h.InternalError(c, err.Error())
		return
	}

	responses := make([]dto.ConnectorResponse, len(connectors))
	for i := range connectors {
		responses[i] = toConnectorResponse(&connectors[i])
	}
	h.Success(c, responses)
}

// Get handles GET /api/v1/connectors/:store_url
func (h *ConnectorHandler) Get(c *gin.Context) {
	connector, err := h.repo.FindByStoreURL(c.Request.Context(), c.Param("store_url"))
	if err != nil {
		h.HandleSyncError(c, err)
		return
	}
	h.Success(c, toConnectorResponse(connector))
}

// Create handles POST /api/v1/connectors
func (h *ConnectorHandler) Create(c *gin.Context) {
	var req dto.CreateConnectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if _, err := h.repo.FindByStoreURL(c.Request.Context(), req.StoreURL); err == nil {
		h.Conflict(c, "connector already exists for this store")
		return
	} else if !errors.Is(err, sync.ErrConnectorNotFound) {
		h.InternalError(c, err.Error())
		return
	}

	now := time.Now()
	connector := &sync.Connector{
		ID:         uuid.New(),
		StoreName:  sync.StoreName(req.StoreURL),
		StoreURL:   req.StoreURL,
		APIKey:     req.APIKey,
		Password:   req.Password,
		APIVersion: req.APIVersion,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.repo.Save(c.Request.Context(), connector); err != nil {
		h.InternalError(c, err.Error())
		return
	}
	h.Created(c, toConnectorResponse(connector))
}

// Update handles PUT /api/v1/connectors/:store_url
func (h *ConnectorHandler) Update(c *gin.Context) {
	var req dto.UpdateConnectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	connector, err := h.repo.FindByStoreURL(c.Request.Context(), c.Param("store_url"))
	if err != nil {
		h.HandleSyncError(c, err)
		return
	}

	if req.APIKey != "" {
		connector.APIKey = req.APIKey
	}
	if req.Password != "" {
		connector.Password = req.Password
	}
	if req.APIVersion != "" {
		connector.APIVersion = req.APIVersion
	}
	connector.UpdatedAt = time.Now()

	if err := h.repo.Save(c.Request.Context(), connector); err != nil {
		h.InternalError(c, err.Error())
		return
	}
	h.Success(c, toConnectorResponse(connector))
}

func toConnectorResponse(connector *sync.Connector) dto.ConnectorResponse {
	return dto.ConnectorResponse{
		ID:         connector.ID.String(),
		StoreName:  connector.StoreName,
		StoreURL:   connector.StoreURL,
		APIVersion: connector.APIVersion,
		MinDate:    connector.MinDate,
		MaxDate:    connector.MaxDate,
		CreatedAt:  connector.CreatedAt,
		UpdatedAt:  connector.UpdatedAt,
	}
}
