package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appsync "github.com/shopsync/backend/internal/application/sync"
	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

// acceptedDateLayouts are the request date formats, most specific first.
var acceptedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// SyncService is the application-layer contract the handler drives.
type SyncService interface {
	SyncOrders(ctx context.Context, creds appsync.Credentials, dateMin, dateMax *time.Time) (*appsync.ImportResult, error)
	RefreshStatuses(ctx context.Context, creds appsync.Credentials) (*appsync.RefreshResult, error)
	SyncInventory(ctx context.Context, creds appsync.Credentials) (*appsync.InventoryResult, error)
}

// SyncHandler exposes the three sync paths over HTTP
type SyncHandler struct {
	BaseHandler
	service SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(service SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// SyncOrders handles POST /api/v1/sync/orders
func (h *SyncHandler) SyncOrders(c *gin.Context) {
	var req dto.SyncOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dateMin, err := parseRequestDate(req.DateMin)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	dateMax, err := parseRequestDate(req.DateMax)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	// An inverted range must fail here, before any platform call.
	if dateMin != nil && dateMax != nil && dateMin.After(*dateMax) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidRange, sync.ErrInvalidRange.Error())
		return
	}

	result, err := h.service.SyncOrders(c.Request.Context(), credentials(req.StoreURL, req.APIKey, req.Password, req.APIVersion), dateMin, dateMax)
	if err != nil {
		h.HandleSyncError(c, err)
		return
	}
	h.Success(c, result)
}

// RefreshStatuses handles POST /api/v1/sync/refresh
func (h *SyncHandler) RefreshStatuses(c *gin.Context) {
	var req dto.SyncCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RefreshStatuses(c.Request.Context(), credentials(req.StoreURL, req.APIKey, req.Password, req.APIVersion))
	if err != nil {
		h.HandleSyncError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncInventory handles POST /api/v1/sync/inventory
func (h *SyncHandler) SyncInventory(c *gin.Context) {
	var req dto.SyncCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SyncInventory(c.Request.Context(), credentials(req.StoreURL, req.APIKey, req.Password, req.APIVersion))
	if err != nil {
		h.HandleSyncError(c, err)
		return
	}
	h.Success(c, result)
}

func credentials(storeURL, apiKey, password, apiVersion string) appsync.Credentials {
	return appsync.Credentials{
		StoreURL:   storeURL,
		APIKey:     apiKey,
		Password:   password,
		APIVersion: apiVersion,
	}
}

// parseRequestDate parses an ISO-8601 request date. A trailing Z is folded
// into an explicit UTC offset first; an empty string means unspecified.
func parseRequestDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date format: %q", value)
}
