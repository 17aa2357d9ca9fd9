package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopdesk-backend/internal/domains/inventory/model"
	"shopdesk-backend/internal/domains/inventory/service"
	"shopdesk-backend/internal/shared/middleware"
	"shopdesk-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new inventory handler
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// isValidationFailure reports whether err came from DTO validation, either
// an ozzo-validation error set or one of the domain validation sentinels.
func isValidationFailure(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.ErrorObject
	if errors.As(err, &verr) {
		return true
	}
	return model.IsValidationError(err)
}

// GetSnapshot handles GET /api/v1/inventory/snapshot
// Serves the cached item list; a stale snapshot is still a 200 with a meta
// notice so the UI never goes blank on backend hiccups.
func (h *Handler) GetSnapshot(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	snapshot, err := h.service.GetSnapshot(c.Request.Context(), tenantID)
	if err != nil && snapshot == nil {
		response.Error(c, http.StatusServiceUnavailable, "Inventory unavailable", err.Error())
		return
	}

	if snapshot.Stale {
		response.SuccessWithMeta(c, http.StatusOK, "Inventory snapshot (stale)", snapshot.ToSnapshotResponse(), &response.Meta{
			Stale:  true,
			Notice: "inventory refresh failed; serving last known data",
		})
		return
	}

	response.Success(c, http.StatusOK, "Inventory snapshot retrieved", snapshot.ToSnapshotResponse())
}

// RefetchSnapshot handles POST /api/v1/inventory/snapshot/refetch
func (h *Handler) RefetchSnapshot(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	snapshot, err := h.service.Refetch(c.Request.Context(), tenantID)
	if err != nil && snapshot == nil {
		response.Error(c, http.StatusServiceUnavailable, "Failed to refetch inventory", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Inventory snapshot refreshed", snapshot.ToSnapshotResponse())
}

// CreateItem handles POST /api/v1/inventory/items
func (h *Handler) CreateItem(c *gin.Context) {
	var req model.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), middleware.TenantID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrSKUAlreadyExists):
			response.Error(c, http.StatusConflict, "SKU already exists", err.Error())
		case isValidationFailure(err):
			response.Error(c, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create item", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Item created successfully", item)
}

// UpdateItem handles PATCH /api/v1/inventory/items/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid item ID format", err.Error())
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), middleware.TenantID(c), id, req)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Item not found", err.Error())
		case isValidationFailure(err):
			response.Error(c, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update item", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Item updated successfully", item)
}

// DeleteItem handles DELETE /api/v1/inventory/items/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid item ID format", err.Error())
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), middleware.TenantID(c), id); err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Item not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete item", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Item deleted successfully", nil)
}

// RecordMovement handles POST /api/v1/inventory/movements
func (h *Handler) RecordMovement(c *gin.Context) {
	var req model.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := h.service.RecordMovement(c.Request.Context(), middleware.TenantID(c), req); err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "Item not found", err.Error())
		case isValidationFailure(err):
			response.Error(c, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to record movement", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Movement recorded", nil)
}
