package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shopdesk-backend/internal/domains/purchasing/handler"
	"shopdesk-backend/internal/domains/purchasing/model"
	"shopdesk-backend/internal/domains/purchasing/service"
)

type stubOrderService struct {
	requestedID uuid.UUID
}

func (s *stubOrderService) ListOrders(ctx context.Context, tenantID uuid.UUID, page, limit int) (*service.OrderPage, error) {
	return &service.OrderPage{Page: page, Limit: limit}, nil
}

func (s *stubOrderService) GetOrder(ctx context.Context, tenantID, id uuid.UUID) (*model.PurchaseOrder, error) {
	s.requestedID = id
	return &model.PurchaseOrder{ID: id, TenantID: tenantID, Status: model.StatusSubmitted}, nil
}

func (s *stubOrderService) SubmitOrder(ctx context.Context, tenantID, id uuid.UUID) (*model.PurchaseOrder, error) {
	s.requestedID = id
	return &model.PurchaseOrder{ID: id, TenantID: tenantID, Status: model.StatusSubmitted}, nil
}

func newTestRouter(svc *stubOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewHandler(svc)

	router := gin.New()
	router.GET("/purchase-orders/:id", h.GetOrder)
	router.POST("/purchase-orders/:id/submit", h.SubmitOrder)
	return router
}

func TestGetOrderRejectsMalformedID(t *testing.T) {
	svc := &stubOrderService{}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/purchase-orders/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, uuid.Nil, svc.requestedID)
}

func TestSubmitOrderRejectsMalformedID(t *testing.T) {
	svc := &stubOrderService{}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchase-orders/not-a-uuid/submit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, uuid.Nil, svc.requestedID)
}

func TestGetOrderPassesParsedID(t *testing.T) {
	svc := &stubOrderService{}
	router := newTestRouter(svc)

	id := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/purchase-orders/"+id.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.requestedID)
}
