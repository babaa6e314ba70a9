package transport

import (
	"errors"
	"net/http"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/middleware"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/repository"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateOrderRequest represents the checkout payload. The total is never part
// of the request: it is computed server-side from the cart.
type CreateOrderRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	PaymentMethod   string `json:"payment_method,omitempty"`
}

// CreateOrderResponse confirms a placed order
type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	TotalAmount string `json:"total_amount"`
}

// OrderListResponse wraps the order listing
type OrderListResponse struct {
	Orders []*domain.Order `json:"orders"`
}

// OrderHandler handles HTTP requests for customer orders
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes behind the auth middleware
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
	})
}

// CreateOrder handles checkout: it turns the caller's cart into an order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.Place(r.Context(), userID, service.PlaceOrderInput{
		DeliveryAddress: req.DeliveryAddress,
		PhoneNumber:     req.PhoneNumber,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyDeliveryAddress):
			middleware.RespondWithError(w, http.StatusBadRequest, "delivery address is required")
		case errors.Is(err, service.ErrEmptyCart):
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, repository.ErrInsufficientStock):
			middleware.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("Failed to place order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", order.TotalAmount.String()),
	)

	middleware.RespondWithJSON(w, http.StatusOK, CreateOrderResponse{
		OrderID:     order.ID.String(),
		TotalAmount: order.TotalAmount.String(),
	})
}

// ListOrders handles fetching the caller's order history
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.orderService.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderListResponse{Orders: orders})
}
