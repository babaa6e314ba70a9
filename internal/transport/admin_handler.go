package transport

import (
	"errors"
	"net/http"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/middleware"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/repository"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AdminLoginResponse carries the staff session token
type AdminLoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}

// AdminProfile is the display identity persisted by the admin panel
type AdminProfile struct {
	Name string `json:"name"`
}

// ProductRequest represents the create/update product payload
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Brand       string          `json:"brand" validate:"required"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Unit        string          `json:"unit" validate:"required"`
}

// CategoryRequest represents the create category payload
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// BrandRequest represents the create brand payload
type BrandRequest struct {
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo"`
}

// OrderStatusRequest represents the status update payload
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UserListResponse wraps the user listing; password hashes never leave the
// domain layer (the field is json:"-").
type UserListResponse struct {
	Users []*domain.User `json:"users"`
}

// AdminHandler handles the staff panel endpoints
type AdminHandler struct {
	authService    service.AuthService
	catalogService service.CatalogService
	orderService   service.OrderService
	adminService   service.AdminService
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	authService service.AuthService,
	catalogService service.CatalogService,
	orderService service.OrderService,
	adminService service.AdminService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		catalogService: catalogService,
		orderService:   orderService,
		adminService:   adminService,
		logger:         logger,
	}
}

// RegisterRoutes registers the admin routes. Login is public; everything else
// requires a valid token with the admin role.
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)

			r.Get("/dashboard", h.Dashboard)
			r.Get("/products", h.ListProducts)
			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)
			r.Post("/categories", h.CreateCategory)
			r.Post("/brands", h.CreateBrand)
			r.Get("/orders", h.ListOrders)
			r.Put("/orders/{id}/status", h.UpdateOrderStatus)
			r.Get("/users", h.ListUsers)
		})
	})
}

// Login handles staff authentication
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid credentials")
		case service.ErrAdminRequired:
			middleware.RespondWithError(w, http.StatusForbidden, "admin access required")
		default:
			h.logger.Error("Admin login failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		}
		return
	}

	h.logger.Info("Admin logged in", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, AdminLoginResponse{
		Token: token,
		Admin: AdminProfile{Name: user.Name},
	})
}

// Dashboard handles the aggregate statistics view
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.adminService.GetDashboard(r.Context())
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, dashboard)
}

// ListProducts handles the unfiltered product listing for the staff panel
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context(), domain.ProductFilter{})
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{Products: products})
}

func (h *AdminHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (*ProductRequest, bool) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return nil, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	if req.Price.IsNegative() {
		middleware.RespondWithError(w, http.StatusBadRequest, "price must not be negative")
		return nil, false
	}

	return &req, true
}

// CreateProduct handles adding a catalog product
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Unit:        req.Unit,
	})
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles replacing a catalog product
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), id, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Unit:        req.Unit,
	})
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct handles removing a catalog product
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// CreateCategory handles adding a category
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name, req.Description, req.Icon)
	if err != nil {
		if err == repository.ErrCategoryAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}

		h.logger.Error("Failed to create category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// CreateBrand handles adding a brand
func (h *AdminHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req BrandRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand, err := h.catalogService.CreateBrand(r.Context(), req.Name, req.Logo)
	if err != nil {
		if err == repository.ErrBrandAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}

		h.logger.Error("Failed to create brand", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, brand)
}

// ListOrders handles the staff order listing
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrderListResponse{Orders: orders})
}

// UpdateOrderStatus handles moving an order through its lifecycle
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req OrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidStatusTransition):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update order status", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order status")
		}
		return
	}

	h.logger.Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// ListUsers handles the staff user listing
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, UserListResponse{Users: users})
}
