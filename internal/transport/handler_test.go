package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/events"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/middleware"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/repository"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock repositories for testing

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.users), nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	var products []*domain.Product
	for _, product := range m.products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.Brand != "" && product.Brand != filter.Brand {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	return len(m.products), nil
}

type mockCategoryRepository struct {
	categories map[uuid.UUID]*domain.Category
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[uuid.UUID]*domain.Category)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	for _, existing := range m.categories {
		if existing.Name == category.Name {
			return repository.ErrCategoryAlreadyExists
		}
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, category := range m.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.categories), nil
}

type mockBrandRepository struct {
	brands map[uuid.UUID]*domain.Brand
}

func newMockBrandRepository() *mockBrandRepository {
	return &mockBrandRepository{brands: make(map[uuid.UUID]*domain.Brand)}
}

func (m *mockBrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	for _, existing := range m.brands {
		if existing.Name == brand.Name {
			return repository.ErrBrandAlreadyExists
		}
	}
	m.brands[brand.ID] = brand
	return nil
}

func (m *mockBrandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	var brands []*domain.Brand
	for _, brand := range m.brands {
		brands = append(brands, brand)
	}
	return brands, nil
}

func (m *mockBrandRepository) Count(ctx context.Context) (int, error) {
	return len(m.brands), nil
}

type cartLineKey struct {
	userID    uuid.UUID
	productID uuid.UUID
}

type mockCartRepository struct {
	items    map[cartLineKey]*domain.CartItem
	products *mockProductRepository
}

func newMockCartRepository(products *mockProductRepository) *mockCartRepository {
	return &mockCartRepository{
		items:    make(map[cartLineKey]*domain.CartItem),
		products: products,
	}
}

func (m *mockCartRepository) Add(ctx context.Context, item *domain.CartItem) error {
	key := cartLineKey{item.UserID, item.ProductID}
	if existing, ok := m.items[key]; ok {
		existing.Quantity += item.Quantity
		return nil
	}
	copied := *item
	m.items[key] = &copied
	return nil
}

func (m *mockCartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	key := cartLineKey{userID, productID}
	item, ok := m.items[key]
	if !ok {
		return repository.ErrCartItemNotFound
	}
	item.Quantity = quantity
	return nil
}

func (m *mockCartRepository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	delete(m.items, cartLineKey{userID, productID})
	return nil
}

func (m *mockCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	var items []*domain.CartItem
	for key, item := range m.items {
		if key.userID != userID {
			continue
		}
		copied := *item
		if product, err := m.products.FindByID(ctx, item.ProductID); err == nil {
			copied.Product = product
		}
		items = append(items, &copied)
	}
	return items, nil
}

func (m *mockCartRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	for key := range m.items {
		if key.userID == userID {
			delete(m.items, key)
		}
	}
	return nil
}

type mockOrderRepository struct {
	orders   map[uuid.UUID]*domain.Order
	cart     *mockCartRepository
	products *mockProductRepository
}

func newMockOrderRepository(cart *mockCartRepository, products *mockProductRepository) *mockOrderRepository {
	return &mockOrderRepository{
		orders:   make(map[uuid.UUID]*domain.Order),
		cart:     cart,
		products: products,
	}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	for _, item := range order.Items {
		product, ok := m.products.products[item.ProductID]
		if !ok || product.Stock < item.Quantity {
			return fmt.Errorf("%w: %s", repository.ErrInsufficientStock, item.ProductName)
		}
	}
	for _, item := range order.Items {
		m.products.products[item.ProductID].Stock -= item.Quantity
	}
	m.orders[order.ID] = order
	return m.cart.ClearByUser(ctx, order.UserID)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *mockOrderRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	orders, _ := m.List(ctx)
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, deliveryDate *time.Time) error {
	order, ok := m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status
	if deliveryDate != nil {
		order.DeliveryDate = deliveryDate
	}
	return nil
}

func (m *mockOrderRepository) Count(ctx context.Context) (int, error) {
	return len(m.orders), nil
}

const testJWTSecret = "test-secret"

// apiFixture wires the full route table against in-memory repositories
type apiFixture struct {
	router       chi.Router
	userRepo     *mockUserRepository
	productRepo  *mockProductRepository
	categoryRepo *mockCategoryRepository
	brandRepo    *mockBrandRepository
	cartRepo     *mockCartRepository
	orderRepo    *mockOrderRepository
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := zap.NewNop()

	userRepo := newMockUserRepository()
	productRepo := newMockProductRepository()
	categoryRepo := newMockCategoryRepository()
	brandRepo := newMockBrandRepository()
	cartRepo := newMockCartRepository(productRepo)
	orderRepo := newMockOrderRepository(cartRepo, productRepo)

	authService := service.NewAuthService(userRepo, testJWTSecret, time.Hour)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, brandRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, events.NopPublisher{}, logger)
	adminService := service.NewAdminService(productRepo, categoryRepo, brandRepo, userRepo, orderRepo)

	authMiddleware := middleware.AuthMiddleware(testJWTSecret, logger)
	adminMiddleware := middleware.RequireAdmin(logger)

	router := chi.NewRouter()
	NewAuthHandler(authService, logger).RegisterRoutes(router)
	NewCatalogHandler(catalogService, logger).RegisterRoutes(router)
	NewCartHandler(cartService, logger).RegisterRoutes(router, authMiddleware)
	NewOrderHandler(orderService, logger).RegisterRoutes(router, authMiddleware)
	NewAdminHandler(authService, catalogService, orderService, adminService, logger).RegisterRoutes(router, authMiddleware, adminMiddleware)

	return &apiFixture{
		router:       router,
		userRepo:     userRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
	}
}

func (f *apiFixture) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) registerUser(t *testing.T, email string) string {
	t.Helper()

	w := f.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test Customer",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (f *apiFixture) adminToken(t *testing.T) string {
	t.Helper()

	f.registerUser(t, "admin@example.com")
	f.userRepo.users["admin@example.com"].Role = domain.RoleAdmin

	w := f.request(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (f *apiFixture) seedProduct(name, category, brand, price string, stock int) *domain.Product {
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  category,
		Brand:     brand,
		Stock:     stock,
		Unit:      "bag",
		CreatedAt: time.Now(),
	}
	f.productRepo.products[product.ID] = product
	return product
}

func TestCatalogEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	rice := f.seedProduct("Basmati Rice 25kg", "Grains", "India Gate", "2450.00", 40)
	f.seedProduct("Sunflower Oil 15L", "Oils", "Fortune", "1890.00", 25)

	t.Run("list all products", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/products", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProductListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Products, 2)
	})

	t.Run("filter by category", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/products?category=Grains", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProductListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Products, 1)
		assert.Equal(t, rice.ID, resp.Products[0].ID)
	})

	t.Run("fetch single product", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/products/"+rice.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var product domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, rice.Name, product.Name)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/products/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed product id is 400", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/products/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	product := f.seedProduct("Basmati Rice 25kg", "Grains", "India Gate", "2450.00", 40)
	token := f.registerUser(t, "customer@example.com")

	t.Run("cart requires authentication", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("repeated adds merge into one line", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := f.request(t, http.MethodPost, "/api/cart/add", token, AddToCartRequest{
				ProductID: product.ID.String(),
				Quantity:  2,
			})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w := f.request(t, http.MethodGet, "/api/cart", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp CartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.CartItems, 1)
		assert.Equal(t, 4, resp.CartItems[0].Quantity)
	})

	t.Run("set quantity replaces the line", func(t *testing.T) {
		w := f.request(t, http.MethodPut, "/api/cart/"+product.ID.String(), token, SetQuantityRequest{Quantity: 1})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = f.request(t, http.MethodGet, "/api/cart", token, nil)
		var resp CartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.CartItems, 1)
		assert.Equal(t, 1, resp.CartItems[0].Quantity)
	})

	t.Run("set quantity to zero removes the line", func(t *testing.T) {
		w := f.request(t, http.MethodPut, "/api/cart/"+product.ID.String(), token, SetQuantityRequest{Quantity: 0})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = f.request(t, http.MethodGet, "/api/cart", token, nil)
		var resp CartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.CartItems)
	})

	t.Run("adding unknown product is 404", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/api/cart/add", token, AddToCartRequest{
			ProductID: uuid.NewString(),
			Quantity:  1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("zero quantity add fails validation", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/api/cart/add", token, AddToCartRequest{
			ProductID: product.ID.String(),
			Quantity:  0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete removes the line", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/api/cart/add", token, AddToCartRequest{
			ProductID: product.ID.String(),
			Quantity:  3,
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = f.request(t, http.MethodDelete, "/api/cart/"+product.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = f.request(t, http.MethodGet, "/api/cart", token, nil)
		var resp CartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.CartItems)
	})
}

func TestOrderEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	product := f.seedProduct("Basmati Rice 25kg", "Grains", "India Gate", "2450.00", 40)
	token := f.registerUser(t, "customer@example.com")

	addToCart := func(t *testing.T, qty int) {
		w := f.request(t, http.MethodPost, "/api/cart/add", token, AddToCartRequest{
			ProductID: product.ID.String(),
			Quantity:  qty,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	t.Run("empty cart checkout is rejected", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/api/orders", token, CreateOrderRequest{
			DeliveryAddress: "12 Market Road, Chennai",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank address is rejected before any state change", func(t *testing.T) {
		addToCart(t, 2)

		w := f.request(t, http.MethodPost, "/api/orders", token, CreateOrderRequest{
			DeliveryAddress: "   ",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = f.request(t, http.MethodGet, "/api/cart", token, nil)
		var cart CartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
		require.Len(t, cart.CartItems, 1)
	})

	t.Run("successful checkout clears the cart", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/api/orders", token, CreateOrderRequest{
			DeliveryAddress: "12 Market Road, Chennai",
			PhoneNumber:     "9876543210",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp CreateOrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "4900.00", resp.TotalAmount)

		w = f.request(t, http.MethodGet, "/api/cart", token, nil)
		var cart CartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
		assert.Empty(t, cart.CartItems)
	})

	t.Run("insufficient stock is a conflict", func(t *testing.T) {
		addToCart(t, 1000)

		w := f.request(t, http.MethodPost, "/api/orders", token, CreateOrderRequest{
			DeliveryAddress: "12 Market Road, Chennai",
		})
		assert.Equal(t, http.StatusConflict, w.Code)

		// failed checkout leaves the cart intact
		w = f.request(t, http.MethodGet, "/api/cart", token, nil)
		var cart CartResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
		require.Len(t, cart.CartItems, 1)
	})

	t.Run("order history lists the placed order", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/orders", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp OrderListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Orders, 1)
		assert.Equal(t, domain.OrderStatusPending, resp.Orders[0].Status)
	})
}

func TestAdminEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("admin login rejects customers", func(t *testing.T) {
		f.registerUser(t, "plain@example.com")

		w := f.request(t, http.MethodPost, "/api/admin/login", "", map[string]string{
			"email":    "plain@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	token := f.adminToken(t)
	customerToken := f.registerUser(t, "shopper@example.com")

	t.Run("customer tokens cannot reach admin routes", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/admin/dashboard", customerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("product lifecycle", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/api/admin/products", token, ProductRequest{
			Name:        "Toor Dal 30kg",
			Description: "Wholesale pack",
			Price:       decimal.RequireFromString("3100.00"),
			Category:    "Pulses",
			Brand:       "Tata Sampann",
			Stock:       15,
			Unit:        "sack",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = f.request(t, http.MethodPut, "/api/admin/products/"+created.ID.String(), token, ProductRequest{
			Name:        "Toor Dal 30kg",
			Description: "Wholesale pack",
			Price:       decimal.RequireFromString("2990.00"),
			Category:    "Pulses",
			Brand:       "Tata Sampann",
			Stock:       20,
			Unit:        "sack",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.True(t, updated.Price.Equal(decimal.RequireFromString("2990.00")))

		w = f.request(t, http.MethodDelete, "/api/admin/products/"+created.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = f.request(t, http.MethodDelete, "/api/admin/products/"+created.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/api/admin/products", token, ProductRequest{
			Name:        "Broken",
			Description: "Broken",
			Price:       decimal.RequireFromString("-5.00"),
			Category:    "Pulses",
			Brand:       "Tata Sampann",
			Stock:       1,
			Unit:        "sack",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate category is a conflict", func(t *testing.T) {
		body := CategoryRequest{Name: "Spices", Description: "Whole and ground"}

		w := f.request(t, http.MethodPost, "/api/admin/categories", token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = f.request(t, http.MethodPost, "/api/admin/categories", token, body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("dashboard aggregates counts", func(t *testing.T) {
		f.seedProduct("Sunflower Oil 15L", "Oils", "Fortune", "1890.00", 25)

		w := f.request(t, http.MethodGet, "/api/admin/dashboard", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var dashboard service.Dashboard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
		assert.Equal(t, 1, dashboard.Statistics.TotalProducts)
		assert.Equal(t, 3, dashboard.Statistics.TotalUsers)
	})

	t.Run("order status transitions are enforced", func(t *testing.T) {
		product := f.seedProduct("Chana 20kg", "Pulses", "Tata Sampann", "1500.00", 30)
		w := f.request(t, http.MethodPost, "/api/cart/add", customerToken, AddToCartRequest{
			ProductID: product.ID.String(),
			Quantity:  1,
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = f.request(t, http.MethodPost, "/api/orders", customerToken, CreateOrderRequest{
			DeliveryAddress: "12 Market Road, Chennai",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var placed CreateOrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))

		statusPath := "/api/admin/orders/" + placed.OrderID + "/status"

		w = f.request(t, http.MethodPut, statusPath, token, OrderStatusRequest{Status: "delivered"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = f.request(t, http.MethodPut, statusPath, token, OrderStatusRequest{Status: "confirmed"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = f.request(t, http.MethodPut, statusPath, token, OrderStatusRequest{Status: "delivered"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var delivered domain.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &delivered))
		assert.NotNil(t, delivered.DeliveryDate)
	})

	t.Run("user listing never exposes password hashes", func(t *testing.T) {
		w := f.request(t, http.MethodGet, "/api/admin/users", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestAuthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		f.registerUser(t, "dup@example.com")

		w := f.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name":     "Dup",
			"email":    "dup@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login with wrong password is unauthorized", func(t *testing.T) {
		f.registerUser(t, "login@example.com")

		w := f.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "login@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("validation errors are structured", func(t *testing.T) {
		w := f.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name":     "NoEmail",
			"password": "password123",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation")
	})
}
