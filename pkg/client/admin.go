package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrDeleteNotConfirmed is returned when a delete's confirm callback declines.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed")

// DashboardStats mirrors the dashboard counters
type DashboardStats struct {
	TotalProducts   int `json:"total_products"`
	TotalCategories int `json:"total_categories"`
	TotalBrands     int `json:"total_brands"`
	TotalUsers      int `json:"total_users"`
	TotalOrders     int `json:"total_orders"`
}

// AdminOrder extends Order with the customer name joined in for the staff view
type AdminOrder struct {
	Order
	UserName string `json:"user_name"`
}

// Dashboard mirrors the admin landing payload
type Dashboard struct {
	Statistics   DashboardStats `json:"statistics"`
	RecentOrders []AdminOrder   `json:"recent_orders"`
}

// ProductInput carries the create/update product form
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit"`
}

// AdminSession drives the staff panel endpoints. The credential lives in a
// TokenStore so it survives restarts; any 401 clears the store, after which
// every call fails with ErrSessionExpired until the next AdminLogin.
type AdminSession struct {
	client *Client
	store  TokenStore
}

type adminLoginResponse struct {
	Token string `json:"token"`
	Admin struct {
		Name string `json:"name"`
	} `json:"admin"`
}

// AdminLogin authenticates a staff account and persists the credential in
// store. Non-admin accounts are rejected by the server with a 403.
func (c *Client) AdminLogin(ctx context.Context, store TokenStore, email, password string) (*AdminSession, error) {
	var resp adminLoginResponse
	err := c.do(ctx, http.MethodPost, "/api/admin/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if err := store.Save(resp.Token, resp.Admin.Name); err != nil {
		return nil, err
	}
	return &AdminSession{client: c, store: store}, nil
}

// ResumeAdminSession builds an AdminSession from a previously saved
// credential. It fails with ErrAuthenticationRequired when the store is empty.
func (c *Client) ResumeAdminSession(store TokenStore) (*AdminSession, error) {
	token, _, err := store.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrAuthenticationRequired
	}
	return &AdminSession{client: c, store: store}, nil
}

// Name returns the staff display name saved at login
func (s *AdminSession) Name() string {
	_, name, _ := s.store.Load()
	return name
}

// do attaches the stored credential and wipes it on a 401, forcing the caller
// back through AdminLogin.
func (s *AdminSession) do(ctx context.Context, method, path string, body, out interface{}) error {
	token, _, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrSessionExpired
	}

	err = s.client.do(ctx, method, path, token, body, out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		if clearErr := s.store.Clear(); clearErr != nil {
			return clearErr
		}
		return ErrSessionExpired
	}
	return err
}

// Dashboard fetches the aggregate statistics and recent orders
func (s *AdminSession) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	if err := s.do(ctx, http.MethodGet, "/api/admin/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Products lists the full catalog, unfiltered
func (s *AdminSession) Products(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/admin/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// CreateProduct adds a catalog product
func (s *AdminSession) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := s.do(ctx, http.MethodPost, "/api/admin/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a catalog product
func (s *AdminSession) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*Product, error) {
	var product Product
	if err := s.do(ctx, http.MethodPut, "/api/admin/products/"+id.String(), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a catalog product. confirm is consulted before any
// request is sent; when it returns false the delete is abandoned with
// ErrDeleteNotConfirmed and nothing reaches the server.
func (s *AdminSession) DeleteProduct(ctx context.Context, id uuid.UUID, confirm func() bool) error {
	if confirm == nil || !confirm() {
		return ErrDeleteNotConfirmed
	}
	return s.do(ctx, http.MethodDelete, "/api/admin/products/"+id.String(), nil, nil)
}

// CreateCategory adds a category
func (s *AdminSession) CreateCategory(ctx context.Context, name, description, icon string) (*Category, error) {
	var category Category
	err := s.do(ctx, http.MethodPost, "/api/admin/categories", map[string]string{
		"name":        name,
		"description": description,
		"icon":        icon,
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateBrand adds a brand
func (s *AdminSession) CreateBrand(ctx context.Context, name, logo string) (*Brand, error) {
	var brand Brand
	err := s.do(ctx, http.MethodPost, "/api/admin/brands", map[string]string{
		"name": name,
		"logo": logo,
	}, &brand)
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// Orders lists every order across all customers
func (s *AdminSession) Orders(ctx context.Context) ([]AdminOrder, error) {
	var resp struct {
		Orders []AdminOrder `json:"orders"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/admin/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// AdminUser is one row of the staff user listing
type AdminUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Users lists the registered customers
func (s *AdminSession) Users(ctx context.Context) ([]AdminUser, error) {
	var resp struct {
		Users []AdminUser `json:"users"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UpdateOrderStatus moves an order through its lifecycle
func (s *AdminSession) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*AdminOrder, error) {
	var order AdminOrder
	err := s.do(ctx, http.MethodPut, "/api/admin/orders/"+id.String()+"/status", map[string]string{
		"status": status,
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Logout wipes the stored credential
func (s *AdminSession) Logout() error {
	return s.store.Clear()
}
