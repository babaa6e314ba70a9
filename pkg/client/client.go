// Package client is the Go API client for the storefront backend. Client
// serves anonymous catalog reads; Session adds the authenticated cart and
// checkout flow; AdminSession drives the staff panel endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product mirrors the catalog product payload
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ImageURL    string          `json:"image_url"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit"`
}

// Category mirrors the category payload
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

// Brand mirrors the brand payload
type Brand struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Logo string    `json:"logo"`
}

// CartItem is one cached cart line. Product is nil when the catalog no longer
// has the product; such lines contribute zero to totals.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
}

// Order mirrors the order payload
type Order struct {
	ID              uuid.UUID       `json:"id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	DeliveryAddress string          `json:"delivery_address"`
	OrderDate       time.Time       `json:"order_date"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
}

// OrderItem mirrors one order snapshot line
type OrderItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// User is the public profile returned at login
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Client talks to the storefront API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorEnvelope matches the server's structured error response
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// do sends one request and decodes the response into out (when non-nil).
// Non-2xx responses become *APIError with the server's message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Products lists catalog products matching the filter
func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]Product, error) {
	path := "/api/products"
	if query := filter.Values().Encode(); query != "" {
		path += "?" + query
	}

	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Product fetches a single product
func (c *Client) Product(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id.String(), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories lists all categories
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Brands lists all brands
func (c *Client) Brands(ctx context.Context) ([]Brand, error) {
	var resp struct {
		Brands []Brand `json:"brands"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/brands", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Brands, nil
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates a customer and returns a ready Session with the server
// cart already loaded.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	session := &Session{client: c, token: resp.Token, user: resp.User}
	if err := session.Refresh(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// RegisterInput carries the sign-up form fields
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Register creates a customer account and returns a ready Session
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", input, &resp); err != nil {
		return nil, err
	}

	return &Session{client: c, token: resp.Token, user: resp.User}, nil
}

// NewSession builds a Session from a previously saved token, without a login
// round trip. Call Refresh to load the cart.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
