package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is an authenticated customer session holding a local cache of the
// server-owned cart. The server stays authoritative: mutations go to the
// server first and the cache is reconciled afterwards. A Session is safe for
// concurrent use.
type Session struct {
	client *Client

	mu    sync.Mutex
	token string
	user  User
	items []CartItem
}

// Authenticated reports whether the session still holds a credential
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// User returns the signed-in user's profile
func (s *Session) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the bearer token for persistence across runs
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// do sends an authenticated request. A 401 response invalidates the session
// before reporting ErrSessionExpired.
func (s *Session) do(ctx context.Context, method, path string, body, out interface{}) error {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return ErrAuthenticationRequired
	}

	err := s.client.do(ctx, method, path, token, body, out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			s.invalidate()
			return ErrSessionExpired
		}
		return err
	}

	return nil
}

func (s *Session) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.items = nil
}

// Logout drops the credential and empties the cart cache
func (s *Session) Logout() {
	s.invalidate()
}

// Refresh replaces the cached cart wholesale with the server's copy. Without
// a credential it clears the cache and performs no request.
func (s *Session) Refresh(ctx context.Context) error {
	if !s.Authenticated() {
		s.mu.Lock()
		s.items = nil
		s.mu.Unlock()
		return nil
	}

	var resp struct {
		CartItems []CartItem `json:"cart_items"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/cart", nil, &resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = resp.CartItems
	s.mu.Unlock()
	return nil
}

// CartItems returns a copy of the cached cart
func (s *Session) CartItems() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// AddToCart puts quantity units of a product in the cart. The server decides
// merge semantics for repeated adds, so the cache is reconciled by a refresh.
func (s *Session) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) error {
	if !s.Authenticated() {
		return ErrAuthenticationRequired
	}
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	body := map[string]interface{}{
		"product_id": productID.String(),
		"quantity":   quantity,
	}
	if err := s.do(ctx, http.MethodPost, "/api/cart/add", body, nil); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

// UpdateQuantity sets a cart line to an exact quantity. A quantity of zero or
// less removes the line, leaving the same end state as RemoveFromCart.
func (s *Session) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}
	if !s.Authenticated() {
		return ErrAuthenticationRequired
	}

	body := map[string]int{"quantity": quantity}
	if err := s.do(ctx, http.MethodPut, "/api/cart/"+productID.String(), body, nil); err != nil {
		return err
	}

	// Patch the cache locally; the PUT is idempotent so the server and cache
	// agree without another round trip.
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// RemoveFromCart deletes a cart line. Failures are always returned to the
// caller, never swallowed.
func (s *Session) RemoveFromCart(ctx context.Context, productID uuid.UUID) error {
	if !s.Authenticated() {
		return ErrAuthenticationRequired
	}

	if err := s.do(ctx, http.MethodDelete, "/api/cart/"+productID.String(), nil, nil); err != nil {
		return err
	}

	s.mu.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.mu.Unlock()
	return nil
}

// ClearCart resets the local cache only. The server clears its own cart
// record as part of order creation.
func (s *Session) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// TotalPrice sums price * quantity over cached lines. Lines with a missing
// product snapshot contribute zero. An empty cart totals zero.
func (s *Session) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemCount sums the quantities over cached lines
func (s *Session) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// OrderInput carries the checkout form fields
type OrderInput struct {
	DeliveryAddress string
	PhoneNumber     string
	PaymentMethod   string
}

// OrderConfirmation is the server's acknowledgement of a placed order
type OrderConfirmation struct {
	OrderID     string `json:"order_id"`
	TotalAmount string `json:"total_amount"`
}

// PlaceOrder submits the current cart as an order. Preconditions are checked
// before any request is sent: the session must be signed in, the cart must be
// non-empty, and the delivery address must be non-blank. On success the local
// cart cache is cleared; on rejection it is left intact for retry. The
// displayed TotalPrice is advisory only: the server prices the order from its
// own catalog.
func (s *Session) PlaceOrder(ctx context.Context, input OrderInput) (*OrderConfirmation, error) {
	if !s.Authenticated() {
		return nil, ErrAuthenticationRequired
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, &ValidationError{Field: "delivery_address", Message: "must not be empty"}
	}
	if s.ItemCount() == 0 {
		return nil, &ValidationError{Field: "cart", Message: "cart is empty"}
	}

	body := map[string]string{
		"delivery_address": input.DeliveryAddress,
	}
	if input.PhoneNumber != "" {
		body["phone_number"] = input.PhoneNumber
	}
	if input.PaymentMethod != "" {
		body["payment_method"] = input.PaymentMethod
	}

	var confirmation OrderConfirmation
	if err := s.do(ctx, http.MethodPost, "/api/orders", body, &confirmation); err != nil {
		return nil, err
	}

	s.ClearCart()
	return &confirmation, nil
}

// Orders fetches the signed-in user's order history
func (s *Session) Orders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}
