package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// CartService owns the server-side cart: the authoritative copy that client
// sessions cache. Every operation is scoped to a single user.
type CartService interface {
	Get(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error)
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	// SetQuantity replaces a line's quantity. A quantity of zero or less
	// removes the line, so SetQuantity(id, 0) and Remove(id) end in the same
	// state.
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get retrieves the user's cart with product snapshots
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return items, nil
}

// Add puts a product in the cart. Adding a product that is already present
// sums the quantities.
func (s *cartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	// The product must exist at add time; snapshots joined later may still
	// go stale if the product is deleted afterwards.
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	item := &domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}

	if err := s.cartRepo.Add(ctx, item); err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	return nil
}

// SetQuantity sets a line to an exact quantity
func (s *cartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, userID, productID)
	}

	if err := s.cartRepo.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return err
	}

	return nil
}

// Remove deletes a line from the cart
func (s *cartService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.cartRepo.Delete(ctx, userID, productID)
}

// Clear empties the user's cart
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.ClearByUser(ctx, userID)
}
