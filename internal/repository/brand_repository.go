package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
)

var (
	ErrBrandAlreadyExists = errors.New("brand with this name already exists")
)

// BrandRepository defines the interface for brand data access
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	List(ctx context.Context) ([]*domain.Brand, error)
	Count(ctx context.Context) (int, error)
}

type brandRepository struct {
	db *sql.DB
}

// NewBrandRepository creates a new instance of BrandRepository
func NewBrandRepository(db *sql.DB) BrandRepository {
	return &brandRepository{db: db}
}

// Create inserts a new brand into the database using parameterized queries
func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	query := `
		INSERT INTO brands (id, name, logo, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, brand.ID, brand.Name, brand.Logo, brand.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "brands_name_key") {
			return ErrBrandAlreadyExists
		}
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

// List retrieves all brands
func (r *brandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	query := `
		SELECT id, name, logo, created_at
		FROM brands
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []*domain.Brand{}
	for rows.Next() {
		brand := &domain.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Logo, &brand.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, nil
}

// Count returns the total number of brands
func (r *brandRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brands`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count brands: %w", err)
	}
	return count, nil
}
