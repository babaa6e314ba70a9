package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService defines the interface for catalog browsing and management.
// Reads are public; create/update/delete are reserved for the admin surface.
type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListBrands(ctx context.Context) ([]*domain.Brand, error)

	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, name, description, icon string) (*domain.Category, error)
	CreateBrand(ctx context.Context, name, logo string) (*domain.Brand, error)
}

// ProductInput carries the mutable fields of a product
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Brand       string
	ImageURL    string
	Stock       int
	Unit        string
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// ListProducts retrieves products matching the filter
func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// ListCategories retrieves all categories
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListBrands retrieves all brands
func (s *catalogService) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// CreateProduct adds a new product to the catalog
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Brand:       input.Brand,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		Unit:        input.Unit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct replaces the mutable fields of an existing product
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Brand = input.Brand
	product.ImageURL = input.ImageURL
	product.Stock = input.Stock
	product.Unit = input.Unit
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// CreateCategory adds a new category
func (s *catalogService) CreateCategory(ctx context.Context, name, description, icon string) (*domain.Category, error) {
	category := &domain.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Icon:        icon,
		CreatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// CreateBrand adds a new brand
func (s *catalogService) CreateBrand(ctx context.Context, name, logo string) (*domain.Brand, error) {
	brand := &domain.Brand{
		ID:        uuid.New(),
		Name:      name,
		Logo:      logo,
		CreatedAt: time.Now(),
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}
