package service

import (
	"context"
	"fmt"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/repository"
)

// RecentOrderLimit bounds the dashboard's recent orders list
const RecentOrderLimit = 10

// DashboardStats aggregates the counters shown on the admin dashboard
type DashboardStats struct {
	TotalProducts   int `json:"total_products"`
	TotalCategories int `json:"total_categories"`
	TotalBrands     int `json:"total_brands"`
	TotalUsers      int `json:"total_users"`
	TotalOrders     int `json:"total_orders"`
}

// Dashboard is the admin landing payload
type Dashboard struct {
	Statistics   DashboardStats  `json:"statistics"`
	RecentOrders []*domain.Order `json:"recent_orders"`
}

// AdminService serves the staff panel's aggregate views
type AdminService interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

type adminService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	userRepo     repository.UserRepository
	orderRepo    repository.OrderRepository
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
) AdminService {
	return &adminService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		userRepo:     userRepo,
		orderRepo:    orderRepo,
	}
}

// GetDashboard gathers entity counts and the most recent orders
func (s *adminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats := DashboardStats{}
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if stats.TotalCategories, err = s.categoryRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if stats.TotalBrands, err = s.brandRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count brands: %w", err)
	}
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalOrders, err = s.orderRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	recentOrders, err := s.orderRepo.ListRecent(ctx, RecentOrderLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}

	return &Dashboard{
		Statistics:   stats,
		RecentOrders: recentOrders,
	}, nil
}

// ListUsers retrieves all registered users for the staff panel
func (s *adminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
