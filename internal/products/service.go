package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/giftlist-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/giftlist-backend/pkg/errors"
	"github.com/angelmondragon/giftlist-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service exposes the product catalog.
type Service interface {
	Get(ctx context.Context, id int64) (*ProductView, error)
	List(ctx context.Context, params pagination.Params) (pagination.Page[ProductView], error)
	Create(ctx context.Context, req CreateProductRequest) (*ProductView, error)
}

type productRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, params pagination.Params) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
}

type service struct {
	repo productRepository
}

// NewService builds the catalog service.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductView, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	view := FromModel(*product)
	return &view, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (pagination.Page[ProductView], error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return pagination.Page[ProductView]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	page := pagination.NewPage(rows, params, total)
	return pagination.Map(page, FromModel), nil
}

func (s *service) Create(ctx context.Context, req CreateProductRequest) (*ProductView, error) {
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative").
			WithDetails(map[string]any{"price": "must be >= 0"})
	}
	created, err := s.repo.Create(ctx, req.toModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	view := FromModel(*created)
	return &view, nil
}
