package products

import (
	"strings"

	"github.com/angelmondragon/giftlist-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductView is the projection of a product returned to clients.
type ProductView struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

// FromModel projects the persisted product.
func FromModel(p models.Product) ProductView {
	return ProductView{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}
}

// CreateProductRequest is the body accepted when adding a catalog entry.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url" validate:"omitempty,url,max=2048"`
}

func (r CreateProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:     strings.TrimSpace(r.Name),
		Price:    r.Price.Round(2),
		ImageURL: strings.TrimSpace(r.ImageURL),
	}
}
