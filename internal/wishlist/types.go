package wishlist

import (
	"github.com/angelmondragon/giftlist-backend/internal/products"
	"github.com/shopspring/decimal"
)

type wishlistProductRecord struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	ImageURL string
}

func (r wishlistProductRecord) toView() products.ProductView {
	return products.ProductView{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		ImageURL: r.ImageURL,
	}
}

func toViews(records []wishlistProductRecord) []products.ProductView {
	out := make([]products.ProductView, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toView())
	}
	return out
}
