package wishlist

import (
	"context"

	"github.com/angelmondragon/giftlist-backend/internal/products"
	"github.com/angelmondragon/giftlist-backend/pkg/db"
	"github.com/angelmondragon/giftlist-backend/pkg/db/models"
	"github.com/angelmondragon/giftlist-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts the (member, product) pair. An existing pair leaves the
// table untouched and yields db.ErrDuplicate.
func (r *Repository) AddItem(ctx context.Context, memberID, productID int64) error {
	if memberID == 0 || productID == 0 {
		return gorm.ErrInvalidValue
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.WishlistItem{MemberID: memberID, ProductID: productID})
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error, "") {
			return db.ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return db.ErrDuplicate
	}
	return nil
}

// Exists reports whether the member has liked the product.
func (r *Repository) Exists(ctx context.Context, memberID, productID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("member_id = ? AND product_id = ?", memberID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RemoveItem deletes the pair. gorm.ErrRecordNotFound is returned when no
// row matched.
func (r *Repository) RemoveItem(ctx context.Context, memberID, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("member_id = ? AND product_id = ?", memberID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveAllForMember deletes every wishlist row of the member.
func (r *Repository) RemoveAllForMember(ctx context.Context, memberID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&models.WishlistItem{})
	return res.RowsAffected, res.Error
}

// ListItems returns every wishlist product of the member in insertion order.
func (r *Repository) ListItems(ctx context.Context, memberID int64) ([]products.ProductView, error) {
	var records []wishlistProductRecord
	if err := r.itemsQuery(ctx, memberID).Scan(&records).Error; err != nil {
		return nil, err
	}
	return toViews(records), nil
}

// ListItemsPage returns one page of the member's wishlist plus the total row count.
func (r *Repository) ListItemsPage(ctx context.Context, memberID int64, params pagination.Params) ([]products.ProductView, int64, error) {
	params = params.Normalize()

	total, err := r.countItems(ctx, memberID)
	if err != nil {
		return nil, 0, err
	}

	var records []wishlistProductRecord
	if err := r.itemsQuery(ctx, memberID).
		Offset(params.Offset()).
		Limit(params.Size).
		Scan(&records).Error; err != nil {
		return nil, 0, err
	}
	return toViews(records), total, nil
}

func (r *Repository) itemsQuery(ctx context.Context, memberID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select("p.id AS id, p.name AS name, p.price AS price, p.image_url AS image_url").
		Joins("JOIN products p ON p.id = wi.product_id").
		Where("wi.member_id = ?", memberID).
		Order("wi.id ASC")
}

func (r *Repository) countItems(ctx context.Context, memberID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("member_id = ?", memberID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
