package members

import (
	"context"

	"github.com/angelmondragon/giftlist-backend/internal/wishlist"
	"github.com/angelmondragon/giftlist-backend/pkg/db"
	"github.com/angelmondragon/giftlist-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes member persistence operations.
type Repository struct {
	client *db.Client
}

// NewRepository constructs a members repo bound to the provided client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

// Create inserts the member unless the email is already taken, in which case
// db.ErrDuplicate is returned and nothing is written.
func (r *Repository) Create(ctx context.Context, member *models.Member) error {
	res := r.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(member)
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

// FindByEmail retrieves the member matching the normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.client.DB().WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByID loads a member by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member
	if err := r.client.DB().WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// DeleteWithWishlist removes the member and all of its wishlist rows in one
// transaction. gorm.ErrRecordNotFound is returned if the member is gone.
func (r *Repository) DeleteWithWishlist(ctx context.Context, memberID int64) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := wishlist.NewRepository(tx).RemoveAllForMember(ctx, memberID); err != nil {
			return err
		}
		res := tx.Where("id = ?", memberID).Delete(&models.Member{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
