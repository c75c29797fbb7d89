package models

import "time"

// WishlistItem links a member to a liked product.
type WishlistItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	MemberID  int64     `gorm:"column:member_id;not null;index:wishlist_items_member_id_idx;uniqueIndex:wishlist_items_member_product_key"`
	ProductID int64     `gorm:"column:product_id;not null;index:wishlist_items_product_id_idx;uniqueIndex:wishlist_items_member_product_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (WishlistItem) TableName() string { return "wishlist_items" }
