package members

import (
	"strings"
	"time"

	"github.com/angelmondragon/giftlist-backend/pkg/db/models"
)

// RegisterRequest captures the credentials used to create a member.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AddWishlistRequest is the body of the add-to-wishlist endpoint.
type AddWishlistRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// MemberDTO is the public view of a member.
type MemberDTO struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel maps the persisted member to its public view.
func FromModel(m *models.Member) *MemberDTO {
	if m == nil {
		return nil
	}
	return &MemberDTO{ID: m.ID, Email: m.Email, CreatedAt: m.CreatedAt}
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
