package members

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/giftlist-backend/internal/products"
	"github.com/angelmondragon/giftlist-backend/pkg/config"
	"github.com/angelmondragon/giftlist-backend/pkg/db"
	"github.com/angelmondragon/giftlist-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/giftlist-backend/pkg/errors"
	"github.com/angelmondragon/giftlist-backend/pkg/pagination"
	"github.com/angelmondragon/giftlist-backend/pkg/security"
	"gorm.io/gorm"
)

// TokenTTL is the lifetime of every access token issued at login.
const TokenTTL = 30 * time.Minute

const (
	invalidCredentialsMessage = "invalid credentials"
	memberNotFoundMessage     = "member not found"
)

// Service is the member-facing business surface: registration, login and
// wishlist management.
type Service interface {
	RegisterMember(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetAllWishlist(ctx context.Context, email string) ([]products.ProductView, error)
	GetWishlistPage(ctx context.Context, email string, params pagination.Params) (pagination.Page[products.ProductView], error)
	IsWishlisted(ctx context.Context, email string, productID int64) (bool, error)
	AddWishlist(ctx context.Context, email string, productID int64) error
	DeleteWishlist(ctx context.Context, email string, productID int64) error
	Withdraw(ctx context.Context, email string) error
}

type memberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	DeleteWithWishlist(ctx context.Context, memberID int64) error
}

type productRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

type wishlistRepository interface {
	AddItem(ctx context.Context, memberID, productID int64) error
	Exists(ctx context.Context, memberID, productID int64) (bool, error)
	RemoveItem(ctx context.Context, memberID, productID int64) error
	ListItems(ctx context.Context, memberID int64) ([]products.ProductView, error)
	ListItemsPage(ctx context.Context, memberID int64, params pagination.Params) ([]products.ProductView, int64, error)
}

type tokenIssuer interface {
	Issue(ctx context.Context, subject string, ttl time.Duration) (string, error)
}

// ServiceParams bundles the dependencies required to build a member service.
type ServiceParams struct {
	MemberRepo     memberRepository
	ProductRepo    productRepository
	WishlistRepo   wishlistRepository
	TokenIssuer    tokenIssuer
	PasswordConfig config.PasswordConfig
}

type service struct {
	members  memberRepository
	products productRepository
	wishlist wishlistRepository
	tokens   tokenIssuer
	passCfg  config.PasswordConfig
	now      func() time.Time
}

// NewService constructs a member service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.MemberRepo == nil {
		return nil, fmt.Errorf("member repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	if params.TokenIssuer == nil {
		return nil, fmt.Errorf("token issuer is required")
	}
	return &service{
		members:  params.MemberRepo,
		products: params.ProductRepo,
		wishlist: params.WishlistRepo,
		tokens:   params.TokenIssuer,
		passCfg:  params.PasswordConfig,
		now:      time.Now,
	}, nil
}

func (s *service) RegisterMember(ctx context.Context, req RegisterRequest) error {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	hash, err := security.HashPassword(req.Password, s.passCfg)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return pkgerrors.New(pkgerrors.CodeValidation, "password too long")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if err := s.members.Create(ctx, &models.Member{Email: email, PasswordHash: hash}); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return pkgerrors.AlreadyExists("member already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create member")
	}
	return nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	member, err := s.findMember(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	ok, err := security.VerifyPassword(req.Password, member.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.InvalidCredential(invalidCredentialsMessage)
	}

	issuedAt := s.now()
	token, err := s.tokens.Issue(ctx, member.Email, TokenTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue token")
	}
	return &LoginResponse{Token: token, ExpiresAt: issuedAt.Add(TokenTTL).UTC()}, nil
}

func (s *service) GetAllWishlist(ctx context.Context, email string) ([]products.ProductView, error) {
	member, err := s.findMember(ctx, email)
	if err != nil {
		return nil, err
	}
	items, err := s.wishlist.ListItems(ctx, member.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	if items == nil {
		items = []products.ProductView{}
	}
	return items, nil
}

func (s *service) GetWishlistPage(ctx context.Context, email string, params pagination.Params) (pagination.Page[products.ProductView], error) {
	member, err := s.findMember(ctx, email)
	if err != nil {
		return pagination.Page[products.ProductView]{}, err
	}
	params = params.Normalize()
	items, total, err := s.wishlist.ListItemsPage(ctx, member.ID, params)
	if err != nil {
		return pagination.Page[products.ProductView]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist page")
	}
	return pagination.NewPage(items, params, total), nil
}

func (s *service) IsWishlisted(ctx context.Context, email string, productID int64) (bool, error) {
	member, err := s.findMember(ctx, email)
	if err != nil {
		return false, err
	}
	ok, err := s.wishlist.Exists(ctx, member.ID, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wishlist")
	}
	return ok, nil
}

func (s *service) AddWishlist(ctx context.Context, email string, productID int64) error {
	member, err := s.findMember(ctx, email)
	if err != nil {
		return err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.wishlist.AddItem(ctx, member.ID, productID); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return pkgerrors.AlreadyExists("product already in wishlist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add wishlist item")
	}
	return nil
}

func (s *service) DeleteWishlist(ctx context.Context, email string, productID int64) error {
	member, err := s.findMember(ctx, email)
	if err != nil {
		return err
	}
	if err := s.wishlist.RemoveItem(ctx, member.ID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound("wishlist item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove wishlist item")
	}
	return nil
}

func (s *service) Withdraw(ctx context.Context, email string) error {
	member, err := s.findMember(ctx, email)
	if err != nil {
		return err
	}
	if err := s.members.DeleteWithWishlist(ctx, member.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NotFound(memberNotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete member")
	}
	return nil
}

func (s *service) findMember(ctx context.Context, email string) (*models.Member, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, pkgerrors.NotFound(memberNotFoundMessage)
	}
	member, err := s.members.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(memberNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}
	return member, nil
}
