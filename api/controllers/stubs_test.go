package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/giftlist-backend/api/middleware"
	"github.com/angelmondragon/giftlist-backend/internal/members"
	"github.com/angelmondragon/giftlist-backend/internal/products"
	"github.com/angelmondragon/giftlist-backend/pkg/pagination"
)

type stubMemberService struct {
	registered   []members.RegisterRequest
	loginResp    *members.LoginResponse
	items        []products.ProductView
	page         pagination.Page[products.ProductView]
	pageParams   pagination.Params
	wishlisted   bool
	added        []int64
	removed      []int64
	withdrawn    []string
	err          error
	lastEmail    string
	calledAll    bool
	calledPaging bool
}

func (s *stubMemberService) RegisterMember(ctx context.Context, req members.RegisterRequest) error {
	s.registered = append(s.registered, req)
	return s.err
}

func (s *stubMemberService) Login(ctx context.Context, req members.LoginRequest) (*members.LoginResponse, error) {
	s.lastEmail = req.Email
	if s.err != nil {
		return nil, s.err
	}
	return s.loginResp, nil
}

func (s *stubMemberService) GetAllWishlist(ctx context.Context, email string) ([]products.ProductView, error) {
	s.lastEmail = email
	s.calledAll = true
	return s.items, s.err
}

func (s *stubMemberService) GetWishlistPage(ctx context.Context, email string, params pagination.Params) (pagination.Page[products.ProductView], error) {
	s.lastEmail = email
	s.calledPaging = true
	s.pageParams = params
	return s.page, s.err
}

func (s *stubMemberService) IsWishlisted(ctx context.Context, email string, productID int64) (bool, error) {
	s.lastEmail = email
	return s.wishlisted, s.err
}

func (s *stubMemberService) AddWishlist(ctx context.Context, email string, productID int64) error {
	s.lastEmail = email
	s.added = append(s.added, productID)
	return s.err
}

func (s *stubMemberService) DeleteWishlist(ctx context.Context, email string, productID int64) error {
	s.lastEmail = email
	s.removed = append(s.removed, productID)
	return s.err
}

func (s *stubMemberService) Withdraw(ctx context.Context, email string) error {
	s.withdrawn = append(s.withdrawn, email)
	return s.err
}

type stubRevoker struct {
	revoked []string
	err     error
}

func (s *stubRevoker) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return s.err
}

type stubProductService struct {
	product *products.ProductView
	page    pagination.Page[products.ProductView]
	params  pagination.Params
	created []products.CreateProductRequest
	err     error
}

func (s *stubProductService) Get(ctx context.Context, id int64) (*products.ProductView, error) {
	return s.product, s.err
}

func (s *stubProductService) List(ctx context.Context, params pagination.Params) (pagination.Page[products.ProductView], error) {
	s.params = params
	return s.page, s.err
}

func (s *stubProductService) Create(ctx context.Context, req products.CreateProductRequest) (*products.ProductView, error) {
	s.created = append(s.created, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func asMember(req *http.Request, email, accessID string) *http.Request {
	ctx := middleware.WithMemberEmail(req.Context(), email)
	ctx = middleware.WithAccessID(ctx, accessID)
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
