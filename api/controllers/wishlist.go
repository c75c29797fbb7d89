package controllers

import (
	"net/http"

	"github.com/angelmondragon/giftlist-backend/api/responses"
	"github.com/angelmondragon/giftlist-backend/api/validators"
	"github.com/angelmondragon/giftlist-backend/internal/members"
	pkgerrors "github.com/angelmondragon/giftlist-backend/pkg/errors"
	"github.com/angelmondragon/giftlist-backend/pkg/logger"
)

// WishlistList returns the member's wishlist. Without page or size the whole
// list is returned as an array, otherwise a page envelope.
func WishlistList(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		email, ok := requireMember(w, r, logg)
		if !ok {
			return
		}

		if !validators.HasPagination(r) {
			items, err := svc.GetAllWishlist(ctx, email)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, items)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.GetWishlistPage(ctx, email, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// WishlistAdd adds a product to the member's wishlist.
func WishlistAdd(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		email, ok := requireMember(w, r, logg)
		if !ok {
			return
		}

		var body members.AddWishlistRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.AddWishlist(ctx, email, body.ProductID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]int64{"product_id": body.ProductID})
	}
}

// WishlistStatus reports whether a product is on the member's wishlist.
func WishlistStatus(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		email, ok := requireMember(w, r, logg)
		if !ok {
			return
		}

		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		wishlisted, err := svc.IsWishlisted(ctx, email, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"wishlisted": wishlisted})
	}
}

// WishlistRemove deletes a product from the member's wishlist.
func WishlistRemove(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		email, ok := requireMember(w, r, logg)
		if !ok {
			return
		}

		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteWishlist(ctx, email, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
