package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/giftlist-backend/api/middleware"
	"github.com/angelmondragon/giftlist-backend/api/responses"
	"github.com/angelmondragon/giftlist-backend/api/validators"
	"github.com/angelmondragon/giftlist-backend/internal/members"
	pkgerrors "github.com/angelmondragon/giftlist-backend/pkg/errors"
	"github.com/angelmondragon/giftlist-backend/pkg/logger"
)

type sessionRevoker interface {
	Revoke(ctx context.Context, accessID string) error
}

// MemberRegister creates a member account.
func MemberRegister(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		var body members.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RegisterMember(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"email": members.NormalizeEmail(body.Email),
		})
	}
}

// MemberLogin exchanges credentials for a bearer token. The token is also
// returned in the Authorization header.
func MemberLogin(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		var body members.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Authorization", "Bearer "+result.Token)
		responses.WriteSuccess(w, result)
	}
}

// MemberLogout revokes the session behind the presented access token.
func MemberLogout(sessions sessionRevoker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if accessID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}

		if err := sessions.Revoke(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// MemberWithdraw deletes the authenticated member together with its wishlist
// and revokes the current session.
func MemberWithdraw(svc members.Service, sessions sessionRevoker, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Withdraw(ctx, email); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if sessions != nil {
			if accessID := middleware.AccessIDFromContext(ctx); accessID != "" {
				if err := sessions.Revoke(ctx, accessID); err != nil && logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "member.withdraw.revoke_failed")
				}
			}
		}

		responses.WriteNoContent(w)
	}
}

func requireMember(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	email := middleware.MemberEmailFromContext(r.Context())
	if email == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "member context missing"))
		return "", false
	}
	return email, true
}
