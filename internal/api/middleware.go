package api

import (
	"context"
	"net/http"
	"strings"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/ports"
	"github.com/tayotravel/tourbook/internal/utils"
)

type contextKey string

const claimsKey contextKey = "auth-claims"

// Authenticated validates the Bearer token and stores the caller's
// claims on the request context.
func Authenticated(next http.HandlerFunc, auth ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			ae := utils.NewUnauthorized("authorization header required")
			utils.RenderJson(w, ae.StatusCode, ae)
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ae := utils.NewUnauthorized("invalid authorization header format")
			utils.RenderJson(w, ae.StatusCode, ae)
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			ae := utils.NewUnauthorized("invalid token")
			utils.RenderJson(w, ae.StatusCode, ae)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

// AdminOnly restricts the handler to administrators. It must wrap a
// handler already behind Authenticated.
func AdminOnly(next http.HandlerFunc, auth ports.AuthService) http.HandlerFunc {
	return Authenticated(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := CurrentClaims(r)
		if !ok || !claims.IsAdmin() {
			ae := utils.NewForbidden("administrator access required")
			utils.RenderJson(w, ae.StatusCode, ae)
			return
		}
		next(w, r)
	}, auth)
}

// CurrentClaims returns the authenticated caller's claims, if any.
func CurrentClaims(r *http.Request) (*models.AuthClaims, bool) {
	claims, ok := r.Context().Value(claimsKey).(*models.AuthClaims)
	return claims, ok
}
