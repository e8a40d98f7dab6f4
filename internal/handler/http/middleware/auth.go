package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/worktravel/worktravel-api/internal/domain/auth"
	"github.com/worktravel/worktravel-api/internal/domain/user"
	"github.com/worktravel/worktravel-api/internal/handler/http/response"
)

type principalKey struct{}

// PrincipalParser turns verified token claims into the caller identity.
type PrincipalParser interface {
	ParsePrincipal(claims map[string]interface{}) (user.Principal, error)
}

// AuthRequired rejects requests without a valid access token and stores the
// caller in the request context. It runs after jwtauth.Verifier.
func AuthRequired(parser PrincipalParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			principal, err := parser.ParsePrincipal(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller stored by AuthRequired.
func PrincipalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}
