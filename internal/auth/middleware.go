package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned when a credential token cannot be verified.
var ErrUnauthorized = errors.New("auth: unauthorized")

// Claims models the tokens our identity provider issues. user_metadata is a
// free-form bag of profile fields the OAuth provider returned at signup.
type Claims struct {
	jwt.RegisteredClaims
	Email        string            `json:"email"`
	UserMetadata map[string]string `json:"user_metadata"`
}

// VerifyToken validates an HMAC-signed bearer token and returns the principal.
func VerifyToken(secret, tokenString string) (Principal, error) {
	if secret == "" || strings.TrimSpace(tokenString) == "" {
		return Principal{}, ErrUnauthorized
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return Principal{}, ErrUnauthorized
	}
	return Principal{
		ID:       claims.Subject,
		Email:    claims.Email,
		Metadata: claims.UserMetadata,
	}, nil
}

// RequireUser enforces a valid bearer token and injects the principal into
// the request context.
func RequireUser(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, `{"error":"auth not configured"}`, http.StatusUnauthorized)
				return
			}
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}
			principal, err := VerifyToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
