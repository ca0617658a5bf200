package auth

import (
	"context"
	"net/http"
	"strings"

	"quizlink/internal/models"
	"quizlink/internal/response"

	"github.com/dgrijalva/jwt-go"
)

// CookieName is the session cookie every browser client carries.
const CookieName = "auth_token"

// Identity is the decoded session stamped onto authenticated requests.
type Identity struct {
	UserID uint
	Email  string
	Name   string
	Role   string
}

type contextKey struct{}

// FromContext returns the identity stamped by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok
}

// TokenFromRequest pulls the session token from the auth cookie, falling
// back to an Authorization bearer header for non-browser clients.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// ParseToken verifies the signature and expiry, returning the identity the
// token encodes.
func ParseToken(tokenString, jwtSecret string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, jwt.NewValidationError("invalid claims", jwt.ValidationErrorClaimsInvalid)
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, jwt.NewValidationError("missing user_id", jwt.ValidationErrorClaimsInvalid)
	}

	identity := Identity{UserID: uint(userID)}
	identity.Email, _ = claims["email"].(string)
	identity.Name, _ = claims["name"].(string)
	identity.Role, _ = claims["role"].(string)
	return identity, nil
}

// RequireAuth rejects requests that do not carry a valid session token and
// stamps the identity for downstream ownership checks.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := TokenFromRequest(r)
			if tokenString == "" {
				response.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			identity, err := ParseToken(tokenString, jwtSecret)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth stamps the identity when a valid token is present but never
// rejects. Quiz submission uses it to link attempts to logged-in takers.
func OptionalAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenString := TokenFromRequest(r); tokenString != "" {
				if identity, err := ParseToken(tokenString, jwtSecret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), contextKey{}, identity))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route on the decoded token role. Must run after
// RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := FromContext(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if identity.Role != models.RoleAdmin {
			response.Error(w, http.StatusForbidden, "Access denied. Admin only.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
