package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cinesky/cinesky-be/internal/models"
)

// TokenTTL is how long an issued session token stays valid. There is no
// server-side revocation: logout and account deletion only clear the cookie,
// an already-issued token expires on its own.
const TokenTTL = 7 * 24 * time.Hour

// CookieName is the name of the HTTP-only session cookie.
const CookieName = "token"

// ErrInvalidToken is returned by ValidateToken for any token that is missing,
// malformed, expired or carries a bad signature.
var ErrInvalidToken = errors.New("invalid token")

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserClaimsKey is the context key for user claims.
type contextKey string

const UserClaimsKey = contextKey("userClaims")

// Sessions issues and validates signed session tokens. Tokens are stateless;
// validity is determined purely by signature and expiry.
type Sessions struct {
	key    []byte
	secure bool // set the Secure flag on cookies
}

// NewSessions creates a Sessions issuer signing with the given secret.
func NewSessions(secret string, secure bool) *Sessions {
	return &Sessions{key: []byte(secret), secure: secure}
}

// GenerateToken creates a new JWT for a given user.
func (s *Sessions) GenerateToken(user models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// ValidateToken parses and validates a JWT string.
func (s *Sessions) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SetCookie writes the session cookie carrying the token.
func (s *Sessions) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCookie expires the session cookie. This is the whole of the logout
// semantic; the token itself stays cryptographically valid until expiry.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// Middleware creates a middleware for protecting routes. The token is read
// from the session cookie, or from a Bearer Authorization header for
// non-browser clients, and the resulting claims are placed on the request
// context.
func (s *Sessions) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			if cookie, err := r.Cookie(CookieName); err == nil {
				tokenStr = cookie.Value
			}

			if tokenStr == "" {
				authHeader := r.Header.Get("Authorization")
				if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
					tokenStr = after
				}
			}

			if tokenStr == "" {
				unauthorized(w, "Missing auth token")
				return
			}

			claims, err := s.ValidateToken(tokenStr)
			if err != nil {
				unauthorized(w, "Invalid auth token")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the claims set by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + msg + `"}`))
}
