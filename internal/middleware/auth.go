package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	CustomerIDKey  contextKey = "customerID"
	VendorIDKey    contextKey = "vendorID"
	TokenClaimsKey contextKey = "jwtClaims"
)

// AuthMiddleware validates bearer tokens issued by the external identity
// provider and puts the customer/vendor ids on the request context. Requests
// without a valid token pass through anonymously; handlers decide whether
// an identity is required.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})

			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}

			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				ctx := context.WithValue(r.Context(), TokenClaimsKey, claims)
				if cid, ok := claims["customer_id"].(float64); ok {
					ctx = context.WithValue(ctx, CustomerIDKey, int64(cid))
				}
				if vid, ok := claims["vendor_id"].(float64); ok {
					ctx = context.WithValue(ctx, VendorIDKey, int64(vid))
				}
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CustomerIDFrom returns the authenticated customer id, if any.
func CustomerIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CustomerIDKey).(int64)
	return id, ok
}

// VendorIDFrom returns the authenticated vendor id, if any.
func VendorIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(VendorIDKey).(int64)
	return id, ok
}

// ClaimsFrom returns the raw token claims, if a valid token was presented.
func ClaimsFrom(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(TokenClaimsKey).(jwt.MapClaims)
	return claims, ok
}
