package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/databases"
)

// AdminClaims are the JWT claims issued by the admin login endpoint
type AdminClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// AdminGate authenticates moderation-console requests with an HS256 JWT
// and enforces role membership. A suspended admin account is refused
// before any role check runs.
type AdminGate struct {
	RDB       databases.ReputationDatabase
	JWTSecret string
}

// RequireAdmin wraps a handler so only active, unbanned admins reach it
func (a AdminGate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		claims, err := a.parseToken(r)
		if err != nil {
			zap.S().Warnw("admin auth failed",
				"url", r.URL,
				"error", err)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}

		// suspension outranks every role, a banned admin is still banned
		ctx, cancel := WithQueryTimeout(r.Context())
		defer cancel()
		rep, err := a.RDB.FindByUserID(ctx, claims.Subject)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			zap.S().Errorw("failed to fetch admin reputation", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "internal server error"}`))
			return
		}
		if rep != nil && rep.BannedAt(time.Now()) {
			zap.S().Infow("suspended admin denied",
				"userId", claims.Subject,
				"bannedUntil", rep.BannedUntil)
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "account suspended", "redirect": "/suspended"}`))
			return
		}

		if !hasAnyRole(claims.Roles, "admin", "owner") {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "insufficient role"}`))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.Subject)))
	})
}

func (a AdminGate) parseToken(r *http.Request) (*AdminClaims, error) {
	reqToken := r.Header.Get("Authorization")
	splitToken := strings.Split(reqToken, "Bearer ")
	if len(splitToken) < 2 {
		return nil, fmt.Errorf("missing bearer token")
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(splitToken[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func hasAnyRole(roles []string, wanted ...string) bool {
	for _, role := range roles {
		for _, w := range wanted {
			if role == w {
				return true
			}
		}
	}
	return false
}
