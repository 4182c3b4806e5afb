package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/whosonpole/whos-on-pole-api/api"
	"github.com/whosonpole/whos-on-pole-api/config"
	"github.com/whosonpole/whos-on-pole-api/databases"
	"github.com/whosonpole/whos-on-pole-api/models"
)

// adminTokenTTL is how long an admin session token stays valid
const adminTokenTTL = 24 * time.Hour

// Admin handles the moderation console login
type Admin struct {
	DB     databases.AdminDatabase
	Config config.Config
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminLoginHandler exchanges admin credentials for a signed session token.
// Every failure path returns the same message so the endpoint cannot be
// used to probe which admin emails exist.
func (a Admin) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "email and password are required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	admin, err := a.DB.FindOne(ctx, bson.M{"email": req.Email})
	if err != nil {
		respondError(w, http.StatusUnauthorized, models.CodeValidationError, "invalid credentials")
		return
	}
	if !admin.Active {
		respondError(w, http.StatusUnauthorized, models.CodeValidationError, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, models.CodeValidationError, "invalid credentials")
		return
	}

	now := time.Now()
	expiresAt := now.Add(adminTokenTTL)
	claims := api.AdminClaims{
		Email: admin.Email,
		Roles: admin.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.Config.JWTSecret))
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("admin logged in", "adminId", admin.ID.Hex())

	b, err := json.Marshal(adminLoginResponse{Token: signed, ExpiresAt: expiresAt})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
