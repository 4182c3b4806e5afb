package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/whosonpole/whos-on-pole-api/api"
	"github.com/whosonpole/whos-on-pole-api/api/handlers"
	"github.com/whosonpole/whos-on-pole-api/config"
	"github.com/whosonpole/whos-on-pole-api/databases/mocks"
	"github.com/whosonpole/whos-on-pole-api/models"
)

func postLogin(t *testing.T, h handlers.Admin, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest("POST", "/api/v1/admin/login", bytes.NewBuffer(b))
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.AdminLoginHandler).ServeHTTP(rr, req)
	return rr
}

func TestAdmin_AdminLoginHandlerMissingFields(t *testing.T) {
	h := handlers.Admin{DB: &mocks.AdminDatabase{}, Config: config.Config{JWTSecret: "secret"}}

	rr := postLogin(t, h, map[string]string{"email": "steward@whosonpole.app"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdmin_AdminLoginHandlerUnknownEmail(t *testing.T) {
	adb := &mocks.AdminDatabase{}
	adb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	h := handlers.Admin{DB: adb, Config: config.Config{JWTSecret: "secret"}}

	rr := postLogin(t, h, map[string]string{"email": "nobody@whosonpole.app", "password": "pitwall"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid credentials")
}

func TestAdmin_AdminLoginHandlerWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pitwall"), bcrypt.MinCost)
	adb := &mocks.AdminDatabase{}
	adb.On("FindOne", mock.Anything, mock.Anything).Return(&models.AdminUser{
		ID:       primitive.NewObjectID(),
		Email:    "steward@whosonpole.app",
		Password: string(hash),
		Roles:    []string{"admin"},
		Active:   true,
	}, nil)
	h := handlers.Admin{DB: adb, Config: config.Config{JWTSecret: "secret"}}

	rr := postLogin(t, h, map[string]string{"email": "steward@whosonpole.app", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid credentials")
}

func TestAdmin_AdminLoginHandlerInactiveAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pitwall"), bcrypt.MinCost)
	adb := &mocks.AdminDatabase{}
	adb.On("FindOne", mock.Anything, mock.Anything).Return(&models.AdminUser{
		ID:       primitive.NewObjectID(),
		Email:    "steward@whosonpole.app",
		Password: string(hash),
		Roles:    []string{"admin"},
		Active:   false,
	}, nil)
	h := handlers.Admin{DB: adb, Config: config.Config{JWTSecret: "secret"}}

	rr := postLogin(t, h, map[string]string{"email": "steward@whosonpole.app", "password": "pitwall"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdmin_AdminLoginHandlerIssuesToken(t *testing.T) {
	adminID := primitive.NewObjectID()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pitwall"), bcrypt.MinCost)
	adb := &mocks.AdminDatabase{}
	adb.On("FindOne", mock.Anything, mock.Anything).Return(&models.AdminUser{
		ID:       adminID,
		Email:    "steward@whosonpole.app",
		Password: string(hash),
		Roles:    []string{"admin"},
		Active:   true,
	}, nil)
	h := handlers.Admin{DB: adb, Config: config.Config{JWTSecret: "secret"}}

	rr := postLogin(t, h, map[string]string{"email": "steward@whosonpole.app", "password": "pitwall"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), resp.ExpiresAt, time.Minute)

	claims := &api.AdminClaims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, adminID.Hex(), claims.Subject)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}
