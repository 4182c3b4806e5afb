package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/whosonpole/whos-on-pole-api/api"
	"github.com/whosonpole/whos-on-pole-api/databases/mocks"
	"github.com/whosonpole/whos-on-pole-api/models"
)

func nextSpy(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestBanGate_BannedUserIsDenied(t *testing.T) {
	rdb := &mocks.ReputationDatabase{}
	until := time.Now().Add(48 * time.Hour)
	rdb.On("FindByUserID", mock.Anything, "user-1").
		Return(&models.UserReputation{UserID: "user-1", BannedUntil: &until}, nil)

	called := false
	gate := api.BanGate{DB: rdb}
	handler := gate.Check(nextSpy(&called))

	req, _ := http.NewRequest("POST", "/api/v1/reports", nil)
	req = req.WithContext(api.WithUserID(req.Context(), "user-1"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, called)
	assert.Contains(t, rr.Body.String(), "account suspended")
	assert.Contains(t, rr.Body.String(), "/suspended")
}

func TestBanGate_ExpiredBanPassesThrough(t *testing.T) {
	rdb := &mocks.ReputationDatabase{}
	until := time.Now().Add(-time.Hour)
	rdb.On("FindByUserID", mock.Anything, "user-1").
		Return(&models.UserReputation{UserID: "user-1", BannedUntil: &until}, nil)

	called := false
	gate := api.BanGate{DB: rdb}
	handler := gate.Check(nextSpy(&called))

	req, _ := http.NewRequest("POST", "/api/v1/reports", nil)
	req = req.WithContext(api.WithUserID(req.Context(), "user-1"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}

func TestBanGate_NoReputationRowPassesThrough(t *testing.T) {
	rdb := &mocks.ReputationDatabase{}
	rdb.On("FindByUserID", mock.Anything, "user-1").Return(nil, mongo.ErrNoDocuments)

	called := false
	gate := api.BanGate{DB: rdb}
	handler := gate.Check(nextSpy(&called))

	req, _ := http.NewRequest("POST", "/api/v1/reports", nil)
	req = req.WithContext(api.WithUserID(req.Context(), "user-1"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}

func signAdminToken(t *testing.T, secret, subject string, roles []string) string {
	t.Helper()
	claims := api.AdminClaims{
		Email: "steward@whosonpole.app",
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestAdminGate_MissingTokenRejected(t *testing.T) {
	gate := api.AdminGate{RDB: &mocks.ReputationDatabase{}, JWTSecret: "secret"}

	called := false
	req, _ := http.NewRequest("POST", "/api/v1/admin/users/actions", nil)
	rr := httptest.NewRecorder()
	gate.RequireAdmin(nextSpy(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestAdminGate_BannedAdminDeniedBeforeRoleCheck(t *testing.T) {
	rdb := &mocks.ReputationDatabase{}
	until := time.Now().Add(24 * time.Hour)
	rdb.On("FindByUserID", mock.Anything, "admin-1").
		Return(&models.UserReputation{UserID: "admin-1", BannedUntil: &until}, nil)

	gate := api.AdminGate{RDB: rdb, JWTSecret: "secret"}

	called := false
	req, _ := http.NewRequest("POST", "/api/v1/admin/users/actions", nil)
	// a fully privileged admin is still locked out while suspended
	req.Header.Set("Authorization", "Bearer "+signAdminToken(t, "secret", "admin-1", []string{"admin", "owner"}))
	rr := httptest.NewRecorder()
	gate.RequireAdmin(nextSpy(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, called)
	assert.Contains(t, rr.Body.String(), "account suspended")
}

func TestAdminGate_NonAdminRoleRejected(t *testing.T) {
	rdb := &mocks.ReputationDatabase{}
	rdb.On("FindByUserID", mock.Anything, "user-9").Return(nil, mongo.ErrNoDocuments)

	gate := api.AdminGate{RDB: rdb, JWTSecret: "secret"}

	called := false
	req, _ := http.NewRequest("POST", "/api/v1/admin/users/actions", nil)
	req.Header.Set("Authorization", "Bearer "+signAdminToken(t, "secret", "user-9", []string{"viewer"}))
	rr := httptest.NewRecorder()
	gate.RequireAdmin(nextSpy(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, called)
	assert.Contains(t, rr.Body.String(), "insufficient role")
}

func TestAdminGate_ActiveAdminPassesAndCarriesIdentity(t *testing.T) {
	rdb := &mocks.ReputationDatabase{}
	rdb.On("FindByUserID", mock.Anything, "admin-1").Return(nil, mongo.ErrNoDocuments)

	gate := api.AdminGate{RDB: rdb, JWTSecret: "secret"}

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = api.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req, _ := http.NewRequest("POST", "/api/v1/admin/users/actions", nil)
	req.Header.Set("Authorization", "Bearer "+signAdminToken(t, "secret", "admin-1", []string{"admin"}))
	rr := httptest.NewRecorder()
	gate.RequireAdmin(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "admin-1", seenUserID)
}

func TestAdminGate_WrongSecretRejected(t *testing.T) {
	gate := api.AdminGate{RDB: &mocks.ReputationDatabase{}, JWTSecret: "secret"}

	called := false
	req, _ := http.NewRequest("POST", "/api/v1/admin/users/actions", nil)
	req.Header.Set("Authorization", "Bearer "+signAdminToken(t, "other-secret", "admin-1", []string{"admin"}))
	rr := httptest.NewRecorder()
	gate.RequireAdmin(nextSpy(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}
