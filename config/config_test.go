package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Setenv("DB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "whosonpole")
	t.Setenv("BASE_URL", "https://api.whosonpole.com")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "sekret")
	t.Setenv("DYNO", "web.1")

	c := New()

	assert.Equal(t, "mongodb://localhost:27017", c.URL)
	assert.Equal(t, "whosonpole", c.DatabaseName)
	assert.Equal(t, "https://api.whosonpole.com", c.BaseURL)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "sekret", c.JWTSecret)
	assert.Equal(t, "web.1", c.InstanceID)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()

	ErrorStatus("failed to fetch report", http.StatusBadRequest, rr, errors.New("mocked-error"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"response": "failed to fetch report, mocked-error"}`, rr.Body.String())
}
