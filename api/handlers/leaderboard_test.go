package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/whosonpole/whos-on-pole-api/api/handlers"
	"github.com/whosonpole/whos-on-pole-api/config"
)

func TestLeaderboard_GenerateHandlerNotConfigured(t *testing.T) {
	l := handlers.Leaderboard{Config: config.Config{}}

	req, _ := http.NewRequest("POST", "/api/v1/admin/leaderboard/generate", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(l.GenerateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestLeaderboard_GenerateHandlerTriggersJob(t *testing.T) {
	var hits int
	job := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			hits++
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer job.Close()

	l := handlers.Leaderboard{Config: config.Config{LeaderboardJobURL: job.URL}}

	req, _ := http.NewRequest("POST", "/api/v1/admin/leaderboard/generate", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(l.GenerateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, 1, hits)
	assert.Contains(t, rr.Body.String(), `"success": true`)
}

func TestLeaderboard_GenerateHandlerUpstreamFailure(t *testing.T) {
	job := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer job.Close()

	l := handlers.Leaderboard{Config: config.Config{LeaderboardJobURL: job.URL}}

	req, _ := http.NewRequest("POST", "/api/v1/admin/leaderboard/generate", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(l.GenerateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
