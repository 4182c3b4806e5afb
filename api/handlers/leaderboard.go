package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/config"
)

// Leaderboard proxies the regenerate trigger to the external leaderboard
// job. The job itself is an opaque collaborator; this service only kicks
// it off.
type Leaderboard struct {
	Config config.Config
	Client *http.Client
}

// GenerateHandler triggers a leaderboard regeneration run
func (l Leaderboard) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if l.Config.LeaderboardJobURL == "" {
		config.ErrorStatus("leaderboard job url is not configured", http.StatusServiceUnavailable, w, errors.New("missing LEADERBOARD_JOB_URL"))
		return
	}

	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, l.Config.LeaderboardJobURL, nil)
	if err != nil {
		config.ErrorStatus("failed to build leaderboard job request", http.StatusInternalServerError, w, err)
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		config.ErrorStatus("failed to trigger leaderboard job", http.StatusBadGateway, w, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		zap.S().Errorw("leaderboard job rejected trigger", "status", resp.StatusCode)
		config.ErrorStatus("leaderboard job rejected trigger", http.StatusBadGateway, w, errors.New(resp.Status))
		return
	}

	zap.S().Infow("leaderboard regeneration triggered", "status", resp.StatusCode)
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"success": true}`))
}
