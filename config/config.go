package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Config holds the project config values. Every environment value the
// service consumes is read here exactly once; components receive the
// struct at construction and never touch the environment themselves.
type Config struct {
	URL               string
	DatabaseName      string
	BaseURL           string
	Port              string
	JWTSecret         string
	SendgridAPIKey    string
	CloudinaryURL     string
	LeaderboardJobURL string
	DigestEmail       string
	InstanceID        string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:               os.Getenv("DB_URI"),
		DatabaseName:      os.Getenv("DB_NAME"),
		BaseURL:           os.Getenv("BASE_URL"),
		Port:              os.Getenv("PORT"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SendgridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
		LeaderboardJobURL: os.Getenv("LEADERBOARD_JOB_URL"),
		DigestEmail:       os.Getenv("MODERATION_DIGEST_EMAIL"),
		InstanceID:        os.Getenv("DYNO"), // Heroku sets this to "web.1", "web.2", etc.
	}

}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
