package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/config"
	"github.com/whosonpole/whos-on-pole-api/databases"
	"github.com/whosonpole/whos-on-pole-api/models"
	templates "github.com/whosonpole/whos-on-pole-api/templates/html"
)

// Scheduler runs the periodic moderation jobs: the daily digest email and
// the weekly leaderboard refresh after race weekends. Ban expiry is
// deliberately not swept here; bans lapse lazily when the gate next reads
// the row.
type Scheduler struct {
	cron       *cron.Cron
	ReportDB   databases.ReportDatabase
	LockDB     databases.SchedulerLockDatabase
	Config     config.Config
	instanceID string
}

// New creates a new scheduler instance
func New(reportDB databases.ReportDatabase, lockDB databases.SchedulerLockDatabase, conf config.Config) *Scheduler {
	// the lock owner id comes from config; fall back to a unique id so a
	// bare instance still holds distinguishable locks
	instanceID := conf.InstanceID
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		ReportDB:   reportDB,
		LockDB:     lockDB,
		Config:     conf,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Email the moderation team the queue depth daily at 8 AM UTC
	_, err := s.cron.AddFunc("0 8 * * *", s.sendModerationDigest)
	if err != nil {
		zap.S().Errorw("failed to register moderation digest job", "error", err)
	}

	// Refresh the leaderboard Mondays at 4 AM UTC, after race weekends
	_, err = s.cron.AddFunc("0 4 * * 1", s.refreshLeaderboard)
	if err != nil {
		zap.S().Errorw("failed to register leaderboard refresh job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Moderation scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Moderation scheduler stopped")
}

// sendModerationDigest emails the pending report queue depth to the
// moderation team
func (s *Scheduler) sendModerationDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, "moderation_digest_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for moderation digest job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Moderation digest job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "moderation_digest_job", s.instanceID)

	if s.Config.DigestEmail == "" {
		zap.S().Warn("digest email not configured, skipping moderation digest")
		return
	}

	zap.S().Infow("Running moderation digest job", "instance", s.instanceID)

	pending, err := s.ReportDB.CountDocuments(ctx, bson.M{"status": models.ReportStatusPending})
	if err != nil {
		zap.S().Errorw("failed to count pending reports", "error", err)
		return
	}

	subject := "Daily Moderation Digest - Who's on Pole?"
	body := fmt.Sprintf("There are %d reports waiting for review in the moderation queue.", pending)
	htmlContent := templates.RenderGenericEmail(subject, body)

	if err := s.sendEmail(s.Config.DigestEmail, "Moderation Team", subject, htmlContent, body); err != nil {
		zap.S().Errorw("failed to send moderation digest", "error", err)
		return
	}

	zap.S().Infow("Moderation digest sent", "pendingReports", pending)
}

// refreshLeaderboard kicks the external leaderboard job
func (s *Scheduler) refreshLeaderboard() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	acquired, err := s.LockDB.TryAcquireLock(ctx, "leaderboard_refresh_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for leaderboard refresh job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Leaderboard refresh job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "leaderboard_refresh_job", s.instanceID)

	if s.Config.LeaderboardJobURL == "" {
		zap.S().Warn("leaderboard job url not configured, skipping refresh")
		return
	}

	zap.S().Infow("Running leaderboard refresh job", "instance", s.instanceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Config.LeaderboardJobURL, nil)
	if err != nil {
		zap.S().Errorw("failed to build leaderboard refresh request", "error", err)
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		zap.S().Errorw("failed to trigger leaderboard refresh", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		zap.S().Errorw("leaderboard job rejected refresh", "status", resp.StatusCode)
		return
	}

	zap.S().Infow("Leaderboard refresh triggered", "status", resp.StatusCode)
}

// --- Email Helper Functions ---

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("Who's on Pole?", "no-reply@whosonpole.app")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(s.Config.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
