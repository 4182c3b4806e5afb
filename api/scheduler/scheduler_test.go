package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/whosonpole/whos-on-pole-api/config"
	"github.com/whosonpole/whos-on-pole-api/databases/mocks"
)

func TestNew(t *testing.T) {
	s := New(&mocks.ReportDatabase{}, &mocks.SchedulerLockDatabase{}, config.Config{})

	assert.NotNil(t, s)
	assert.NotEmpty(t, s.instanceID)
	assert.NotNil(t, s.cron)
}

func TestNewUsesConfiguredInstanceID(t *testing.T) {
	s := New(&mocks.ReportDatabase{}, &mocks.SchedulerLockDatabase{}, config.Config{InstanceID: "web.2"})

	assert.Equal(t, "web.2", s.instanceID)
}

func TestSendModerationDigestSkipsWhenLockHeld(t *testing.T) {
	reportDB := &mocks.ReportDatabase{}
	lockDB := &mocks.SchedulerLockDatabase{}
	lockDB.On("TryAcquireLock", mock.Anything, "moderation_digest_job", mock.Anything, 10*time.Minute).
		Return(false, nil)

	s := New(reportDB, lockDB, config.Config{DigestEmail: "mods@whosonpole.app"})
	s.sendModerationDigest()

	// another instance holds the lock, so no query runs
	reportDB.AssertNotCalled(t, "CountDocuments", mock.Anything, mock.Anything)
}

func TestSendModerationDigestSkipsWithoutRecipient(t *testing.T) {
	reportDB := &mocks.ReportDatabase{}
	lockDB := &mocks.SchedulerLockDatabase{}
	lockDB.On("TryAcquireLock", mock.Anything, "moderation_digest_job", mock.Anything, 10*time.Minute).
		Return(true, nil)
	lockDB.On("ReleaseLock", mock.Anything, "moderation_digest_job", mock.Anything).Return(nil)

	s := New(reportDB, lockDB, config.Config{})
	s.sendModerationDigest()

	reportDB.AssertNotCalled(t, "CountDocuments", mock.Anything, mock.Anything)
}

func TestRefreshLeaderboardSkipsWhenLockHeld(t *testing.T) {
	lockDB := &mocks.SchedulerLockDatabase{}
	lockDB.On("TryAcquireLock", mock.Anything, "leaderboard_refresh_job", mock.Anything, 10*time.Minute).
		Return(false, nil)

	s := New(&mocks.ReportDatabase{}, lockDB, config.Config{LeaderboardJobURL: "http://localhost:9"})
	s.refreshLeaderboard()

	lockDB.AssertExpectations(t)
}
