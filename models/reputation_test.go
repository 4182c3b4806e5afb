package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserReputation_BannedAt(t *testing.T) {
	now := time.Now()

	rep := UserReputation{}
	assert.False(t, rep.BannedAt(now), "no bannedUntil means not banned")

	past := now.Add(-time.Minute)
	rep.BannedUntil = &past
	assert.False(t, rep.BannedAt(now), "a lapsed ban reads as not banned")

	future := now.Add(time.Minute)
	rep.BannedUntil = &future
	assert.True(t, rep.BannedAt(now))
}

func TestUserReputation_BannedAtSentinel(t *testing.T) {
	now := time.Now()
	sentinel := now.AddDate(PermanentBanYears, 0, 0)
	rep := UserReputation{BannedUntil: &sentinel}

	assert.True(t, rep.BannedAt(now))
	assert.True(t, rep.BannedAt(now.AddDate(50, 0, 0)))
}
