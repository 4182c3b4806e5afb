package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PermanentBanYears is the sentinel horizon used when a ban is issued
// without an explicit expiry. The platform keeps a single nullable
// bannedUntil timestamp instead of a separate boolean flag, so an
// "effectively permanent" ban is expressed as now + 100 years.
const PermanentBanYears = 100

// UserReputation holds the structure for the reputations collection in
// mongo: one row per user carrying their points balance, strike count and
// ban expiry.
type UserReputation struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID      string             `json:"userId" bson:"userId"`
	Points      int                `json:"points" bson:"points"`
	Strikes     int                `json:"strikes" bson:"strikes"`
	BannedUntil *time.Time         `json:"banned_until" bson:"bannedUntil"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// BannedAt reports whether the user is banned at the given instant. A nil
// or past bannedUntil means not banned; expiry is lazy, there is no sweep.
func (r *UserReputation) BannedAt(now time.Time) bool {
	return r.BannedUntil != nil && r.BannedUntil.After(now)
}

// ProfileSnapshot is the post-action reputation view returned to the admin
// dashboard so it can render updated state without a second query.
type ProfileSnapshot struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Points        int        `json:"points"`
	Strikes       int        `json:"strikes"`
	BannedUntil   *time.Time `json:"banned_until"`
	RecentReports int64      `json:"recent_reports,omitempty"`
}
