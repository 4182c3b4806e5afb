package models

import "time"

// Moderation action kinds. Each request carries exactly one action scoped
// to one target user or one content item; batch actions are not supported.
const (
	ActionBan           = "ban"
	ActionUnban         = "unban"
	ActionResetStrikes  = "reset_strikes"
	ActionAdjustPoints  = "adjust_points"
	ActionRemoveContent = "remove_content"
	ActionIgnoreReport  = "ignore_report"
)

// ModerationActionRequest is the admin decision posted to
// /admin/users/actions. It is a transient command, never persisted.
type ModerationActionRequest struct {
	Action      string      `json:"action"`
	UserID      string      `json:"userId"`
	DeltaPoints interface{} `json:"deltaPoints,omitempty"`
	BannedUntil *time.Time  `json:"bannedUntil,omitempty"`
	ReportID    string      `json:"reportId,omitempty"`
	TargetID    string      `json:"targetId,omitempty"`
	TargetType  string      `json:"targetType,omitempty"`
}

// DeltaPointsValue coerces the wire value to an integer delta. Absent or
// non-numeric values become 0 rather than an error, matching the admin
// dashboard contract.
func (m *ModerationActionRequest) DeltaPointsValue() int {
	switch v := m.DeltaPoints.(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// ModerationActionResponse is the success envelope for a processed action,
// carrying the post-action reputation snapshot.
type ModerationActionResponse struct {
	Success bool             `json:"success"`
	Profile *ProfileSnapshot `json:"profile,omitempty"`
}
