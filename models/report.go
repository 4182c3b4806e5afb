package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Report target types. A report points at a piece of user-generated
// content (post, comment, grid prediction, chat message) or directly at a
// profile.
const (
	TargetTypePost        = "post"
	TargetTypeComment     = "comment"
	TargetTypeGrid        = "grid"
	TargetTypeProfile     = "profile"
	TargetTypeChatMessage = "chat_message"
)

// Report lifecycle states. A report is created pending and transitions to
// exactly one resolved state exactly once; reports are never deleted.
const (
	ReportStatusPending         = "pending"
	ReportStatusResolvedRemoved = "resolved_removed"
	ReportStatusResolvedIgnored = "resolved_ignored"
)

// Report represents a flag raised by a user against a content item or
// profile, stored in the reports collection
type Report struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReporterID string             `json:"reporterId" bson:"reporterId"`
	TargetID   string             `json:"targetId" bson:"targetId"`
	TargetType string             `json:"targetType" bson:"targetType"`
	Reason     string             `json:"reason" bson:"reason"`
	Status     string             `json:"status" bson:"status"`
	CreatedAt  primitive.DateTime `json:"createdAt" bson:"createdAt"`
}

// ValidTargetType reports whether t is one of the five report targets.
func ValidTargetType(t string) bool {
	switch t {
	case TargetTypePost, TargetTypeComment, TargetTypeGrid, TargetTypeProfile, TargetTypeChatMessage:
		return true
	}
	return false
}
