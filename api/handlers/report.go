package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/api"
	"github.com/whosonpole/whos-on-pole-api/config"
	"github.com/whosonpole/whos-on-pole-api/databases"
	"github.com/whosonpole/whos-on-pole-api/models"
)

// reportListLimit caps the admin report listing at the newest 50 rows
const reportListLimit = 50

// Report handles report submission and the admin report listing
type Report struct {
	RDB databases.ReportDatabase
	CDB databases.ContentDatabase
	MDB databases.ChatMessageDatabase
}

type submitReportRequest struct {
	TargetID   string `json:"targetId"`
	TargetType string `json:"targetType"`
	Reason     string `json:"reason"`
}

type chatReportRequest struct {
	MessageID string `json:"messageId"`
	Reason    string `json:"reason"`
}

// SubmitReportHandler files a new report from the session user against a
// content item or profile
func (re Report) SubmitReportHandler(w http.ResponseWriter, r *http.Request) {
	var req submitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	reporterID := api.UserIDFromContext(r.Context())
	re.submitReport(w, r, reporterID, req.TargetID, req.TargetType, req.Reason)
}

// ChatReportHandler files a report against a persisted chat message
func (re Report) ChatReportHandler(w http.ResponseWriter, r *http.Request) {
	var req chatReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.MessageID == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "messageId is required")
		return
	}

	oid, err := primitive.ObjectIDFromHex(req.MessageID)
	if err != nil {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "chat message not found")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := re.MDB.FindOne(ctx, bson.M{"_id": oid}); err != nil {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "chat message not found")
		return
	}

	reporterID := api.UserIDFromContext(r.Context())
	re.submitReport(w, r, reporterID, req.MessageID, models.TargetTypeChatMessage, req.Reason)
}

func (re Report) submitReport(w http.ResponseWriter, r *http.Request, reporterID, targetID, targetType, reason string) {
	if targetID == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "targetId is required")
		return
	}
	if targetType == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "targetType is required")
		return
	}
	if !models.ValidTargetType(targetType) {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "targetType must be one of post, comment, grid, profile, chat_message")
		return
	}
	if reason == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "reason is required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dupFilter := bson.M{
		"reporterId": reporterID,
		"targetId":   targetID,
		"targetType": targetType,
	}
	if _, err := re.RDB.FindOne(ctx, dupFilter); err == nil {
		respondError(w, http.StatusConflict, models.CodeDuplicateReport, "you have already reported this content")
		return
	}

	report := models.Report{
		ID:         primitive.NewObjectID(),
		ReporterID: reporterID,
		TargetID:   targetID,
		TargetType: targetType,
		Reason:     reason,
		Status:     models.ReportStatusPending,
		CreatedAt:  primitive.NewDateTimeFromTime(time.Now()),
	}

	inserted, err := re.RDB.InsertOne(ctx, report)
	if err != nil {
		// the unique index on (reporterId, targetId, targetType) closes the
		// race window the pre-check leaves open
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusConflict, models.CodeDuplicateReport, "you have already reported this content")
			return
		}
		config.ErrorStatus("failed to insert report", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("report submitted",
		"reportId", inserted.ID.Hex(),
		"reporterId", reporterID,
		"targetType", targetType,
		"targetId", targetID,
	)

	b, err := json.Marshal(inserted)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UserReportsHandler returns the newest reports filed against a user's
// profile or anything they own, for the moderation dashboard
func (re Report) UserReportsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "userId is required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter, err := re.reportsAgainstUserFilter(ctx, userID)
	if err != nil {
		config.ErrorStatus("failed to resolve user content", http.StatusInternalServerError, w, err)
		return
	}

	limit := int64(reportListLimit)
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit)

	reports, err := re.RDB.Find(ctx, filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get reports", http.StatusInternalServerError, w, err)
		return
	}
	if len(reports) == 0 {
		reports = []models.Report{}
	}

	b, err := json.Marshal(map[string]interface{}{"data": reports})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// reportsAgainstUserFilter widens the profile-target match with one
// owned-id clause per content type the user actually owns anything of.
// A user with no content costs a single profile-only query.
func (re Report) reportsAgainstUserFilter(ctx context.Context, userID string) (bson.M, error) {
	conditions := []bson.M{
		{"targetType": models.TargetTypeProfile, "targetId": userID},
	}

	for _, targetType := range []string{
		models.TargetTypePost,
		models.TargetTypeComment,
		models.TargetTypeGrid,
		models.TargetTypeChatMessage,
	} {
		owned, err := re.CDB.OwnedIDsByUser(ctx, targetType, []string{userID})
		if err != nil {
			return nil, err
		}
		ids := owned[userID]
		if len(ids) == 0 {
			continue
		}
		conditions = append(conditions, bson.M{
			"targetType": targetType,
			"targetId":   bson.M{"$in": ids},
		})
	}

	return bson.M{"$or": conditions}, nil
}
