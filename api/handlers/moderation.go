package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/api"
	"github.com/whosonpole/whos-on-pole-api/config"
	"github.com/whosonpole/whos-on-pole-api/databases"
	"github.com/whosonpole/whos-on-pole-api/models"
)

const (
	// removeContentPenalty is the points deduction that rides along with the
	// strike when a report is upheld and the content removed
	removeContentPenalty = 5

	// recentReportWindowDays bounds the recent_reports annotation on the
	// points overview
	recentReportWindowDays = 90

	// overviewPageSize is the default page size for the points overview
	overviewPageSize = 100
)

// Moderation processes admin moderation actions and the points overview
type Moderation struct {
	DB        databases.ReputationDatabase
	ReportDB  databases.ReportDatabase
	ContentDB databases.ContentDatabase
	UserDB    databases.UserDatabase
	Mailer    *Mailer
	Media     *Media
}

// UserActionsHandler applies a single moderation action to a single user or
// content item
func (m Moderation) UserActionsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ModerationActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	switch req.Action {
	case models.ActionBan, models.ActionUnban, models.ActionResetStrikes, models.ActionAdjustPoints:
		m.applyUserAction(w, r, req)
	case models.ActionRemoveContent:
		m.applyRemoveContent(w, r, req)
	case models.ActionIgnoreReport:
		m.applyIgnoreReport(w, r, req)
	default:
		respondError(w, http.StatusBadRequest, models.CodeUnsupportedAction, fmt.Sprintf("unsupported action %q", req.Action))
	}
}

// IgnoreReportHandler is the /reports/ignore shorthand for the
// ignore_report action
func (m Moderation) IgnoreReportHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReportID string `json:"reportId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	m.applyIgnoreReport(w, r, models.ModerationActionRequest{
		Action:   models.ActionIgnoreReport,
		ReportID: req.ReportID,
	})
}

// RemoveContentHandler is the /reports/remove shorthand for the
// remove_content action
func (m Moderation) RemoveContentHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReportID   string `json:"reportId"`
		TargetID   string `json:"targetId"`
		TargetType string `json:"targetType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	m.applyRemoveContent(w, r, models.ModerationActionRequest{
		Action:     models.ActionRemoveContent,
		ReportID:   req.ReportID,
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
	})
}

func (m Moderation) applyUserAction(w http.ResponseWriter, r *http.Request, req models.ModerationActionRequest) {
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "userId is required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "user not found")
		return
	}
	user, err := m.UserDB.FindOne(ctx, bson.M{"_id": oid})
	if err != nil {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "user not found")
		return
	}

	var rep *models.UserReputation
	switch req.Action {
	case models.ActionBan:
		until := time.Now().AddDate(models.PermanentBanYears, 0, 0)
		if req.BannedUntil != nil {
			until = *req.BannedUntil
		}
		rep, err = m.DB.SetBanExpiry(ctx, req.UserID, until)
		if err == nil && m.Mailer != nil {
			go m.Mailer.SendBanNotice(user.Email, user.Username, until)
		}
	case models.ActionUnban:
		rep, err = m.DB.ClearBan(ctx, req.UserID)
	case models.ActionResetStrikes:
		rep, err = m.DB.ResetStrikes(ctx, req.UserID)
	case models.ActionAdjustPoints:
		rep, err = m.DB.IncrementPoints(ctx, req.UserID, req.DeltaPointsValue())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabaseError, fmt.Sprintf("failed to apply %s: %v", req.Action, err))
		return
	}

	zap.S().Infow("moderation action applied",
		"action", req.Action,
		"actor", api.UserIDFromContext(r.Context()),
		"userId", req.UserID,
	)

	m.respondProfile(w, &models.ProfileSnapshot{
		ID:          req.UserID,
		Username:    user.Username,
		Points:      rep.Points,
		Strikes:     rep.Strikes,
		BannedUntil: rep.BannedUntil,
	})
}

// applyRemoveContent deletes the reported content first and only then
// resolves the report and records the violation. A failed delete leaves the
// report pending so the action can be retried.
func (m Moderation) applyRemoveContent(w http.ResponseWriter, r *http.Request, req models.ModerationActionRequest) {
	if req.ReportID == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "reportId is required")
		return
	}
	if req.TargetID == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "targetId is required")
		return
	}
	if req.TargetType == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "targetType is required")
		return
	}
	if !models.ValidTargetType(req.TargetType) {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "targetType must be one of post, comment, grid, profile, chat_message")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reportOID, err := primitive.ObjectIDFromHex(req.ReportID)
	if err != nil {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "report not found")
		return
	}
	report, err := m.ReportDB.FindOne(ctx, bson.M{"_id": reportOID})
	if err != nil {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "report not found")
		return
	}
	if report.Status != models.ReportStatusPending {
		respondError(w, http.StatusConflict, models.CodeAlreadyResolved, "report is already resolved")
		return
	}

	// a profile has no content row to delete; the report resolves against
	// the profile owner directly
	owner := req.TargetID
	imagePublicID := ""
	if req.TargetType != models.TargetTypeProfile {
		item, err := m.ContentDB.FindOne(ctx, req.TargetType, req.TargetID)
		if err != nil {
			if err == databases.ErrUnknownTargetType {
				respondError(w, http.StatusBadRequest, models.CodeValidationError, "targetType must be one of post, comment, grid, profile, chat_message")
				return
			}
			respondError(w, http.StatusNotFound, models.CodeNotFound, "content not found")
			return
		}
		owner = item.UserID
		imagePublicID = item.ImagePublicID

		if err := m.ContentDB.DeleteOne(ctx, req.TargetType, req.TargetID); err != nil {
			// report stays pending, nothing else has happened yet
			if err == mongo.ErrNoDocuments {
				respondError(w, http.StatusNotFound, models.CodeNotFound, "content not found")
				return
			}
			respondError(w, http.StatusInternalServerError, models.CodeDatabaseError, fmt.Sprintf("failed to delete content: %v", err))
			return
		}
	}

	err = m.ReportDB.UpdateOne(ctx,
		bson.M{"_id": reportOID, "status": models.ReportStatusPending},
		bson.M{"$set": bson.M{"status": models.ReportStatusResolvedRemoved}},
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabaseError, fmt.Sprintf("failed to resolve report: %v", err))
		return
	}

	rep, err := m.DB.RecordViolation(ctx, owner, removeContentPenalty)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabaseError, fmt.Sprintf("failed to record violation: %v", err))
		return
	}

	if m.Media != nil && imagePublicID != "" {
		go m.Media.DestroyImage(context.Background(), imagePublicID)
	}

	zap.S().Infow("moderation action applied",
		"action", models.ActionRemoveContent,
		"actor", api.UserIDFromContext(r.Context()),
		"reportId", req.ReportID,
		"targetType", req.TargetType,
		"targetId", req.TargetID,
		"owner", owner,
	)

	m.respondProfile(w, m.snapshot(ctx, owner, rep))
}

// applyIgnoreReport dismisses a pending report without touching the
// content or the owner's reputation
func (m Moderation) applyIgnoreReport(w http.ResponseWriter, r *http.Request, req models.ModerationActionRequest) {
	if req.ReportID == "" {
		respondError(w, http.StatusBadRequest, models.CodeValidationError, "reportId is required")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reportOID, err := primitive.ObjectIDFromHex(req.ReportID)
	if err != nil {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "report not found")
		return
	}
	report, err := m.ReportDB.FindOne(ctx, bson.M{"_id": reportOID})
	if err != nil {
		respondError(w, http.StatusNotFound, models.CodeNotFound, "report not found")
		return
	}
	if report.Status != models.ReportStatusPending {
		respondError(w, http.StatusConflict, models.CodeAlreadyResolved, "report is already resolved")
		return
	}

	err = m.ReportDB.UpdateOne(ctx,
		bson.M{"_id": reportOID, "status": models.ReportStatusPending},
		bson.M{"$set": bson.M{"status": models.ReportStatusResolvedIgnored}},
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.CodeDatabaseError, fmt.Sprintf("failed to resolve report: %v", err))
		return
	}

	zap.S().Infow("moderation action applied",
		"action", models.ActionIgnoreReport,
		"actor", api.UserIDFromContext(r.Context()),
		"reportId", req.ReportID,
	)

	m.respondProfile(w, nil)
}

func (m Moderation) respondProfile(w http.ResponseWriter, profile *models.ProfileSnapshot) {
	b, err := json.Marshal(models.ModerationActionResponse{
		Success: true,
		Profile: profile,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// snapshot joins the reputation row with the username; a missing user row
// degrades to an empty username rather than failing the action
func (m Moderation) snapshot(ctx context.Context, userID string, rep *models.UserReputation) *models.ProfileSnapshot {
	username := ""
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		if user, err := m.UserDB.FindOne(ctx, bson.M{"_id": oid}); err == nil {
			username = user.Username
		}
	}
	return &models.ProfileSnapshot{
		ID:          userID,
		Username:    username,
		Points:      rep.Points,
		Strikes:     rep.Strikes,
		BannedUntil: rep.BannedUntil,
	}
}

// PointsOverviewHandler lists reputation rows for the admin dashboard,
// annotated with how often each user was reported recently. The default
// view hides clean accounts; showAll=true lists everyone.
func (m Moderation) PointsOverviewHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if r.URL.Query().Get("showAll") != "true" {
		filter["$or"] = []bson.M{
			{"points": bson.M{"$lt": 0}},
			{"strikes": bson.M{"$gt": 0}},
			{"bannedUntil": bson.M{"$ne": nil}},
		}
	}
	if v := r.URL.Query().Get("minStrikes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, models.CodeValidationError, "minStrikes must be an integer")
			return
		}
		filter["strikes"] = bson.M{"$gte": n}
	}
	if v := r.URL.Query().Get("maxPoints"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, models.CodeValidationError, "maxPoints must be an integer")
			return
		}
		filter["points"] = bson.M{"$lte": n}
	}

	limit := overviewPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reps, err := m.DB.FindPaged(ctx, filter, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get reputations", http.StatusInternalServerError, w, err)
		return
	}

	userIDs := make([]string, 0, len(reps))
	for _, rep := range reps {
		userIDs = append(userIDs, rep.UserID)
	}

	usernames := m.usernamesByID(ctx, userIDs)
	counts, err := m.recentReportCounts(ctx, userIDs)
	if err != nil {
		config.ErrorStatus("failed to count recent reports", http.StatusInternalServerError, w, err)
		return
	}

	data := make([]models.ProfileSnapshot, 0, len(reps))
	for _, rep := range reps {
		data = append(data, models.ProfileSnapshot{
			ID:            rep.UserID,
			Username:      usernames[rep.UserID],
			Points:        rep.Points,
			Strikes:       rep.Strikes,
			BannedUntil:   rep.BannedUntil,
			RecentReports: counts[rep.UserID],
		})
	}

	b, err := json.Marshal(map[string]interface{}{"data": data})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (m Moderation) usernamesByID(ctx context.Context, userIDs []string) map[string]string {
	oids := make([]primitive.ObjectID, 0, len(userIDs))
	for _, id := range userIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	usernames := make(map[string]string, len(userIDs))
	if len(oids) == 0 {
		return usernames
	}

	users, err := m.UserDB.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		zap.S().Warnw("failed to resolve usernames", "error", err)
		return usernames
	}
	for _, u := range users {
		usernames[u.ID.Hex()] = u.Username
	}
	return usernames
}

// recentReportCounts attributes every report from the window to the owner
// of its target. Content ownership is resolved with one bulk query per
// target type regardless of how many users are listed.
func (m Moderation) recentReportCounts(ctx context.Context, userIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(userIDs))
	if len(userIDs) == 0 {
		return counts, nil
	}

	conditions := []bson.M{
		{"targetType": models.TargetTypeProfile, "targetId": bson.M{"$in": userIDs}},
	}
	contentOwner := make(map[string]string)
	for _, targetType := range []string{
		models.TargetTypePost,
		models.TargetTypeComment,
		models.TargetTypeGrid,
		models.TargetTypeChatMessage,
	} {
		owned, err := m.ContentDB.OwnedIDsByUser(ctx, targetType, userIDs)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0)
		for owner, contentIDs := range owned {
			for _, id := range contentIDs {
				contentOwner[targetType+":"+id] = owner
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			conditions = append(conditions, bson.M{
				"targetType": targetType,
				"targetId":   bson.M{"$in": ids},
			})
		}
	}

	since := time.Now().AddDate(0, 0, -recentReportWindowDays)
	reports, err := m.ReportDB.Find(ctx, bson.M{
		"createdAt": bson.M{"$gte": primitive.NewDateTimeFromTime(since)},
		"$or":       conditions,
	})
	if err != nil {
		return nil, err
	}

	for _, report := range reports {
		owner := report.TargetID
		if report.TargetType != models.TargetTypeProfile {
			owner = contentOwner[report.TargetType+":"+report.TargetID]
		}
		if owner != "" {
			counts[owner]++
		}
	}
	return counts, nil
}
