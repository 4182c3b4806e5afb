package api

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/config"
	"github.com/whosonpole/whos-on-pole-api/databases"
)

// BanGate blocks requests from suspended accounts. It sits between the
// session middleware and every mutating route, so a ban lands even on
// sessions opened before the ban was issued.
type BanGate struct {
	DB databases.ReputationDatabase
}

// Check looks up the requester's reputation row and refuses the request
// when the account is currently banned. Expired bans pass through without
// any writes, the stale bannedUntil value is simply ignored.
func (b BanGate) Check(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := WithQueryTimeout(r.Context())
		defer cancel()

		rep, err := b.DB.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				// no reputation row yet, nothing to enforce
				next.ServeHTTP(w, r)
				return
			}
			config.ErrorStatus("failed to fetch reputation", http.StatusInternalServerError, w, err)
			return
		}

		if rep.BannedAt(time.Now()) {
			RevokeRequestToken(r)
			zap.S().Infow("request from suspended account denied",
				"userId", userID,
				"bannedUntil", rep.BannedUntil)
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "account suspended", "redirect": "/suspended"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
