package handlers

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/whosonpole/whos-on-pole-api/config"
)

// Media destroys uploaded image assets for removed posts. Best effort:
// the content row is the source of truth and is already gone by the time
// this runs.
type Media struct {
	cld *cloudinary.Cloudinary
}

// NewMedia builds the cloudinary client, or returns nil when no
// CLOUDINARY_URL is configured so asset cleanup is simply skipped
func NewMedia(conf config.Config) *Media {
	if conf.CloudinaryURL == "" {
		zap.S().Warn("cloudinary url not configured, removed-post assets will not be cleaned up")
		return nil
	}
	cld, err := cloudinary.NewFromURL(conf.CloudinaryURL)
	if err != nil {
		zap.S().Errorw("failed to create cloudinary client", "error", err)
		return nil
	}
	return &Media{cld: cld}
}

// DestroyImage removes the asset with the given public id
func (m *Media) DestroyImage(ctx context.Context, publicID string) {
	_, err := m.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		zap.S().Warnw("failed to destroy cloudinary asset", "publicId", publicID, "error", err)
		return
	}
	zap.S().Debugw("destroyed cloudinary asset", "publicId", publicID)
}
