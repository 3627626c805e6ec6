package services

import (
	"context"

	"constellation/internal/models/db_models"
	"constellation/pkg/utils"
)

// SocialPublisher delivers a post to one network. Per-platform adapters
// implement this behind the owner's OAuth connection; the default
// implementation only records the delivery in the log.
type SocialPublisher interface {
	Publish(ctx context.Context, platform string, post *db_models.SocialPost) error
}

type logSocialPublisher struct{}

func NewLogSocialPublisher() SocialPublisher {
	return &logSocialPublisher{}
}

func (logSocialPublisher) Publish(ctx context.Context, platform string, post *db_models.SocialPost) error {
	utils.Logger.Infof("publish post %s to %s", post.ID, platform)
	return nil
}
