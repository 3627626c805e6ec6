package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
	"constellation/internal/models/response_models"
	"constellation/internal/repositories"
	"constellation/pkg/utils"
)

const (
	// Per list page; mirrors the endpoint's take clamp.
	socialListDefaultTake = 50
	socialListMaxTake     = 100

	// Posts moved per publisher sweep.
	publishBatchSize = 20
)

// SocialPostService manages draft and scheduled posts for the owner's
// social networks. Scheduled posts are delivered by PublishDuePosts,
// which the publisher sweep calls every minute.
type SocialPostService interface {
	Create(ctx context.Context, ownerID string, req *request_models.CreateSocialPostRequest) (*response_models.SocialPostResponse, error)
	List(ctx context.Context, ownerID string, q *request_models.ListSocialPostsQuery) ([]response_models.SocialPostResponse, error)
	Update(ctx context.Context, ownerID, id string, req *request_models.UpdateSocialPostRequest) (*response_models.SocialPostResponse, error)
	Delete(ctx context.Context, ownerID, id string) error

	// Schedule confirms a post is queued for its scheduled time. The post
	// must already carry a future scheduled_at.
	Schedule(ctx context.Context, ownerID, id string) (*response_models.SocialPostResponse, error)

	Stats(ctx context.Context, ownerID string) (*response_models.SocialPublishStatsResponse, error)

	// PublishDuePosts delivers every scheduled post whose time has passed
	// and returns how many were processed.
	PublishDuePosts(ctx context.Context) (int, error)
}

type socialPostService struct {
	posts     repositories.SocialPostRepository
	publisher SocialPublisher
}

func NewSocialPostService(posts repositories.SocialPostRepository, publisher SocialPublisher) SocialPostService {
	return &socialPostService{
		posts:     posts,
		publisher: publisher,
	}
}

func (s *socialPostService) Create(ctx context.Context, ownerID string, req *request_models.CreateSocialPostRequest) (*response_models.SocialPostResponse, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, utils.ErrPostContentEmpty
	}
	if err := validatePlatforms(req.Platforms); err != nil {
		return nil, err
	}

	scheduledAt, err := parseScheduleTime(req.ScheduledAt)
	if err != nil {
		return nil, err
	}

	status := db_models.SocialPostStatusDraft
	if scheduledAt != nil {
		status = db_models.SocialPostStatusScheduled
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	post := &db_models.SocialPost{
		OwnerID:          owner,
		Content:          content,
		Platforms:        mediaJSON(req.Platforms),
		MediaUrls:        mediaJSON(req.MediaUrls),
		Campaign:         req.Campaign,
		Notes:            req.Notes,
		Status:           status,
		ScheduledAt:      scheduledAt,
		Timezone:         timezone,
		ApprovalRequired: req.ApprovalRequired,
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toSocialPostResponse(post), nil
}

func (s *socialPostService) List(ctx context.Context, ownerID string, q *request_models.ListSocialPostsQuery) ([]response_models.SocialPostResponse, error) {
	filter := repositories.SocialPostFilter{
		Status:   q.Status,
		Platform: q.Platform,
		Campaign: q.Campaign,
		OrderBy:  q.OrderBy,
		Skip:     q.Skip,
		Take:     q.Take,
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Take <= 0 {
		filter.Take = socialListDefaultTake
	}
	if filter.Take > socialListMaxTake {
		filter.Take = socialListMaxTake
	}

	posts, err := s.posts.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SocialPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, *toSocialPostResponse(&posts[i]))
	}
	return out, nil
}

func (s *socialPostService) Update(ctx context.Context, ownerID, id string, req *request_models.UpdateSocialPostRequest) (*response_models.SocialPostResponse, error) {
	post, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if post.Status == db_models.SocialPostStatusPublished {
		return nil, utils.ErrPostPublished
	}

	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, utils.ErrPostContentEmpty
		}
		post.Content = content
	}
	if req.Platforms != nil {
		if err := validatePlatforms(req.Platforms); err != nil {
			return nil, err
		}
		post.Platforms = mediaJSON(req.Platforms)
	}
	if req.MediaUrls != nil {
		post.MediaUrls = mediaJSON(req.MediaUrls)
	}
	if req.Campaign != nil {
		post.Campaign = req.Campaign
	}
	if req.Notes != nil {
		post.Notes = req.Notes
	}
	if req.Timezone != nil {
		post.Timezone = *req.Timezone
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := parseScheduleTime(req.ScheduledAt)
		if err != nil {
			return nil, err
		}
		post.ScheduledAt = scheduledAt
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toSocialPostResponse(post), nil
}

func (s *socialPostService) Delete(ctx context.Context, ownerID, id string) error {
	post, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if post.Status == db_models.SocialPostStatusPublished {
		return utils.ErrPostPublished
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *socialPostService) Schedule(ctx context.Context, ownerID, id string) (*response_models.SocialPostResponse, error) {
	post, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if post.Status != db_models.SocialPostStatusScheduled {
		return nil, utils.ErrPostNotScheduled
	}
	if post.ScheduledAt == nil || *post.ScheduledAt <= utils.NowUnixSeconds() {
		return nil, utils.ErrScheduleInPast
	}
	return toSocialPostResponse(post), nil
}

func (s *socialPostService) Stats(ctx context.Context, ownerID string) (*response_models.SocialPublishStatsResponse, error) {
	counts, err := s.posts.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := &response_models.SocialPublishStatsResponse{
		Draft:     counts[db_models.SocialPostStatusDraft],
		Scheduled: counts[db_models.SocialPostStatusScheduled],
		Published: counts[db_models.SocialPostStatusPublished],
		Failed:    counts[db_models.SocialPostStatusFailed],
	}
	resp.Total = resp.Draft + resp.Scheduled + resp.Published + resp.Failed
	return resp, nil
}

func (s *socialPostService) PublishDuePosts(ctx context.Context) (int, error) {
	now := utils.NowUnixSeconds()
	due, err := s.posts.FindDueScheduled(ctx, now, publishBatchSize)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	processed := 0
	for i := range due {
		post := &due[i]
		if err := s.publishPost(ctx, post, now); err != nil {
			utils.Logger.Errorf("publish post %s: %v", post.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

// publishPost delivers one post to each of its platforms, records the
// per-platform results and flips the status. A single failed platform
// marks the whole post failed so the owner sees it needs attention.
func (s *socialPostService) publishPost(ctx context.Context, post *db_models.SocialPost, now int64) error {
	var platforms []string
	if len(post.Platforms) > 0 {
		if err := json.Unmarshal(post.Platforms, &platforms); err != nil {
			return err
		}
	}

	results := make([]response_models.PlatformPublishResult, 0, len(platforms))
	failures := 0
	for _, platform := range platforms {
		result := response_models.PlatformPublishResult{
			Platform:    platform,
			Success:     true,
			PublishedAt: now,
		}
		if err := s.publisher.Publish(ctx, platform, post); err != nil {
			result.Success = false
			result.Error = err.Error()
			failures++
		}
		results = append(results, result)
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return err
	}
	post.PublishResults = datatypes.JSON(raw)

	if failures == 0 {
		post.Status = db_models.SocialPostStatusPublished
		post.PublishedAt = &now
	} else {
		post.Status = db_models.SocialPostStatusFailed
	}
	return s.posts.Update(ctx, post)
}

func (s *socialPostService) findOwned(ctx context.Context, ownerID, id string) (*db_models.SocialPost, error) {
	post, err := s.posts.FindById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if post == nil {
		return nil, utils.ErrPostNotFound
	}
	if post.OwnerID.String() != ownerID {
		return nil, utils.ErrPostForbidden
	}
	return post, nil
}

func validatePlatforms(platforms []string) error {
	if len(platforms) == 0 {
		return utils.ErrNoPlatforms
	}
	for _, p := range platforms {
		if !db_models.ValidSocialPlatform(p) {
			return utils.ErrInvalidPlatform
		}
	}
	return nil
}

// parseScheduleTime turns an optional RFC 3339 string into unix seconds.
// A set time must be in the future.
func parseScheduleTime(raw *string) (*int64, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, utils.ErrBadScheduleTime
	}
	if !ts.After(time.Now()) {
		return nil, utils.ErrScheduleInPast
	}
	unix := ts.Unix()
	return &unix, nil
}

func toSocialPostResponse(post *db_models.SocialPost) *response_models.SocialPostResponse {
	platforms := []string{}
	if len(post.Platforms) > 0 {
		_ = json.Unmarshal(post.Platforms, &platforms)
	}
	mediaUrls := []string{}
	if len(post.MediaUrls) > 0 {
		_ = json.Unmarshal(post.MediaUrls, &mediaUrls)
	}
	var results []response_models.PlatformPublishResult
	if len(post.PublishResults) > 0 {
		_ = json.Unmarshal(post.PublishResults, &results)
	}

	return &response_models.SocialPostResponse{
		ID:               post.ID.String(),
		OwnerID:          post.OwnerID.String(),
		Content:          post.Content,
		Platforms:        platforms,
		MediaUrls:        mediaUrls,
		Campaign:         post.Campaign,
		Notes:            post.Notes,
		Status:           string(post.Status),
		ScheduledAt:      post.ScheduledAt,
		PublishedAt:      post.PublishedAt,
		Timezone:         post.Timezone,
		ApprovalRequired: post.ApprovalRequired,
		PublishResults:   results,
		CreatedAt:        post.CreatedAt,
	}
}
