package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"constellation/internal/models/db_models"
)

// SocialPostFilter narrows the list query. Zero values mean no filter.
type SocialPostFilter struct {
	Status   string
	Platform string
	Campaign string
	Skip     int
	Take     int
	OrderBy  string // newest | oldest | scheduled
}

type SocialPostRepository interface {
	Insert(ctx context.Context, post *db_models.SocialPost) error
	FindById(ctx context.Context, id string) (*db_models.SocialPost, error)
	ListByOwner(ctx context.Context, ownerID string, filter SocialPostFilter) ([]db_models.SocialPost, error)
	Update(ctx context.Context, post *db_models.SocialPost) error
	Delete(ctx context.Context, id string) error

	// FindDueScheduled returns scheduled posts whose time has passed,
	// earliest first, so the publisher processes them in order.
	FindDueScheduled(ctx context.Context, now int64, limit int) ([]db_models.SocialPost, error)

	CountByStatus(ctx context.Context, ownerID string) (map[db_models.SocialPostStatus]int64, error)
}

type socialPostRepository struct {
	db *gorm.DB
}

func NewSocialPostRepository(db *gorm.DB) SocialPostRepository {
	return &socialPostRepository{
		db: db,
	}
}

func (s *socialPostRepository) Insert(ctx context.Context, post *db_models.SocialPost) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *socialPostRepository) FindById(ctx context.Context, id string) (*db_models.SocialPost, error) {
	var post db_models.SocialPost
	err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &post, nil
}

func (s *socialPostRepository) ListByOwner(ctx context.Context, ownerID string, filter SocialPostFilter) ([]db_models.SocialPost, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Campaign != "" {
		q = q.Where("campaign = ?", filter.Campaign)
	}
	if filter.Platform != "" {
		needle, err := json.Marshal([]string{filter.Platform})
		if err != nil {
			return nil, err
		}
		q = q.Where("platforms @> ?::jsonb", string(needle))
	}

	switch filter.OrderBy {
	case "oldest":
		q = q.Order("created_at ASC")
	case "scheduled":
		q = q.Order("scheduled_at ASC")
	default:
		q = q.Order("created_at DESC")
	}

	var posts []db_models.SocialPost
	err := q.Offset(filter.Skip).Limit(filter.Take).Find(&posts).Error
	return posts, err
}

func (s *socialPostRepository) Update(ctx context.Context, post *db_models.SocialPost) error {
	return s.db.WithContext(ctx).Save(post).Error
}

func (s *socialPostRepository) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&db_models.SocialPost{}, "id = ?", id).Error
}

func (s *socialPostRepository) FindDueScheduled(ctx context.Context, now int64, limit int) ([]db_models.SocialPost, error) {
	var posts []db_models.SocialPost
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?",
			db_models.SocialPostStatusScheduled, now).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (s *socialPostRepository) CountByStatus(ctx context.Context, ownerID string) (map[db_models.SocialPostStatus]int64, error) {
	var rows []struct {
		Status db_models.SocialPostStatus
		N      int64
	}
	err := s.db.WithContext(ctx).
		Model(&db_models.SocialPost{}).
		Select("status, COUNT(*) AS n").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[db_models.SocialPostStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
