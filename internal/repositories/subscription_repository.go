package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"constellation/internal/models/db_models"
)

type SubscriptionRepository interface {
	Insert(ctx context.Context, sub *db_models.Subscription) error
	InsertTx(tx *gorm.DB, sub *db_models.Subscription) error
	FindActiveByUserId(ctx context.Context, userID string) (*db_models.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

func (s *subscriptionRepository) Insert(ctx context.Context, sub *db_models.Subscription) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

// InsertTx joins an outer transaction (webhook paid-flip path).
func (s *subscriptionRepository) InsertTx(tx *gorm.DB, sub *db_models.Subscription) error {
	return tx.Create(sub).Error
}

func (s *subscriptionRepository) FindActiveByUserId(ctx context.Context, userID string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, db_models.SubStatusActive).
		Order("current_period_end DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}
