package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"constellation/internal/models/db_models"
)

type UserProfileRepository interface {
	Insert(ctx context.Context, profile *db_models.UserProfile) error
	FindByUserId(ctx context.Context, userID string) (*db_models.UserProfile, error)

	// MarkOnboardingCompletedTx joins an outer transaction (webhook
	// paid-flip path).
	MarkOnboardingCompletedTx(tx *gorm.DB, userID string) error
	DeleteByUserId(ctx context.Context, userID string) error
}

type userProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{
		db: db,
	}
}

func (u *userProfileRepository) Insert(ctx context.Context, profile *db_models.UserProfile) error {
	return u.db.WithContext(ctx).Create(profile).Error
}

func (u *userProfileRepository) FindByUserId(ctx context.Context, userID string) (*db_models.UserProfile, error) {
	var profile db_models.UserProfile
	err := u.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

func (u *userProfileRepository) MarkOnboardingCompletedTx(tx *gorm.DB, userID string) error {
	return tx.Model(&db_models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("onboarding_completed", true).Error
}

func (u *userProfileRepository) DeleteByUserId(ctx context.Context, userID string) error {
	return u.db.WithContext(ctx).Delete(&db_models.UserProfile{}, "user_id = ?", userID).Error
}
