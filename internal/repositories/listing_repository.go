package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"constellation/internal/models/db_models"
)

type ListingRepository interface {
	Insert(ctx context.Context, listing *db_models.Listing) error
	FindByIdAndOwner(ctx context.Context, id, ownerID string) (*db_models.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]db_models.Listing, error)
	Update(ctx context.Context, listing *db_models.Listing) error
	DeleteByIdAndOwner(ctx context.Context, id, ownerID string) (bool, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{
		db: db,
	}
}

func (l *listingRepository) Insert(ctx context.Context, listing *db_models.Listing) error {
	return l.db.WithContext(ctx).Create(listing).Error
}

func (l *listingRepository) FindByIdAndOwner(ctx context.Context, id, ownerID string) (*db_models.Listing, error) {
	var listing db_models.Listing
	err := l.db.WithContext(ctx).
		First(&listing, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &listing, nil
}

func (l *listingRepository) ListByOwner(ctx context.Context, ownerID string) ([]db_models.Listing, error) {
	var listings []db_models.Listing
	err := l.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (l *listingRepository) Update(ctx context.Context, listing *db_models.Listing) error {
	return l.db.WithContext(ctx).Save(listing).Error
}

func (l *listingRepository) DeleteByIdAndOwner(ctx context.Context, id, ownerID string) (bool, error) {
	res := l.db.WithContext(ctx).
		Delete(&db_models.Listing{}, "id = ? AND owner_id = ?", id, ownerID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
