package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"constellation/internal/models/db_models"
)

type FoundingMemberRepository interface {
	Insert(ctx context.Context, member *db_models.FoundingMember) error
	FindByUserId(ctx context.Context, userID string) (*db_models.FoundingMember, error)
	FindByEmail(ctx context.Context, email string) (*db_models.FoundingMember, error)
	FindByPaymentIntentId(ctx context.Context, paymentIntentID string) (*db_models.FoundingMember, error)
	FindPaidByCreci(ctx context.Context, creciNumber, creciUf string) (*db_models.FoundingMember, error)
	CountPaid(ctx context.Context) (int64, error)
	NextMemberNumber(ctx context.Context) (int, error)
	DeleteByUserId(ctx context.Context, userID string) error

	// AttachIntent re-keys a pending enrollment to a freshly created
	// payment intent (retry of an abandoned checkout).
	AttachIntent(ctx context.Context, memberID, paymentIntentID string, amount int64) error

	// MarkPaid flips a pending member to paid together with the dependent
	// rows, inside one DB transaction. fn runs with the transaction handle
	// so callers can attach subscription/profile writes atomically.
	MarkPaid(ctx context.Context, memberID string, paymentIntentID string, fn func(tx *gorm.DB) error) error
	MarkFailed(ctx context.Context, memberID string) error
	CancelStalePending(ctx context.Context, olderThan time.Duration) ([]db_models.FoundingMember, error)
}

type foundingMemberRepository struct {
	db *gorm.DB
}

func NewFoundingMemberRepository(db *gorm.DB) FoundingMemberRepository {
	return &foundingMemberRepository{
		db: db,
	}
}

func (f *foundingMemberRepository) Insert(ctx context.Context, member *db_models.FoundingMember) error {
	return f.db.WithContext(ctx).Create(member).Error
}

func (f *foundingMemberRepository) findOne(ctx context.Context, query string, args ...interface{}) (*db_models.FoundingMember, error) {
	var member db_models.FoundingMember
	err := f.db.WithContext(ctx).First(&member, append([]interface{}{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

func (f *foundingMemberRepository) FindByUserId(ctx context.Context, userID string) (*db_models.FoundingMember, error) {
	return f.findOne(ctx, "user_id = ?", userID)
}

func (f *foundingMemberRepository) FindByEmail(ctx context.Context, email string) (*db_models.FoundingMember, error) {
	return f.findOne(ctx, "email = ?", email)
}

func (f *foundingMemberRepository) FindByPaymentIntentId(ctx context.Context, paymentIntentID string) (*db_models.FoundingMember, error) {
	return f.findOne(ctx, "stripe_payment_intent_id = ?", paymentIntentID)
}

func (f *foundingMemberRepository) FindPaidByCreci(ctx context.Context, creciNumber, creciUf string) (*db_models.FoundingMember, error) {
	return f.findOne(ctx, "creci_number = ? AND creci_uf = ? AND payment_status = ?",
		creciNumber, creciUf, db_models.PaymentStatusPaid)
}

func (f *foundingMemberRepository) CountPaid(ctx context.Context) (int64, error) {
	var count int64
	err := f.db.WithContext(ctx).
		Model(&db_models.FoundingMember{}).
		Where("payment_status = ?", db_models.PaymentStatusPaid).
		Count(&count).Error
	return count, err
}

func (f *foundingMemberRepository) NextMemberNumber(ctx context.Context) (int, error) {
	var max int64
	err := f.db.WithContext(ctx).
		Model(&db_models.FoundingMember{}).
		Select("COALESCE(MAX(member_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return int(max) + 1, nil
}

func (f *foundingMemberRepository) DeleteByUserId(ctx context.Context, userID string) error {
	return f.db.WithContext(ctx).Delete(&db_models.FoundingMember{}, "user_id = ?", userID).Error
}

func (f *foundingMemberRepository) AttachIntent(ctx context.Context, memberID, paymentIntentID string, amount int64) error {
	return f.db.WithContext(ctx).
		Model(&db_models.FoundingMember{}).
		Where("id = ? AND payment_status = ?", memberID, db_models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"stripe_payment_intent_id": paymentIntentID,
			"payment_amount":           amount,
		}).Error
}

func (f *foundingMemberRepository) MarkPaid(ctx context.Context, memberID string, paymentIntentID string, fn func(tx *gorm.DB) error) error {
	now := time.Now().Unix()
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.FoundingMember{}).
			Where("id = ?", memberID).
			Updates(map[string]interface{}{
				"payment_status":           db_models.PaymentStatusPaid,
				"payment_completed_at":     now,
				"stripe_payment_intent_id": paymentIntentID,
			}).Error; err != nil {
			return err
		}
		if fn != nil {
			return fn(tx)
		}
		return nil
	})
}

func (f *foundingMemberRepository) MarkFailed(ctx context.Context, memberID string) error {
	return f.db.WithContext(ctx).
		Model(&db_models.FoundingMember{}).
		Where("id = ?", memberID).
		Update("payment_status", db_models.PaymentStatusFailed).Error
}

func (f *foundingMemberRepository) CancelStalePending(ctx context.Context, olderThan time.Duration) ([]db_models.FoundingMember, error) {
	cutoff := time.Now().Add(-olderThan).Unix()

	var stale []db_models.FoundingMember
	if err := f.db.WithContext(ctx).
		Where("payment_status = ? AND created_at < ?", db_models.PaymentStatusPending, cutoff).
		Find(&stale).Error; err != nil {
		return nil, err
	}
	if len(stale) == 0 {
		return nil, nil
	}

	ids := make([]interface{}, 0, len(stale))
	for _, m := range stale {
		ids = append(ids, m.ID)
	}
	if err := f.db.WithContext(ctx).
		Model(&db_models.FoundingMember{}).
		Where("id IN ?", ids).
		Update("payment_status", db_models.PaymentStatusCanceled).Error; err != nil {
		return nil, err
	}

	return stale, nil
}
