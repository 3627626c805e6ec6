package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"constellation/internal/models/db_models"
	"constellation/internal/models/response_models"
	"constellation/internal/repositories"
	"constellation/pkg/utils"
)

const (
	// PendingEnrollmentTTL: pending members older than this are canceled
	// by the hourly sweep.
	PendingEnrollmentTTL = 24 * time.Hour

	defaultPollInterval = 5 * time.Second
	defaultSettleGrace  = 2 * time.Second
)

type MemberService interface {
	GetPaymentStatus(ctx context.Context, userID string) (*response_models.MemberStatusResponse, error)

	// WaitForPayment polls the enrollment until it reaches a terminal
	// state. On paid it waits the settle grace before returning so the
	// webhook's dependent writes are visible; on failed/canceled it
	// returns immediately. Cancellation of ctx stops the poll.
	WaitForPayment(ctx context.Context, userID string) (db_models.PaymentStatus, error)

	// CancelStaleEnrollments marks day-old pending enrollments canceled
	// and removes their account and profile rows. Returns the number of
	// enrollments swept.
	CancelStaleEnrollments(ctx context.Context) (int, error)
}

type memberService struct {
	members  repositories.FoundingMemberRepository
	accounts repositories.AccountRepository
	profiles repositories.UserProfileRepository

	pollInterval time.Duration
	settleGrace  time.Duration
}

func NewMemberService(
	members repositories.FoundingMemberRepository,
	accounts repositories.AccountRepository,
	profiles repositories.UserProfileRepository,
) MemberService {
	return NewMemberServiceWithTiming(members, accounts, profiles,
		defaultPollInterval, defaultSettleGrace)
}

// NewMemberServiceWithTiming exists so tests can shrink the polling clock.
func NewMemberServiceWithTiming(
	members repositories.FoundingMemberRepository,
	accounts repositories.AccountRepository,
	profiles repositories.UserProfileRepository,
	pollInterval, settleGrace time.Duration,
) MemberService {
	return &memberService{
		members:      members,
		accounts:     accounts,
		profiles:     profiles,
		pollInterval: pollInterval,
		settleGrace:  settleGrace,
	}
}

func (m *memberService) GetPaymentStatus(ctx context.Context, userID string) (*response_models.MemberStatusResponse, error) {
	member, err := m.members.FindByUserId(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if member == nil {
		return nil, utils.ErrMemberNotFound
	}

	return &response_models.MemberStatusResponse{
		UserID:             member.UserID.String(),
		PaymentStatus:      string(member.PaymentStatus),
		MemberNumber:       member.MemberNumber,
		PaymentAmount:      member.PaymentAmount,
		PaymentCompletedAt: member.PaymentCompletedAt,
	}, nil
}

func (m *memberService) WaitForPayment(ctx context.Context, userID string) (db_models.PaymentStatus, error) {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		member, err := m.members.FindByUserId(ctx, userID)
		if err != nil {
			return "", utils.ErrDatabaseError
		}
		if member == nil {
			return "", utils.ErrMemberNotFound
		}

		switch member.PaymentStatus {
		case db_models.PaymentStatusPaid:
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(m.settleGrace):
			}
			return db_models.PaymentStatusPaid, nil
		case db_models.PaymentStatusFailed, db_models.PaymentStatusCanceled:
			return member.PaymentStatus, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *memberService) CancelStaleEnrollments(ctx context.Context) (int, error) {
	stale, err := m.members.CancelStalePending(ctx, PendingEnrollmentTTL)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	for _, member := range stale {
		if member.UserID == uuid.Nil {
			continue
		}
		userID := member.UserID.String()
		if err := m.profiles.DeleteByUserId(ctx, userID); err != nil {
			utils.Logger.Errorf("sweep: delete profile %s: %v", userID, err)
		}
		if err := m.accounts.Delete(ctx, userID); err != nil {
			utils.Logger.Errorf("sweep: delete account %s: %v", userID, err)
		}
		utils.Logger.Infof("sweep: canceled stale enrollment #%d (%s)",
			member.MemberNumber, member.Email)
	}
	return len(stale), nil
}
