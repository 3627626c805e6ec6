package services

import (
	"context"
	"time"

	"constellation/internal/models/request_models"
	"constellation/internal/models/response_models"
	"constellation/internal/repositories"
	mem "constellation/pkg/memcache"
	"constellation/pkg/utils"
)

const resetTokenTTL = 15 * time.Minute

type AccountService interface {
	Login(ctx context.Context, req *request_models.LoginRequest) (*response_models.LoginResponse, error)

	// ForgotPassword always succeeds from the caller's point of view so
	// the endpoint cannot be used to probe for registered emails.
	ForgotPassword(ctx context.Context, req *request_models.ForgotPasswordRequest) error

	ResetPassword(ctx context.Context, req *request_models.ResetPasswordRequest) error
	GetProfile(ctx context.Context, userID string) (*response_models.ProfileResponse, error)
}

type accountService struct {
	accounts    repositories.AccountRepository
	profiles    repositories.UserProfileRepository
	subs        repositories.SubscriptionRepository
	resetTokens mem.ResetTokenStore
	mail        MailService
}

func NewAccountService(
	accounts repositories.AccountRepository,
	profiles repositories.UserProfileRepository,
	subs repositories.SubscriptionRepository,
	resetTokens mem.ResetTokenStore,
	mail MailService,
) AccountService {
	return &accountService{
		accounts:    accounts,
		profiles:    profiles,
		subs:        subs,
		resetTokens: resetTokens,
		mail:        mail,
	}
}

func (a *accountService) Login(ctx context.Context, req *request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := a.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.UserType)
	if err != nil {
		return nil, err
	}

	return &response_models.LoginResponse{
		Token:    token,
		UserID:   account.ID.String(),
		UserType: account.UserType,
	}, nil
}

func (a *accountService) ForgotPassword(ctx context.Context, req *request_models.ForgotPasswordRequest) error {
	account, err := a.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}
	a.resetTokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mail.SendMailToResetPassword(account.Email, token); err != nil {
		utils.Logger.Errorf("reset mail to %s: %v", account.Email, err)
	}
	return nil
}

func (a *accountService) ResetPassword(ctx context.Context, req *request_models.ResetPasswordRequest) error {
	email := a.resetTokens.Consume(req.Token)
	if email == "" {
		return utils.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := a.accounts.UpdatePasswordHash(ctx, email, hash); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *accountService) GetProfile(ctx context.Context, userID string) (*response_models.ProfileResponse, error) {
	account, err := a.accounts.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := &response_models.ProfileResponse{
		UserID:   account.ID.String(),
		FullName: account.FullName,
		UserType: account.UserType,
		Phone:    account.Phone,
	}

	profile, err := a.profiles.FindByUserId(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile != nil {
		resp.CompanyName = profile.CompanyName
		resp.CreciNumber = profile.CreciNumber
		resp.CreciUf = profile.CreciUf
		resp.OnboardingCompleted = profile.OnboardingCompleted
	}

	sub, err := a.subs.FindActiveByUserId(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub != nil {
		resp.Plan = sub.PlanID
		resp.SubscriptionEndsAt = sub.CurrentPeriodEnd
	}
	return resp, nil
}
