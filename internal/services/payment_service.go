package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
	"constellation/internal/models/response_models"
	"constellation/internal/repositories"
	"constellation/pkg/utils"
)

const (
	// TestPaymentAmount is the fixed R$ 3,00 charge of the test endpoint.
	TestPaymentAmount int64 = 300
	// FoundingPaymentAmount is the default R$ 2.970,00 founding price.
	FoundingPaymentAmount int64 = 297000
	// FoundingProgramCap closes enrollment after 100 paid members.
	FoundingProgramCap int64 = 100

	FoundingProgram = "founding_100"
)

type PaymentService interface {
	// CreateTestPayment mirrors /api/stripe/create-test-payment: same
	// validation as the production endpoint but a fixed R$ 3,00 intent
	// and no enrollment row.
	CreateTestPayment(ctx context.Context, req *request_models.CreatePaymentIntentRequest) (*response_models.CreatePaymentIntentResponse, error)

	// CreatePaymentIntent validates the enrollment, creates the intent and
	// inserts (or re-keys) the pending founding_members row.
	CreatePaymentIntent(ctx context.Context, req *request_models.CreatePaymentIntentRequest) (*response_models.CreatePaymentIntentResponse, error)

	// Webhook reactions. Both are idempotent on replayed events.
	HandlePaymentSucceeded(ctx context.Context, paymentIntentID string) error
	HandlePaymentFailed(ctx context.Context, paymentIntentID, reason string) error
}

type paymentService struct {
	members  repositories.FoundingMemberRepository
	profiles repositories.UserProfileRepository
	subs     repositories.SubscriptionRepository
	gateway  PaymentGateway
	mail     MailService
}

func NewPaymentService(
	members repositories.FoundingMemberRepository,
	profiles repositories.UserProfileRepository,
	subs repositories.SubscriptionRepository,
	gateway PaymentGateway,
	mail MailService,
) PaymentService {
	return &paymentService{
		members:  members,
		profiles: profiles,
		subs:     subs,
		gateway:  gateway,
		mail:     mail,
	}
}

func (p *paymentService) CreateTestPayment(ctx context.Context, req *request_models.CreatePaymentIntentRequest) (*response_models.CreatePaymentIntentResponse, error) {
	if err := p.validateEnrollment(ctx, req); err != nil {
		return nil, err
	}

	intent, err := p.gateway.CreateIntent(ctx, TestPaymentAmount, req.Email, intentMetadata(req))
	if err != nil {
		utils.Logger.Errorf("create test payment intent: %v", err)
		return nil, utils.ErrPaymentGateway
	}

	return &response_models.CreatePaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

func (p *paymentService) CreatePaymentIntent(ctx context.Context, req *request_models.CreatePaymentIntentRequest) (*response_models.CreatePaymentIntentResponse, error) {
	if err := p.validateEnrollment(ctx, req); err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount <= 0 {
		amount = FoundingPaymentAmount
	}

	intent, err := p.gateway.CreateIntent(ctx, amount, req.Email, intentMetadata(req))
	if err != nil {
		utils.Logger.Errorf("create payment intent for %s: %v", req.Email, err)
		return nil, utils.ErrPaymentGateway
	}

	if err := p.attachEnrollment(ctx, req, intent.ID, amount); err != nil {
		// The intent is unusable without its enrollment row.
		if cancelErr := p.gateway.CancelIntent(ctx, intent.ID); cancelErr != nil {
			utils.Logger.Errorf("cancel orphaned intent %s: %v", intent.ID, cancelErr)
		}
		return nil, err
	}

	return &response_models.CreatePaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// validateEnrollment reproduces the checkout endpoint rules: required
// identity fields, company data for company accounts, no second paid CRECI,
// program capacity.
func (p *paymentService) validateEnrollment(ctx context.Context, req *request_models.CreatePaymentIntentRequest) error {
	if req.FullName == "" || req.CPF == "" || req.Phone == "" || req.Email == "" {
		return utils.ErrMissingFields
	}
	if req.AccountType == db_models.AccountTypeCompany && (req.CompanyName == "" || req.CNPJ == "") {
		return utils.ErrCompanyFieldsMissing
	}

	if req.CreciNumber != "" && req.CreciUf != "" {
		dup, err := p.members.FindPaidByCreci(ctx, req.CreciNumber, req.CreciUf)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if dup != nil {
			return utils.ErrCreciAlreadyExists
		}
	}

	paid, err := p.members.CountPaid(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if paid >= FoundingProgramCap {
		return utils.ErrProgramSoldOut
	}
	return nil
}

// attachEnrollment inserts the pending founding_members row for the intent,
// or re-keys an existing pending enrollment on checkout retry.
func (p *paymentService) attachEnrollment(ctx context.Context, req *request_models.CreatePaymentIntentRequest, intentID string, amount int64) error {
	existing, err := p.members.FindByEmail(ctx, req.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		if existing.PaymentStatus == db_models.PaymentStatusPaid {
			return utils.ErrEmailAlreadyExists
		}
		if err := p.members.AttachIntent(ctx, existing.ID.String(), intentID, amount); err != nil {
			return utils.ErrDatabaseError
		}
		return nil
	}

	number, err := p.members.NextMemberNumber(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}

	member := &db_models.FoundingMember{
		Email:                 req.Email,
		Phone:                 optional(req.Phone),
		FullName:              req.FullName,
		CPF:                   optional(req.CPF),
		AccountType:           accountTypeOrDefault(req.AccountType),
		CompanyName:           optional(req.CompanyName),
		CNPJ:                  optional(req.CNPJ),
		CreciNumber:           optional(req.CreciNumber),
		CreciUf:               optional(req.CreciUf),
		PaymentStatus:         db_models.PaymentStatusPending,
		PaymentAmount:         amount,
		MemberNumber:          number,
		SelectedPlan:          FoundingProgram,
		StripePaymentIntentID: &intentID,
	}
	if userID, parseErr := uuid.Parse(req.UserID); parseErr == nil {
		member.UserID = userID
	}

	if err := p.members.Insert(ctx, member); err != nil {
		utils.Logger.Errorf("insert founding member %s: %v", req.Email, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (p *paymentService) HandlePaymentSucceeded(ctx context.Context, paymentIntentID string) error {
	member, err := p.members.FindByPaymentIntentId(ctx, paymentIntentID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if member == nil {
		// Not ours; ack so the processor stops retrying.
		utils.Logger.Warnf("webhook: no enrollment for intent %s", paymentIntentID)
		return nil
	}
	if member.PaymentStatus == db_models.PaymentStatusPaid {
		return nil
	}

	// The 24-month prepaid window is anchored in Brazil time.
	now := time.Now().In(utils.BrazilLocation())
	err = p.members.MarkPaid(ctx, member.ID.String(), paymentIntentID, func(tx *gorm.DB) error {
		if member.UserID == uuid.Nil {
			return nil
		}
		sub := &db_models.Subscription{
			UserID:             member.UserID,
			PlanID:             db_models.PlanTeam,
			Status:             db_models.SubStatusActive,
			CurrentPeriodStart: now.Unix(),
			CurrentPeriodEnd:   now.AddDate(2, 0, 0).Unix(),
		}
		if err := p.subs.InsertTx(tx, sub); err != nil {
			return err
		}
		return p.profiles.MarkOnboardingCompletedTx(tx, member.UserID.String())
	})
	if err != nil {
		utils.Logger.Errorf("mark member %s paid: %v", member.ID, err)
		return utils.ErrDatabaseError
	}

	utils.Logger.Infof("founding member #%d (%s) paid via %s",
		member.MemberNumber, member.Email, paymentIntentID)

	if p.mail != nil {
		if mailErr := p.mail.SendEnrollmentConfirmation(member.Email, member.FullName, member.MemberNumber); mailErr != nil {
			utils.Logger.Warnf("enrollment confirmation mail to %s: %v", member.Email, mailErr)
		}
	}
	return nil
}

func (p *paymentService) HandlePaymentFailed(ctx context.Context, paymentIntentID, reason string) error {
	member, err := p.members.FindByPaymentIntentId(ctx, paymentIntentID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if member == nil {
		return nil
	}
	if member.PaymentStatus != db_models.PaymentStatusPending {
		return nil
	}

	if err := p.members.MarkFailed(ctx, member.ID.String()); err != nil {
		return utils.ErrDatabaseError
	}
	utils.Logger.Warnf("payment failed for member #%d (%s): %s",
		member.MemberNumber, member.Email, reason)
	return nil
}

func intentMetadata(req *request_models.CreatePaymentIntentRequest) map[string]string {
	meta := map[string]string{
		"program":   FoundingProgram,
		"full_name": req.FullName,
		"email":     req.Email,
		"cpf":       req.CPF,
		"phone":     req.Phone,
	}
	if req.UserID != "" {
		meta["user_id"] = req.UserID
	}
	if req.AccountType != "" {
		meta["account_type"] = req.AccountType
	}
	if req.CompanyName != "" {
		meta["company_name"] = req.CompanyName
		meta["cnpj"] = req.CNPJ
	}
	if req.NumberOfPartners != "" {
		if _, err := strconv.Atoi(req.NumberOfPartners); err == nil {
			meta["number_of_partners"] = req.NumberOfPartners
		}
	}
	if req.CreciNumber != "" {
		meta["creci_number"] = req.CreciNumber
		meta["creci_uf"] = req.CreciUf
	}
	return meta
}

func accountTypeOrDefault(t string) string {
	if t == db_models.AccountTypeCompany {
		return db_models.AccountTypeCompany
	}
	return db_models.AccountTypeIndividual
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
