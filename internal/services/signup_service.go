package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
	"constellation/internal/models/response_models"
	"constellation/internal/repositories"
	mem "constellation/pkg/memcache"
	"constellation/pkg/utils"
)

const (
	// SignupFlowTTL bounds how long an unfinished wizard flow survives.
	SignupFlowTTL = 30 * time.Minute

	// SignupPaymentAmount is the R$ 300,00 promotional founding price
	// charged through the wizard.
	SignupPaymentAmount int64 = 30000
)

// SignupService owns the three-step signup wizard. The flow lives server-side
// in a TTL store; each step endpoint claims the expected state before doing
// work, so steps cannot be skipped or replayed concurrently.
type SignupService interface {
	StartSignup(ctx context.Context, req *request_models.AccountStepRequest) (*response_models.StartSignupResponse, error)

	// SubmitProfessional runs the enrollment saga: account row, profile
	// row, founding-member row, payment intent. A failure at any step
	// undoes the earlier steps in reverse order.
	SubmitProfessional(ctx context.Context, req *request_models.ProfessionalStepRequest) (*response_models.ProfessionalStepResponse, error)

	// CompleteSignup re-authenticates after the hosted payment UI
	// confirmed the charge and issues the session token.
	CompleteSignup(ctx context.Context, req *request_models.CompleteSignupRequest) (*response_models.CompleteSignupResponse, error)
}

type signupService struct {
	accounts repositories.AccountRepository
	profiles repositories.UserProfileRepository
	members  repositories.FoundingMemberRepository
	gateway  PaymentGateway
	flows    mem.SignupFlowStore
}

func NewSignupService(
	accounts repositories.AccountRepository,
	profiles repositories.UserProfileRepository,
	members repositories.FoundingMemberRepository,
	gateway PaymentGateway,
	flows mem.SignupFlowStore,
) SignupService {
	return &signupService{
		accounts: accounts,
		profiles: profiles,
		members:  members,
		gateway:  gateway,
		flows:    flows,
	}
}

func (s *signupService) StartSignup(ctx context.Context, req *request_models.AccountStepRequest) (*response_models.StartSignupResponse, error) {
	existing, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	flow := &mem.SignupFlow{
		ID:           uuid.NewString(),
		Step:         mem.StepAccount,
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	s.flows.Put(flow, SignupFlowTTL)

	return &response_models.StartSignupResponse{
		FlowID: flow.ID,
		Step:   string(flow.Step),
	}, nil
}

func (s *signupService) SubmitProfessional(ctx context.Context, req *request_models.ProfessionalStepRequest) (*response_models.ProfessionalStepResponse, error) {
	// Claim the flow first. Concurrent submissions of the same flow race
	// on this transition; only one wins.
	if err := s.flows.Update(req.FlowID, func(f *mem.SignupFlow) error {
		return f.AdvanceToProfessional()
	}); err != nil {
		return nil, flowErr(err)
	}

	flow, ok := s.flows.Get(req.FlowID)
	if !ok {
		return nil, utils.ErrFlowNotFound
	}

	if err := s.checkEligibility(ctx, flow.Email, req); err != nil {
		s.revertToAccount(req.FlowID)
		return nil, err
	}

	resp, err := s.runEnrollmentSaga(ctx, flow, req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *signupService) CompleteSignup(ctx context.Context, req *request_models.CompleteSignupRequest) (*response_models.CompleteSignupResponse, error) {
	flow, ok := s.flows.Get(req.FlowID)
	if !ok {
		return nil, utils.ErrFlowNotFound
	}
	if flow.Step != mem.StepPayment {
		return nil, utils.ErrFlowWrongStep
	}

	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if flow.UserID != account.ID.String() {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.UserType)
	if err != nil {
		return nil, err
	}

	s.flows.Delete(req.FlowID)

	return &response_models.CompleteSignupResponse{
		Token:  token,
		UserID: account.ID.String(),
	}, nil
}

// checkEligibility halts the saga before any write: duplicate enrollment,
// duplicate paid CRECI, program capacity.
func (s *signupService) checkEligibility(ctx context.Context, email string, req *request_models.ProfessionalStepRequest) error {
	member, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if member != nil {
		return utils.ErrEmailAlreadyExists
	}

	if req.CreciNumber != "" && req.CreciUf != "" {
		dup, err := s.members.FindPaidByCreci(ctx, req.CreciNumber, req.CreciUf)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if dup != nil {
			return utils.ErrCreciAlreadyExists
		}
	}

	paid, err := s.members.CountPaid(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if paid >= FoundingProgramCap {
		return utils.ErrProgramSoldOut
	}
	return nil
}

type sagaStep struct {
	name string
	undo func(ctx context.Context) error
}

func (s *signupService) runEnrollmentSaga(ctx context.Context, flow *mem.SignupFlow, req *request_models.ProfessionalStepRequest) (*response_models.ProfessionalStepResponse, error) {
	var done []sagaStep
	fail := func(err error) (*response_models.ProfessionalStepResponse, error) {
		s.compensate(ctx, done)
		s.revertToAccount(flow.ID)
		return nil, err
	}

	account := &db_models.Account{
		FullName:     flow.FullName,
		Email:        flow.Email,
		PasswordHash: flow.PasswordHash,
		UserType:     db_models.UserTypeConstellation,
		Phone:        optional(flow.Phone),
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(utils.ErrEmailAlreadyExists)
		}
		utils.Logger.Errorf("signup saga: insert account %s: %v", flow.Email, err)
		return fail(utils.ErrDatabaseError)
	}
	done = append(done, sagaStep{"account", func(ctx context.Context) error {
		return s.accounts.Delete(ctx, account.ID.String())
	}})

	profile := &db_models.UserProfile{
		UserID:      account.ID,
		FullName:    flow.FullName,
		UserType:    account.UserType,
		CreciNumber: optional(req.CreciNumber),
		CreciUf:     optional(req.CreciUf),
		Phone:       optional(flow.Phone),
		CompanyName: optional(req.CompanyName),
	}
	if err := s.profiles.Insert(ctx, profile); err != nil {
		utils.Logger.Errorf("signup saga: insert profile for %s: %v", flow.Email, err)
		return fail(utils.ErrDatabaseError)
	}
	done = append(done, sagaStep{"profile", func(ctx context.Context) error {
		return s.profiles.DeleteByUserId(ctx, account.ID.String())
	}})

	number, err := s.members.NextMemberNumber(ctx)
	if err != nil {
		return fail(utils.ErrDatabaseError)
	}
	member := &db_models.FoundingMember{
		UserID:        account.ID,
		Email:         flow.Email,
		Phone:         optional(flow.Phone),
		FullName:      flow.FullName,
		CPF:           optional(req.CPF),
		AccountType:   accountTypeOrDefault(req.AccountType),
		CompanyName:   optional(req.CompanyName),
		CNPJ:          optional(req.CNPJ),
		CreciNumber:   optional(req.CreciNumber),
		CreciUf:       optional(req.CreciUf),
		PaymentStatus: db_models.PaymentStatusPending,
		PaymentAmount: SignupPaymentAmount,
		MemberNumber:  number,
		SelectedPlan:  FoundingProgram,
	}
	if err := s.members.Insert(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(utils.ErrEmailAlreadyExists)
		}
		utils.Logger.Errorf("signup saga: insert member for %s: %v", flow.Email, err)
		return fail(utils.ErrDatabaseError)
	}
	done = append(done, sagaStep{"member", func(ctx context.Context) error {
		return s.members.DeleteByUserId(ctx, account.ID.String())
	}})

	intent, err := s.gateway.CreateIntent(ctx, SignupPaymentAmount, flow.Email, map[string]string{
		"program":      FoundingProgram,
		"user_id":      account.ID.String(),
		"email":        flow.Email,
		"full_name":    flow.FullName,
		"creci_number": req.CreciNumber,
		"creci_uf":     req.CreciUf,
	})
	if err != nil {
		utils.Logger.Errorf("signup saga: create intent for %s: %v", flow.Email, err)
		return fail(utils.ErrPaymentGateway)
	}
	done = append(done, sagaStep{"intent", func(ctx context.Context) error {
		return s.gateway.CancelIntent(ctx, intent.ID)
	}})

	if err := s.members.AttachIntent(ctx, member.ID.String(), intent.ID, SignupPaymentAmount); err != nil {
		utils.Logger.Errorf("signup saga: attach intent %s: %v", intent.ID, err)
		return fail(utils.ErrDatabaseError)
	}

	if err := s.flows.Update(flow.ID, func(f *mem.SignupFlow) error {
		return f.AdvanceToPayment(account.ID.String(), intent.ClientSecret, intent.ID, number)
	}); err != nil {
		// Flow expired under us; nothing to hand back to the caller.
		s.compensate(ctx, done)
		return nil, flowErr(err)
	}

	return &response_models.ProfessionalStepResponse{
		Step:            string(mem.StepPayment),
		UserID:          account.ID.String(),
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		MemberNumber:    number,
	}, nil
}

// compensate undoes completed saga steps in reverse order. Failures are
// logged, never returned: the caller's original error wins. Runs on a
// detached context so a canceled request still cleans up.
func (s *signupService) compensate(ctx context.Context, done []sagaStep) {
	ctx = context.WithoutCancel(ctx)
	for i := len(done) - 1; i >= 0; i-- {
		if err := done[i].undo(ctx); err != nil {
			utils.Logger.Errorf("signup saga: compensate %s: %v", done[i].name, err)
		}
	}
}

// revertToAccount rewinds a claimed flow so the caller can fix the request
// and resubmit the professional step.
func (s *signupService) revertToAccount(flowID string) {
	_ = s.flows.Update(flowID, func(f *mem.SignupFlow) error {
		f.Step = mem.StepAccount
		return nil
	})
}

func flowErr(err error) error {
	switch {
	case errors.Is(err, mem.ErrFlowExpired):
		return utils.ErrFlowNotFound
	case errors.Is(err, mem.ErrWrongStep):
		return utils.ErrFlowWrongStep
	default:
		return err
	}
}
