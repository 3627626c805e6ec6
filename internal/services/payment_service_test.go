package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
	"constellation/pkg/utils"
)

type paymentFixture struct {
	log      *opLog
	members  *fakeMembers
	profiles *fakeProfiles
	subs     *fakeSubs
	gateway  *fakeGateway
	mail     *fakeMail
	svc      PaymentService
}

func newPaymentFixture() *paymentFixture {
	log := &opLog{}
	f := &paymentFixture{
		log:      log,
		members:  newFakeMembers(log),
		profiles: newFakeProfiles(log),
		subs:     &fakeSubs{},
		gateway:  newFakeGateway(log),
		mail:     &fakeMail{},
	}
	f.svc = NewPaymentService(f.members, f.profiles, f.subs, f.gateway, f.mail)
	return f
}

func checkoutReq() *request_models.CreatePaymentIntentRequest {
	return &request_models.CreatePaymentIntentRequest{
		FullName:    "Bruno Lima",
		CPF:         "11122233344",
		Phone:       "+5511988887777",
		AccountType: "individual",
		CreciNumber: "54321",
		CreciUf:     "RJ",
		Email:       "bruno@example.com",
		Password:    "secret123",
	}
}

func TestCreateTestPaymentUsesFixedAmount(t *testing.T) {
	f := newPaymentFixture()

	resp, err := f.svc.CreateTestPayment(context.Background(), checkoutReq())
	require.NoError(t, err)

	assert.Equal(t, "cs_secret", resp.ClientSecret)
	require.Len(t, f.gateway.created, 1)
	assert.Equal(t, TestPaymentAmount, f.gateway.created[0].Amount)
	assert.Equal(t, FoundingProgram, f.gateway.created[0].Metadata["program"])

	// The test endpoint never creates an enrollment row.
	assert.Empty(t, f.members.byEmail)
}

func TestCreatePaymentIntentDefaultsAmountAndInsertsMember(t *testing.T) {
	f := newPaymentFixture()

	resp, err := f.svc.CreatePaymentIntent(context.Background(), checkoutReq())
	require.NoError(t, err)

	require.Len(t, f.gateway.created, 1)
	assert.Equal(t, FoundingPaymentAmount, f.gateway.created[0].Amount)

	member := f.members.byEmail["bruno@example.com"]
	require.NotNil(t, member)
	assert.Equal(t, db_models.PaymentStatusPending, member.PaymentStatus)
	assert.Equal(t, FoundingPaymentAmount, member.PaymentAmount)
	require.NotNil(t, member.StripePaymentIntentID)
	assert.Equal(t, resp.PaymentIntentID, *member.StripePaymentIntentID)
	assert.Equal(t, 1, member.MemberNumber)
}

func TestCreatePaymentIntentHonorsExplicitAmount(t *testing.T) {
	f := newPaymentFixture()
	req := checkoutReq()
	req.Amount = 150000

	_, err := f.svc.CreatePaymentIntent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), f.gateway.created[0].Amount)
}

func TestCreatePaymentIntentRekeysExistingPendingEnrollment(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.CreatePaymentIntent(context.Background(), checkoutReq())
	require.NoError(t, err)

	// Retry after an abandoned checkout: same enrollment, new intent.
	resp, err := f.svc.CreatePaymentIntent(context.Background(), checkoutReq())
	require.NoError(t, err)

	assert.Len(t, f.members.byEmail, 1)
	member := f.members.byEmail["bruno@example.com"]
	assert.Equal(t, resp.PaymentIntentID, *member.StripePaymentIntentID)
}

func TestCreatePaymentIntentValidation(t *testing.T) {
	f := newPaymentFixture()

	missing := checkoutReq()
	missing.CPF = ""
	_, err := f.svc.CreatePaymentIntent(context.Background(), missing)
	assert.ErrorIs(t, err, utils.ErrMissingFields)

	company := checkoutReq()
	company.AccountType = "company"
	_, err = f.svc.CreatePaymentIntent(context.Background(), company)
	assert.ErrorIs(t, err, utils.ErrCompanyFieldsMissing)

	company.CompanyName = "Lima Imóveis"
	company.CNPJ = "12345678000199"
	_, err = f.svc.CreatePaymentIntent(context.Background(), company)
	assert.NoError(t, err)
}

func TestCreatePaymentIntentRejectsDuplicatePaidCreci(t *testing.T) {
	f := newPaymentFixture()
	f.members.paidCreci["54321/RJ"] = &db_models.FoundingMember{}

	_, err := f.svc.CreatePaymentIntent(context.Background(), checkoutReq())
	assert.ErrorIs(t, err, utils.ErrCreciAlreadyExists)
	assert.Empty(t, f.gateway.created)
}

func TestCreatePaymentIntentSoldOut(t *testing.T) {
	f := newPaymentFixture()
	f.members.paidCount = 100

	_, err := f.svc.CreatePaymentIntent(context.Background(), checkoutReq())
	assert.ErrorIs(t, err, utils.ErrProgramSoldOut)
}

func TestCreatePaymentIntentGatewayError(t *testing.T) {
	f := newPaymentFixture()
	f.gateway.createErr = errors.New("stripe down")

	_, err := f.svc.CreatePaymentIntent(context.Background(), checkoutReq())
	assert.ErrorIs(t, err, utils.ErrPaymentGateway)
	assert.Empty(t, f.members.byEmail)
}

func seedPendingMember(f *paymentFixture, intentID string) *db_models.FoundingMember {
	member := &db_models.FoundingMember{
		UserID:                uuid.New(),
		Email:                 "bruno@example.com",
		FullName:              "Bruno Lima",
		PaymentStatus:         db_models.PaymentStatusPending,
		MemberNumber:          7,
		StripePaymentIntentID: &intentID,
	}
	member.ID = uuid.New()
	f.members.byEmail[member.Email] = member
	f.members.byIntent[intentID] = member
	return member
}

func TestHandlePaymentSucceeded(t *testing.T) {
	f := newPaymentFixture()
	member := seedPendingMember(f, "pi_77")

	require.NoError(t, f.svc.HandlePaymentSucceeded(context.Background(), "pi_77"))

	assert.Equal(t, db_models.PaymentStatusPaid, member.PaymentStatus)

	// 24-month TEAM subscription attached in the same transaction.
	require.Len(t, f.subs.inserted, 1)
	sub := f.subs.inserted[0]
	assert.Equal(t, db_models.PlanTeam, sub.PlanID)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
	assert.Equal(t, member.UserID, sub.UserID)
	assert.Greater(t, sub.CurrentPeriodEnd, sub.CurrentPeriodStart)
	wantEnd := time.Now().In(utils.BrazilLocation()).AddDate(2, 0, 0).Unix()
	assert.InDelta(t, wantEnd, sub.CurrentPeriodEnd, 5)

	assert.Equal(t, []string{member.UserID.String()}, f.profiles.onboarded)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "bruno@example.com", f.mail.sent[0].To)
}

func TestHandlePaymentSucceededIsIdempotent(t *testing.T) {
	f := newPaymentFixture()
	member := seedPendingMember(f, "pi_77")
	member.PaymentStatus = db_models.PaymentStatusPaid

	require.NoError(t, f.svc.HandlePaymentSucceeded(context.Background(), "pi_77"))

	assert.Empty(t, f.members.paid)
	assert.Empty(t, f.subs.inserted)
	assert.Empty(t, f.mail.sent)
}

func TestHandlePaymentSucceededUnknownIntentIsAcked(t *testing.T) {
	f := newPaymentFixture()
	assert.NoError(t, f.svc.HandlePaymentSucceeded(context.Background(), "pi_unknown"))
}

func TestHandlePaymentSucceededMailFailureIsSwallowed(t *testing.T) {
	f := newPaymentFixture()
	seedPendingMember(f, "pi_77")
	f.mail.sendErr = errors.New("smtp down")

	assert.NoError(t, f.svc.HandlePaymentSucceeded(context.Background(), "pi_77"))
}

func TestHandlePaymentFailed(t *testing.T) {
	f := newPaymentFixture()
	member := seedPendingMember(f, "pi_77")

	require.NoError(t, f.svc.HandlePaymentFailed(context.Background(), "pi_77", "card declined"))
	assert.Equal(t, db_models.PaymentStatusFailed, member.PaymentStatus)

	// A second failure event for a non-pending member is a no-op.
	require.NoError(t, f.svc.HandlePaymentFailed(context.Background(), "pi_77", "card declined"))
	assert.Len(t, f.members.failed, 1)
}
