package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"constellation/internal/models/db_models"
)

// In-memory fakes for the repository and gateway interfaces. The shared op
// log records write operations in order so saga tests can assert both the
// forward path and the reverse compensation path.

type opLog struct {
	ops []string
}

func (l *opLog) add(op string) { l.ops = append(l.ops, op) }

type fakeAccounts struct {
	log       *opLog
	byEmail   map[string]*db_models.Account
	byID      map[string]*db_models.Account
	insertErr error
	deleted   []string
}

func newFakeAccounts(log *opLog) *fakeAccounts {
	return &fakeAccounts{
		log:     log,
		byEmail: map[string]*db_models.Account{},
		byID:    map[string]*db_models.Account{},
	}
}

func (f *fakeAccounts) Insert(ctx context.Context, account *db_models.Account) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.log.add("account.insert")
	account.ID = uuid.New()
	f.byEmail[account.Email] = account
	f.byID[account.ID.String()] = account
	return nil
}

func (f *fakeAccounts) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	return f.byID[id], nil
}

func (f *fakeAccounts) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return f.byEmail[email], nil
}

func (f *fakeAccounts) UpdatePasswordHash(ctx context.Context, email, passwordHash string) error {
	if a := f.byEmail[email]; a != nil {
		a.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeAccounts) Delete(ctx context.Context, id string) error {
	f.log.add("account.delete")
	f.deleted = append(f.deleted, id)
	if a := f.byID[id]; a != nil {
		delete(f.byEmail, a.Email)
		delete(f.byID, id)
	}
	return nil
}

type fakeProfiles struct {
	log       *opLog
	byUserID  map[string]*db_models.UserProfile
	insertErr error
	onboarded []string
	deleted   []string
}

func newFakeProfiles(log *opLog) *fakeProfiles {
	return &fakeProfiles{
		log:      log,
		byUserID: map[string]*db_models.UserProfile{},
	}
}

func (f *fakeProfiles) Insert(ctx context.Context, profile *db_models.UserProfile) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.log.add("profile.insert")
	profile.ID = uuid.New()
	f.byUserID[profile.UserID.String()] = profile
	return nil
}

func (f *fakeProfiles) FindByUserId(ctx context.Context, userID string) (*db_models.UserProfile, error) {
	return f.byUserID[userID], nil
}

func (f *fakeProfiles) MarkOnboardingCompletedTx(tx *gorm.DB, userID string) error {
	f.onboarded = append(f.onboarded, userID)
	return nil
}

func (f *fakeProfiles) DeleteByUserId(ctx context.Context, userID string) error {
	f.log.add("profile.delete")
	f.deleted = append(f.deleted, userID)
	delete(f.byUserID, userID)
	return nil
}

type fakeMembers struct {
	log        *opLog
	byEmail    map[string]*db_models.FoundingMember
	byIntent   map[string]*db_models.FoundingMember
	paidCount  int64
	paidCreci  map[string]*db_models.FoundingMember // "number/uf"
	nextNumber int
	insertErr  error
	attachErr  error

	attached []string
	paid     []string
	failed   []string
	deleted  []string
	stale    []db_models.FoundingMember
}

func newFakeMembers(log *opLog) *fakeMembers {
	return &fakeMembers{
		log:        log,
		byEmail:    map[string]*db_models.FoundingMember{},
		byIntent:   map[string]*db_models.FoundingMember{},
		paidCreci:  map[string]*db_models.FoundingMember{},
		nextNumber: 1,
	}
}

func (f *fakeMembers) Insert(ctx context.Context, member *db_models.FoundingMember) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.log.add("member.insert")
	member.ID = uuid.New()
	f.byEmail[member.Email] = member
	return nil
}

func (f *fakeMembers) FindByUserId(ctx context.Context, userID string) (*db_models.FoundingMember, error) {
	for _, m := range f.byEmail {
		if m.UserID.String() == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembers) FindByEmail(ctx context.Context, email string) (*db_models.FoundingMember, error) {
	return f.byEmail[email], nil
}

func (f *fakeMembers) FindByPaymentIntentId(ctx context.Context, paymentIntentID string) (*db_models.FoundingMember, error) {
	return f.byIntent[paymentIntentID], nil
}

func (f *fakeMembers) FindPaidByCreci(ctx context.Context, creciNumber, creciUf string) (*db_models.FoundingMember, error) {
	return f.paidCreci[creciNumber+"/"+creciUf], nil
}

func (f *fakeMembers) CountPaid(ctx context.Context) (int64, error) {
	return f.paidCount, nil
}

func (f *fakeMembers) NextMemberNumber(ctx context.Context) (int, error) {
	return f.nextNumber, nil
}

func (f *fakeMembers) DeleteByUserId(ctx context.Context, userID string) error {
	f.log.add("member.delete")
	f.deleted = append(f.deleted, userID)
	for email, m := range f.byEmail {
		if m.UserID.String() == userID {
			delete(f.byEmail, email)
		}
	}
	return nil
}

func (f *fakeMembers) AttachIntent(ctx context.Context, memberID, paymentIntentID string, amount int64) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.log.add("member.attach")
	f.attached = append(f.attached, paymentIntentID)
	for _, m := range f.byEmail {
		if m.ID.String() == memberID {
			m.StripePaymentIntentID = &paymentIntentID
			m.PaymentAmount = amount
			f.byIntent[paymentIntentID] = m
		}
	}
	return nil
}

func (f *fakeMembers) MarkPaid(ctx context.Context, memberID, paymentIntentID string, fn func(tx *gorm.DB) error) error {
	f.paid = append(f.paid, memberID)
	for _, m := range f.byEmail {
		if m.ID.String() == memberID {
			m.PaymentStatus = db_models.PaymentStatusPaid
			m.StripePaymentIntentID = &paymentIntentID
		}
	}
	if fn != nil {
		return fn(nil)
	}
	return nil
}

func (f *fakeMembers) MarkFailed(ctx context.Context, memberID string) error {
	f.failed = append(f.failed, memberID)
	for _, m := range f.byEmail {
		if m.ID.String() == memberID {
			m.PaymentStatus = db_models.PaymentStatusFailed
		}
	}
	return nil
}

func (f *fakeMembers) CancelStalePending(ctx context.Context, olderThan time.Duration) ([]db_models.FoundingMember, error) {
	return f.stale, nil
}

type fakeSubs struct {
	inserted []*db_models.Subscription
}

func (f *fakeSubs) Insert(ctx context.Context, sub *db_models.Subscription) error {
	f.inserted = append(f.inserted, sub)
	return nil
}

func (f *fakeSubs) InsertTx(tx *gorm.DB, sub *db_models.Subscription) error {
	f.inserted = append(f.inserted, sub)
	return nil
}

func (f *fakeSubs) FindActiveByUserId(ctx context.Context, userID string) (*db_models.Subscription, error) {
	for _, s := range f.inserted {
		if s.UserID.String() == userID && s.Status == db_models.SubStatusActive {
			return s, nil
		}
	}
	return nil, nil
}

type createdIntent struct {
	Amount   int64
	Email    string
	Metadata map[string]string
}

type fakeGateway struct {
	log       *opLog
	createErr error
	created   []createdIntent
	canceled  []string
	nextID    int
}

func newFakeGateway(log *opLog) *fakeGateway {
	return &fakeGateway{log: log}
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amount int64, email string, metadata map[string]string) (*PaymentIntentRef, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.log.add("intent.create")
	f.nextID++
	f.created = append(f.created, createdIntent{Amount: amount, Email: email, Metadata: metadata})
	return &PaymentIntentRef{
		ID:           fmt.Sprintf("pi_%d", f.nextID),
		ClientSecret: "cs_secret",
		Status:       "requires_payment_method",
	}, nil
}

func (f *fakeGateway) CancelIntent(ctx context.Context, intentID string) error {
	f.log.add("intent.cancel")
	f.canceled = append(f.canceled, intentID)
	return nil
}

type sentMail struct {
	To      string
	Subject string
}

type fakeMail struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMail) SendMailToResetPassword(to, token string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: "reset:" + token})
	return nil
}

func (f *fakeMail) SendEnrollmentConfirmation(to, fullName string, memberNumber int) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: "confirmation"})
	return nil
}
