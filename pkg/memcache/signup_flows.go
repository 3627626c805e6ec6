package mem

import (
	"errors"
	"sync"
	"time"
)

// SignupStep is the wizard state: account -> professional -> payment.
// The only backward move is a failed enrollment rewinding to account.
type SignupStep string

const (
	StepAccount      SignupStep = "account"
	StepProfessional SignupStep = "professional"
	StepPayment      SignupStep = "payment"
)

var (
	ErrFlowExpired   = errors.New("signup flow expired")
	ErrWrongStep     = errors.New("signup flow is on a different step")
	ErrMissingSecret = errors.New("payment step requires a client secret")
)

// SignupFlow carries the wizard state between step submissions. The raw
// password never leaves the first request; only its bcrypt hash is kept.
// Payment fields are set exclusively by AdvanceToPayment, so a flow in the
// payment step always holds a client secret.
type SignupFlow struct {
	ID           string
	Step         SignupStep
	FullName     string
	Email        string
	Phone        string
	PasswordHash string

	// Set after account creation (professional step saga).
	UserID string

	// Set only on the payment step.
	ClientSecret    string
	PaymentIntentID string
	MemberNumber    int
}

// AdvanceToProfessional moves a freshly created flow past the account step.
func (f *SignupFlow) AdvanceToProfessional() error {
	if f.Step != StepAccount {
		return ErrWrongStep
	}
	f.Step = StepProfessional
	return nil
}

// AdvanceToPayment transitions the flow once the enrollment saga succeeded.
func (f *SignupFlow) AdvanceToPayment(userID, clientSecret, paymentIntentID string, memberNumber int) error {
	if f.Step != StepProfessional {
		return ErrWrongStep
	}
	if clientSecret == "" {
		return ErrMissingSecret
	}
	f.Step = StepPayment
	f.UserID = userID
	f.ClientSecret = clientSecret
	f.PaymentIntentID = paymentIntentID
	f.MemberNumber = memberNumber
	return nil
}

type SignupFlowStore interface {
	Put(flow *SignupFlow, ttl time.Duration)

	// Get returns a copy of the stored flow, or false if missing/expired.
	Get(id string) (*SignupFlow, bool)

	// Update applies fn to the stored flow under the store lock so step
	// transitions are atomic against concurrent submissions of the same flow.
	Update(id string, fn func(*SignupFlow) error) error

	Delete(id string)
}

type flowEntry struct {
	flow      SignupFlow
	expiresAt time.Time
}

type SignupFlows struct {
	mu   sync.RWMutex
	data map[string]flowEntry
}

func NewSignupFlows() *SignupFlows {
	return &SignupFlows{
		data: make(map[string]flowEntry),
	}
}

func (s *SignupFlows) Put(flow *SignupFlow, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[flow.ID] = flowEntry{
		flow:      *flow,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *SignupFlows) Get(id string) (*SignupFlow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	cp := e.flow
	return &cp, true
}

func (s *SignupFlows) Update(id string, fn func(*SignupFlow) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.data, id)
		return ErrFlowExpired
	}
	if err := fn(&e.flow); err != nil {
		return err
	}
	s.data[id] = e
	return nil
}

func (s *SignupFlows) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}
