package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlow() *SignupFlow {
	return &SignupFlow{
		ID:           "flow-1",
		Step:         StepAccount,
		FullName:     "Ana Souza",
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
	}
}

func TestFlowTransitions(t *testing.T) {
	f := newFlow()

	require.NoError(t, f.AdvanceToProfessional())
	assert.Equal(t, StepProfessional, f.Step)

	// Cannot advance past professional twice.
	assert.ErrorIs(t, f.AdvanceToProfessional(), ErrWrongStep)

	require.NoError(t, f.AdvanceToPayment("user-1", "cs_x", "pi_x", 4))
	assert.Equal(t, StepPayment, f.Step)
	assert.Equal(t, "cs_x", f.ClientSecret)
	assert.Equal(t, 4, f.MemberNumber)
}

func TestPaymentStepRequiresClientSecret(t *testing.T) {
	f := newFlow()
	require.NoError(t, f.AdvanceToProfessional())

	assert.ErrorIs(t, f.AdvanceToPayment("user-1", "", "pi_x", 4), ErrMissingSecret)
	assert.Equal(t, StepProfessional, f.Step)
}

func TestPaymentStepUnreachableFromAccount(t *testing.T) {
	f := newFlow()
	assert.ErrorIs(t, f.AdvanceToPayment("user-1", "cs_x", "pi_x", 4), ErrWrongStep)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewSignupFlows()
	store.Put(newFlow(), time.Minute)

	got, ok := store.Get("flow-1")
	require.True(t, ok)
	got.Step = StepPayment

	again, ok := store.Get("flow-1")
	require.True(t, ok)
	assert.Equal(t, StepAccount, again.Step)
}

func TestStoreExpiry(t *testing.T) {
	store := NewSignupFlows()
	store.Put(newFlow(), -time.Second)

	_, ok := store.Get("flow-1")
	assert.False(t, ok)

	err := store.Update("flow-1", func(f *SignupFlow) error { return nil })
	assert.ErrorIs(t, err, ErrFlowExpired)
}

func TestStoreUpdatePersistsMutation(t *testing.T) {
	store := NewSignupFlows()
	store.Put(newFlow(), time.Minute)

	require.NoError(t, store.Update("flow-1", func(f *SignupFlow) error {
		return f.AdvanceToProfessional()
	}))

	got, ok := store.Get("flow-1")
	require.True(t, ok)
	assert.Equal(t, StepProfessional, got.Step)

	// A failing fn leaves the stored flow untouched.
	assert.Error(t, store.Update("flow-1", func(f *SignupFlow) error {
		return f.AdvanceToProfessional()
	}))
	got, _ = store.Get("flow-1")
	assert.Equal(t, StepProfessional, got.Step)
}

func TestStoreDelete(t *testing.T) {
	store := NewSignupFlows()
	store.Put(newFlow(), time.Minute)
	store.Delete("flow-1")

	_, ok := store.Get("flow-1")
	assert.False(t, ok)
}
