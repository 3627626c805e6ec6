package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
)

type fakePersonalEntries struct {
	rows        map[string]*db_models.PersonalExpense
	lastUpdates map[string]interface{}
}

func newFakePersonalEntries() *fakePersonalEntries {
	return &fakePersonalEntries{rows: map[string]*db_models.PersonalExpense{}}
}

func (f *fakePersonalEntries) Insert(ctx context.Context, entry *db_models.PersonalExpense) (*db_models.PersonalExpense, error) {
	entry.ID = uuid.New()
	f.rows[entry.ID.String()] = entry
	return entry, nil
}

func (f *fakePersonalEntries) List(ctx context.Context, userID string) ([]db_models.PersonalExpense, error) {
	var out []db_models.PersonalExpense
	for _, r := range f.rows {
		if r.UserID.String() == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePersonalEntries) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*db_models.PersonalExpense, error) {
	f.lastUpdates = updates
	row, ok := f.rows[id]
	if !ok || row.UserID.String() != userID {
		return nil, nil
	}
	if v, ok := updates["description"]; ok {
		row.Description = v.(string)
	}
	if v, ok := updates["amount"]; ok {
		row.Amount = v.(int64)
	}
	if v, ok := updates["category"]; ok {
		row.Category = v.(string)
	}
	if v, ok := updates["date"]; ok {
		row.Date = v.(string)
	}
	out := *row
	return &out, nil
}

func (f *fakePersonalEntries) Delete(ctx context.Context, userID, id string) error {
	delete(f.rows, id)
	return nil
}

func seedPersonalEntry(t *testing.T, repo *fakePersonalEntries, userID string) *db_models.PersonalExpense {
	t.Helper()
	owner, err := uuid.Parse(userID)
	require.NoError(t, err)
	row, err := repo.Insert(context.Background(), &db_models.PersonalExpense{
		UserID:      owner,
		Description: "Aluguel escritório",
		Amount:      250000,
		Category:    "office",
		Date:        "2026-08-01",
	})
	require.NoError(t, err)
	return row
}

func TestPersonalUpdateTouchesOnlyProvidedFields(t *testing.T) {
	repo := newFakePersonalEntries()
	svc := NewPersonalService(repo)
	userID := uuid.NewString()
	row := seedPersonalEntry(t, repo, userID)

	amount := int64(300000)
	got, err := svc.Update(context.Background(), userID, &request_models.PersonalEntryUpdateRequest{
		ID:     row.ID.String(),
		Amount: &amount,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"amount": amount}, repo.lastUpdates)
	assert.Equal(t, amount, got.Amount)
	assert.Equal(t, "Aluguel escritório", got.Description)
	assert.Equal(t, "office", got.Category)
	assert.Equal(t, "2026-08-01", got.Date)
}

func TestPersonalUpdateAllFields(t *testing.T) {
	repo := newFakePersonalEntries()
	svc := NewPersonalService(repo)
	userID := uuid.NewString()
	row := seedPersonalEntry(t, repo, userID)

	desc, amount, cat, date := "Condomínio", int64(90000), "housing", "2026-08-10"
	got, err := svc.Update(context.Background(), userID, &request_models.PersonalEntryUpdateRequest{
		ID:          row.ID.String(),
		Description: &desc,
		Amount:      &amount,
		Category:    &cat,
		Date:        &date,
	})
	require.NoError(t, err)
	assert.Len(t, repo.lastUpdates, 4)
	assert.Equal(t, "Condomínio", got.Description)
	assert.Equal(t, "2026-08-10", got.Date)
}

func TestPersonalUpdateUnknownRow(t *testing.T) {
	repo := newFakePersonalEntries()
	svc := NewPersonalService(repo)

	_, err := svc.Update(context.Background(), uuid.NewString(), &request_models.PersonalEntryUpdateRequest{
		ID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, errEntryNotFound)
}

func TestPersonalCreateSetsOwner(t *testing.T) {
	repo := newFakePersonalEntries()
	svc := NewPersonalService(repo)
	userID := uuid.NewString()

	row, err := svc.Create(context.Background(), userID, &request_models.PersonalEntryRequest{
		Description: "Comissão",
		Amount:      500000,
		Category:    "commission",
		Date:        "2026-08-15",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, row.UserID.String())
	assert.NotEqual(t, uuid.Nil, row.ID)
}
