package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
	"constellation/pkg/utils"
)

type fakeListings struct {
	rows map[string]*db_models.Listing
}

func newFakeListings() *fakeListings {
	return &fakeListings{rows: map[string]*db_models.Listing{}}
}

func (f *fakeListings) Insert(ctx context.Context, listing *db_models.Listing) error {
	listing.ID = uuid.New()
	f.rows[listing.ID.String()] = listing
	return nil
}

func (f *fakeListings) FindByIdAndOwner(ctx context.Context, id, ownerID string) (*db_models.Listing, error) {
	l := f.rows[id]
	if l == nil || l.OwnerID.String() != ownerID {
		return nil, nil
	}
	return l, nil
}

func (f *fakeListings) ListByOwner(ctx context.Context, ownerID string) ([]db_models.Listing, error) {
	var out []db_models.Listing
	for _, l := range f.rows {
		if l.OwnerID.String() == ownerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListings) Update(ctx context.Context, listing *db_models.Listing) error {
	f.rows[listing.ID.String()] = listing
	return nil
}

func (f *fakeListings) DeleteByIdAndOwner(ctx context.Context, id, ownerID string) (bool, error) {
	l := f.rows[id]
	if l == nil || l.OwnerID.String() != ownerID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func TestCreateListingDefaultsToDraft(t *testing.T) {
	svc := NewListingService(newFakeListings())
	owner := uuid.NewString()

	resp, err := svc.Create(context.Background(), owner, &request_models.CreateListingRequest{
		Title: "Apartamento 2 quartos",
		Price: 45000000,
		Media: []string{"https://cdn.example.com/a.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, owner, resp.OwnerID)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, resp.Media)
}

func TestCreateListingRejectsBadStatus(t *testing.T) {
	svc := NewListingService(newFakeListings())

	_, err := svc.Create(context.Background(), uuid.NewString(), &request_models.CreateListingRequest{
		Title:  "Casa",
		Status: "exploded",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidListingStatus)
}

func TestListingCrossOwnerAccessIsNotFound(t *testing.T) {
	listings := newFakeListings()
	svc := NewListingService(listings)
	owner := uuid.NewString()
	other := uuid.NewString()

	created, err := svc.Create(context.Background(), owner, &request_models.CreateListingRequest{Title: "Casa"})
	require.NoError(t, err)

	_, err = svc.GetById(context.Background(), other, created.ID)
	assert.ErrorIs(t, err, utils.ErrListingNotFound)

	err = svc.Delete(context.Background(), other, created.ID)
	assert.ErrorIs(t, err, utils.ErrListingNotFound)

	// The owner still sees it.
	_, err = svc.GetById(context.Background(), owner, created.ID)
	assert.NoError(t, err)
}

func TestUpdateListingAppliesPartialChanges(t *testing.T) {
	listings := newFakeListings()
	svc := NewListingService(listings)
	owner := uuid.NewString()

	created, err := svc.Create(context.Background(), owner, &request_models.CreateListingRequest{
		Title: "Casa",
		Price: 1000,
	})
	require.NoError(t, err)

	status := "active"
	price := int64(2000)
	updated, err := svc.Update(context.Background(), owner, created.ID, &request_models.UpdateListingRequest{
		Price:  &price,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Casa", updated.Title)
	assert.Equal(t, int64(2000), updated.Price)
	assert.Equal(t, "active", updated.Status)

	bad := "exploded"
	_, err = svc.Update(context.Background(), owner, created.ID, &request_models.UpdateListingRequest{Status: &bad})
	assert.ErrorIs(t, err, utils.ErrInvalidListingStatus)
}

func TestDeleteListing(t *testing.T) {
	listings := newFakeListings()
	svc := NewListingService(listings)
	owner := uuid.NewString()

	created, err := svc.Create(context.Background(), owner, &request_models.CreateListingRequest{Title: "Casa"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), owner, created.ID))

	rows, err := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
