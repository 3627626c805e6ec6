package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
	"constellation/internal/models/response_models"
	"constellation/internal/repositories"
	"constellation/pkg/utils"
)

// ListingService is owner-scoped: every operation is keyed by the
// authenticated user's id, so cross-owner access surfaces as not-found.
type ListingService interface {
	Create(ctx context.Context, ownerID string, req *request_models.CreateListingRequest) (*response_models.ListingResponse, error)
	GetById(ctx context.Context, ownerID, id string) (*response_models.ListingResponse, error)
	ListByOwner(ctx context.Context, ownerID string) ([]response_models.ListingResponse, error)
	Update(ctx context.Context, ownerID, id string, req *request_models.UpdateListingRequest) (*response_models.ListingResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type listingService struct {
	listings repositories.ListingRepository
}

func NewListingService(listings repositories.ListingRepository) ListingService {
	return &listingService{
		listings: listings,
	}
}

func (l *listingService) Create(ctx context.Context, ownerID string, req *request_models.CreateListingRequest) (*response_models.ListingResponse, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	status := db_models.ListingStatusDraft
	if req.Status != "" {
		status = db_models.ListingStatus(req.Status)
		if !status.Valid() {
			return nil, utils.ErrInvalidListingStatus
		}
	}

	listing := &db_models.Listing{
		OwnerID:       owner,
		Title:         req.Title,
		AddressLine1:  req.AddressLine1,
		AddressNumber: req.AddressNumber,
		City:          req.City,
		StateCode:     req.StateCode,
		Price:         req.Price,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Media:         mediaJSON(req.Media),
		Status:        status,
	}
	if err := l.listings.Insert(ctx, listing); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toListingResponse(listing), nil
}

func (l *listingService) GetById(ctx context.Context, ownerID, id string) (*response_models.ListingResponse, error) {
	listing, err := l.listings.FindByIdAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if listing == nil {
		return nil, utils.ErrListingNotFound
	}
	return toListingResponse(listing), nil
}

func (l *listingService) ListByOwner(ctx context.Context, ownerID string) ([]response_models.ListingResponse, error) {
	listings, err := l.listings.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, *toListingResponse(&listings[i]))
	}
	return out, nil
}

func (l *listingService) Update(ctx context.Context, ownerID, id string, req *request_models.UpdateListingRequest) (*response_models.ListingResponse, error) {
	listing, err := l.listings.FindByIdAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if listing == nil {
		return nil, utils.ErrListingNotFound
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.AddressLine1 != nil {
		listing.AddressLine1 = req.AddressLine1
	}
	if req.AddressNumber != nil {
		listing.AddressNumber = req.AddressNumber
	}
	if req.City != nil {
		listing.City = req.City
	}
	if req.StateCode != nil {
		listing.StateCode = req.StateCode
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.Bedrooms != nil {
		listing.Bedrooms = req.Bedrooms
	}
	if req.Bathrooms != nil {
		listing.Bathrooms = req.Bathrooms
	}
	if req.Media != nil {
		listing.Media = mediaJSON(req.Media)
	}
	if req.Status != nil {
		status := db_models.ListingStatus(*req.Status)
		if !status.Valid() {
			return nil, utils.ErrInvalidListingStatus
		}
		listing.Status = status
	}

	if err := l.listings.Update(ctx, listing); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toListingResponse(listing), nil
}

func (l *listingService) Delete(ctx context.Context, ownerID, id string) error {
	deleted, err := l.listings.DeleteByIdAndOwner(ctx, id, ownerID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrListingNotFound
	}
	return nil
}

func mediaJSON(media []string) datatypes.JSON {
	if media == nil {
		media = []string{}
	}
	raw, err := json.Marshal(media)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func toListingResponse(listing *db_models.Listing) *response_models.ListingResponse {
	media := []string{}
	if len(listing.Media) > 0 {
		_ = json.Unmarshal(listing.Media, &media)
	}
	return &response_models.ListingResponse{
		ID:            listing.ID.String(),
		OwnerID:       listing.OwnerID.String(),
		Title:         listing.Title,
		AddressLine1:  listing.AddressLine1,
		AddressNumber: listing.AddressNumber,
		City:          listing.City,
		StateCode:     listing.StateCode,
		Price:         listing.Price,
		Bedrooms:      listing.Bedrooms,
		Bathrooms:     listing.Bathrooms,
		Media:         media,
		Status:        string(listing.Status),
		CreatedAt:     listing.CreatedAt,
	}
}
