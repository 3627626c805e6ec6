package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
	"constellation/internal/repositories"
)

var errEntryNotFound = errors.New("entry not found")

// PersonalService backs one of the two personal-finance boundaries
// (expenses or income). Rows go out as raw JSON, so the service returns
// db models directly instead of response models.
type PersonalService interface {
	Create(ctx context.Context, userID string, req *request_models.PersonalEntryRequest) (*db_models.PersonalExpense, error)
	List(ctx context.Context, userID string) ([]db_models.PersonalExpense, error)
	Update(ctx context.Context, userID string, req *request_models.PersonalEntryUpdateRequest) (*db_models.PersonalExpense, error)
	Delete(ctx context.Context, userID, id string) error
}

type personalService struct {
	entries repositories.PersonalEntryRepository
}

func NewPersonalService(entries repositories.PersonalEntryRepository) PersonalService {
	return &personalService{
		entries: entries,
	}
}

func (p *personalService) Create(ctx context.Context, userID string, req *request_models.PersonalEntryRequest) (*db_models.PersonalExpense, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	entry := &db_models.PersonalExpense{
		UserID:      owner,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	}
	return p.entries.Insert(ctx, entry)
}

func (p *personalService) List(ctx context.Context, userID string) ([]db_models.PersonalExpense, error) {
	return p.entries.List(ctx, userID)
}

func (p *personalService) Update(ctx context.Context, userID string, req *request_models.PersonalEntryUpdateRequest) (*db_models.PersonalExpense, error) {
	// Only the keys present in the body reach the UPDATE; a PUT with just
	// {id, amount} leaves the other columns alone.
	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}

	row, err := p.entries.Update(ctx, userID, req.ID, updates)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, errEntryNotFound
	}
	return row, nil
}

func (p *personalService) Delete(ctx context.Context, userID, id string) error {
	return p.entries.Delete(ctx, userID, id)
}
