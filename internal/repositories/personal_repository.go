package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"constellation/internal/models/db_models"
)

// PersonalRepository backs the /api/personal endpoints. Expenses and income
// share one shape, so the interface is implemented twice over the two tables.

type PersonalEntryRepository interface {
	Insert(ctx context.Context, entry *db_models.PersonalExpense) (*db_models.PersonalExpense, error)
	List(ctx context.Context, userID string) ([]db_models.PersonalExpense, error)
	Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*db_models.PersonalExpense, error)
	Delete(ctx context.Context, userID, id string) error
}

type personalExpenseRepository struct {
	db    *gorm.DB
	table string
}

func NewPersonalExpenseRepository(db *gorm.DB) PersonalEntryRepository {
	return &personalExpenseRepository{db: db, table: "personal_expenses"}
}

func NewPersonalIncomeRepository(db *gorm.DB) PersonalEntryRepository {
	return &personalExpenseRepository{db: db, table: "personal_incomes"}
}

func (p *personalExpenseRepository) scoped(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).Table(p.table)
}

func (p *personalExpenseRepository) Insert(ctx context.Context, entry *db_models.PersonalExpense) (*db_models.PersonalExpense, error) {
	if err := p.scoped(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (p *personalExpenseRepository) List(ctx context.Context, userID string) ([]db_models.PersonalExpense, error) {
	var rows []db_models.PersonalExpense
	err := p.scoped(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (p *personalExpenseRepository) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*db_models.PersonalExpense, error) {
	// An empty body still returns the current row.
	if len(updates) > 0 {
		if err := p.scoped(ctx).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var row db_models.PersonalExpense
	err := p.scoped(ctx).First(&row, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (p *personalExpenseRepository) Delete(ctx context.Context, userID, id string) error {
	return p.scoped(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.PersonalExpense{}).Error
}
