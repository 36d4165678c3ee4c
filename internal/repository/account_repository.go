package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "reciclothes/internal/errors"
	"reciclothes/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account. Anything other than exactly one affected row is an error.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	res := r.db.WithContext(ctx).Create(account)
	if res.Error != nil {
		return fmt.Errorf("insert account: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		return fmt.Errorf("%w: %d rows affected", apperrors.ErrNotInserted, res.RowsAffected)
	}
	return nil
}

// FindByEmail finds an account by email, returning apperrors.ErrAccountNotFound when none matches.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &account, nil
}
