package mock

import (
	"context"

	"github.com/garnizeh/trainhub/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	Accounts *AccountRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Accounts: &AccountRepo{},
	}
}

// AccountRepo is an in-memory stand-in for the accounts store.
type AccountRepo struct {
	Stored    *models.Account
	CreateErr error
}

func (m *AccountRepo) CreateAccount(ctx context.Context, a *models.Account) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.Account{ID: 1, Name: a.Name, Email: a.Email, PasswordHash: a.PasswordHash}
	return 1, nil
}

func (m *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}
