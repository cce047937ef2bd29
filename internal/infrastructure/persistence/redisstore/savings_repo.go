package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
)

const savingsPrefix = "savings:"

// SavingsRepository stores savings accounts as whole JSON documents under
// savings:<uuid>.
type SavingsRepository struct {
	store *Store
}

// NewSavingsRepository creates the Redis-backed savings repository.
func NewSavingsRepository(store *Store) *SavingsRepository {
	return &SavingsRepository{store: store}
}

// Save writes the account document.
func (r *SavingsRepository) Save(ctx context.Context, account model.SavingsAccount) error {
	return r.store.setJSON(ctx, savingsPrefix+account.ID, account)
}

// FindByID loads an account by storage id.
func (r *SavingsRepository) FindByID(ctx context.Context, id string) (model.SavingsAccount, error) {
	var account model.SavingsAccount
	if err := r.store.getJSON(ctx, savingsPrefix+id, &account); err != nil {
		if errors.Is(err, redis.Nil) {
			return model.SavingsAccount{}, errs.NotFound("savings account", id)
		}
		return model.SavingsAccount{}, fmt.Errorf("find savings account: %w", err)
	}
	return account, nil
}

// FindByMemberID scans for the member's account. Each member has at most
// one.
func (r *SavingsRepository) FindByMemberID(ctx context.Context, memberID string) (model.SavingsAccount, error) {
	var found *model.SavingsAccount
	err := r.store.forEachJSON(ctx, savingsPrefix, func(raw []byte) error {
		var account model.SavingsAccount
		if err := json.Unmarshal(raw, &account); err != nil {
			return fmt.Errorf("unmarshal savings account: %w", err)
		}
		if account.MemberID == memberID {
			found = &account
		}
		return nil
	})
	if err != nil {
		return model.SavingsAccount{}, err
	}
	if found == nil {
		return model.SavingsAccount{}, errs.NotFound("savings account", memberID)
	}
	return *found, nil
}

// List returns all accounts sorted by business id.
func (r *SavingsRepository) List(ctx context.Context) ([]model.SavingsAccount, error) {
	var out []model.SavingsAccount
	err := r.store.forEachJSON(ctx, savingsPrefix, func(raw []byte) error {
		var account model.SavingsAccount
		if err := json.Unmarshal(raw, &account); err != nil {
			return fmt.Errorf("unmarshal savings account: %w", err)
		}
		out = append(out, account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}
