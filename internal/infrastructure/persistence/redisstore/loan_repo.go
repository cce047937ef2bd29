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
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
)

const loanPrefix = "loans:"

// LoanRepository stores loans as whole JSON documents under loans:<uuid>.
type LoanRepository struct {
	store *Store
}

// NewLoanRepository creates the Redis-backed loan repository.
func NewLoanRepository(store *Store) *LoanRepository {
	return &LoanRepository{store: store}
}

// Save writes the full loan document. Last writer wins.
func (r *LoanRepository) Save(ctx context.Context, loan model.Loan) error {
	return r.store.setJSON(ctx, loanPrefix+loan.ID, loan)
}

// FindByID loads a loan by its storage id.
func (r *LoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	var loan model.Loan
	if err := r.store.getJSON(ctx, loanPrefix+id, &loan); err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Loan{}, errs.NotFound("loan", id)
		}
		return model.Loan{}, fmt.Errorf("find loan: %w", err)
	}
	return loan, nil
}

// FindByLoanID scans for the loan carrying the given business id.
func (r *LoanRepository) FindByLoanID(ctx context.Context, loanID string) (model.Loan, error) {
	var found *model.Loan
	err := r.store.forEachJSON(ctx, loanPrefix, func(raw []byte) error {
		var loan model.Loan
		if err := json.Unmarshal(raw, &loan); err != nil {
			return fmt.Errorf("unmarshal loan: %w", err)
		}
		if loan.LoanID == loanID {
			found = &loan
		}
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	if found == nil {
		return model.Loan{}, errs.NotFound("loan", loanID)
	}
	return *found, nil
}

// List returns loans matching the filter, newest first.
func (r *LoanRepository) List(ctx context.Context, filter port.LoanFilter) ([]model.Loan, error) {
	var out []model.Loan
	err := r.store.forEachJSON(ctx, loanPrefix, func(raw []byte) error {
		var loan model.Loan
		if err := json.Unmarshal(raw, &loan); err != nil {
			return fmt.Errorf("unmarshal loan: %w", err)
		}
		if filter.MemberID != "" && loan.MemberID != filter.MemberID {
			return nil
		}
		if filter.Status != "" && loan.Status != filter.Status {
			return nil
		}
		out = append(out, loan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
