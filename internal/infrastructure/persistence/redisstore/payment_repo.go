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

const paymentPrefix = "payments:"

// PaymentRepository stores payments as whole JSON documents under
// payments:<uuid>. Payments are write-once.
type PaymentRepository struct {
	store *Store
}

// NewPaymentRepository creates the Redis-backed payment repository.
func NewPaymentRepository(store *Store) *PaymentRepository {
	return &PaymentRepository{store: store}
}

// Save writes the payment document.
func (r *PaymentRepository) Save(ctx context.Context, payment model.Payment) error {
	return r.store.setJSON(ctx, paymentPrefix+payment.ID, payment)
}

// FindByID loads a payment by its storage id.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (model.Payment, error) {
	var payment model.Payment
	if err := r.store.getJSON(ctx, paymentPrefix+id, &payment); err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Payment{}, errs.NotFound("payment", id)
		}
		return model.Payment{}, fmt.Errorf("find payment: %w", err)
	}
	return payment, nil
}

// FindByPaymentID scans for the payment carrying the given business id.
func (r *PaymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (model.Payment, error) {
	var found *model.Payment
	err := r.store.forEachJSON(ctx, paymentPrefix, func(raw []byte) error {
		var payment model.Payment
		if err := json.Unmarshal(raw, &payment); err != nil {
			return fmt.Errorf("unmarshal payment: %w", err)
		}
		if payment.PaymentID == paymentID {
			found = &payment
		}
		return nil
	})
	if err != nil {
		return model.Payment{}, err
	}
	if found == nil {
		return model.Payment{}, errs.NotFound("payment", paymentID)
	}
	return *found, nil
}

// List returns payments matching the filter, newest first.
func (r *PaymentRepository) List(ctx context.Context, filter port.PaymentFilter) ([]model.Payment, error) {
	var out []model.Payment
	err := r.store.forEachJSON(ctx, paymentPrefix, func(raw []byte) error {
		var payment model.Payment
		if err := json.Unmarshal(raw, &payment); err != nil {
			return fmt.Errorf("unmarshal payment: %w", err)
		}
		if filter.MemberID != "" && payment.MemberID != filter.MemberID {
			return nil
		}
		if filter.LoanID != "" && payment.LoanID != filter.LoanID {
			return nil
		}
		if filter.Kind != "" && payment.Kind != filter.Kind {
			return nil
		}
		out = append(out, payment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}
