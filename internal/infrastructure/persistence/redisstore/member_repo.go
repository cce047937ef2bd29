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

const memberPrefix = "members:"

// MemberRepository stores members as whole JSON documents under
// members:<uuid>.
type MemberRepository struct {
	store *Store
}

// NewMemberRepository creates the Redis-backed member repository.
func NewMemberRepository(store *Store) *MemberRepository {
	return &MemberRepository{store: store}
}

// Save writes the member document.
func (r *MemberRepository) Save(ctx context.Context, member model.Member) error {
	return r.store.setJSON(ctx, memberPrefix+member.ID, member)
}

// FindByID loads a member by storage id.
func (r *MemberRepository) FindByID(ctx context.Context, id string) (model.Member, error) {
	var member model.Member
	if err := r.store.getJSON(ctx, memberPrefix+id, &member); err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Member{}, errs.NotFound("member", id)
		}
		return model.Member{}, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}

// FindByMemberID scans for the member carrying the given business id.
func (r *MemberRepository) FindByMemberID(ctx context.Context, memberID string) (model.Member, error) {
	return r.findBy(ctx, memberID, func(m model.Member) bool { return m.MemberID == memberID })
}

// FindByPhone scans for the member registered with the given phone number.
func (r *MemberRepository) FindByPhone(ctx context.Context, phone string) (model.Member, error) {
	return r.findBy(ctx, phone, func(m model.Member) bool { return m.Phone == phone })
}

// List returns all members sorted by business id.
func (r *MemberRepository) List(ctx context.Context) ([]model.Member, error) {
	var out []model.Member
	err := r.store.forEachJSON(ctx, memberPrefix, func(raw []byte) error {
		var member model.Member
		if err := json.Unmarshal(raw, &member); err != nil {
			return fmt.Errorf("unmarshal member: %w", err)
		}
		out = append(out, member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MemberID < out[j].MemberID
	})
	return out, nil
}

func (r *MemberRepository) findBy(ctx context.Context, needle string, match func(model.Member) bool) (model.Member, error) {
	var found *model.Member
	err := r.store.forEachJSON(ctx, memberPrefix, func(raw []byte) error {
		var member model.Member
		if err := json.Unmarshal(raw, &member); err != nil {
			return fmt.Errorf("unmarshal member: %w", err)
		}
		if match(member) {
			found = &member
		}
		return nil
	})
	if err != nil {
		return model.Member{}, err
	}
	if found == nil {
		return model.Member{}, errs.NotFound("member", needle)
	}
	return *found, nil
}
