// AngelaMos | 2026
// service.go

package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vayutech/vayu-backend/internal/core"
)

const planDuration = 365 * 24 * time.Hour

// LinkCounter reports how many of a user's members currently hold a
// band link. Implemented by the family service.
type LinkCounter interface {
	LinkedMemberCount(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo  Repository
	links LinkCounter
}

func NewService(repo Repository, links LinkCounter) *Service {
	return &Service{repo: repo, links: links}
}

func (s *Service) Purchase(
	ctx context.Context,
	userID, planID string,
) (*Subscription, error) {
	plan, ok := Plans[planID]
	if !ok {
		return nil, fmt.Errorf(
			"purchase: unknown plan %q: %w",
			planID,
			core.ErrInvalidInput,
		)
	}

	now := time.Now()
	sub := &Subscription{
		ID:          uuid.New().String(),
		Plan:        plan.ID,
		PlanName:    plan.Name,
		MemberCount: plan.MemberCount,
		Price:       plan.Price,
		StartDate:   now,
		EndDate:     now.Add(planDuration),
		Status:      StatusActive,
	}

	if err := s.repo.Append(ctx, userID, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Cancel marks the subscription cancelled. Members already linked stay
// linked; the quota is only re-evaluated at the next Link attempt.
func (s *Service) Cancel(
	ctx context.Context,
	userID, subscriptionID string,
) (*Subscription, error) {
	subs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range subs {
		if subs[i].ID == subscriptionID {
			subs[i].Status = StatusCancelled
			if err := s.repo.Update(ctx, userID, &subs[i]); err != nil {
				return nil, err
			}
			return &subs[i], nil
		}
	}

	return nil, fmt.Errorf(
		"cancel subscription %q: %w",
		subscriptionID,
		core.ErrNotFound,
	)
}

// List returns the user's subscriptions with status recomputed.
func (s *Service) List(
	ctx context.Context,
	userID string,
) ([]Subscription, error) {
	subs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range subs {
		subs[i].Status = subs[i].DerivedStatus(now)
	}

	return subs, nil
}

// Slots computes the member-slot ledger: total granted by active
// unexpired plans, used by members holding a band link.
func (s *Service) Slots(ctx context.Context, userID string) (*SlotInfo, error) {
	subs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	total := 0
	for i := range subs {
		if subs[i].IsActive(now) {
			total += subs[i].MemberCount
		}
	}

	used, err := s.links.LinkedMemberCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &SlotInfo{
		Total:     total,
		Used:      used,
		Available: total - used,
	}, nil
}

// Available reports free slots for the band service's quota check.
func (s *Service) Available(ctx context.Context, userID string) (int, error) {
	info, err := s.Slots(ctx, userID)
	if err != nil {
		return 0, err
	}
	return info.Available, nil
}
