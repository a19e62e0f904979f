// AngelaMos | 2026
// service.go

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/store"
)

type Service struct {
	store      store.Store
	allergies  *store.Collection[Allergy]
	conditions *store.Collection[Condition]
	faqs       *store.Collection[FAQ]
}

func NewService(s store.Store) *Service {
	return &Service{
		store:      s,
		allergies:  store.NewCollection[Allergy](s, store.KeyMasterAllergies),
		conditions: store.NewCollection[Condition](s, store.KeyMasterConditions),
		faqs:       store.NewCollection[FAQ](s, store.KeyMasterFAQs),
	}
}

// EnsureDefaults seeds the reference lists the first time the process
// sees an absent key. An explicitly emptied list stays empty.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	if err := seedIfAbsent(ctx, s.store, s.allergies, defaultAllergies); err != nil {
		return err
	}
	if err := seedIfAbsent(ctx, s.store, s.conditions, defaultConditions); err != nil {
		return err
	}
	return seedIfAbsent(ctx, s.store, s.faqs, defaultFAQs)
}

func seedIfAbsent[T any](
	ctx context.Context,
	s store.Store,
	col *store.Collection[T],
	defaults []T,
) error {
	_, err := s.Get(ctx, col.Key())
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("seed %q: %w", col.Key(), err)
	}

	return col.PutAll(ctx, defaults)
}

func (s *Service) ListAllergies(ctx context.Context) ([]Allergy, error) {
	return s.allergies.GetAll(ctx)
}

func (s *Service) AddAllergy(
	ctx context.Context,
	name, category, severity string,
) (*Allergy, error) {
	if severity != SeverityLow &&
		severity != SeverityMedium &&
		severity != SeverityHigh {
		return nil, fmt.Errorf(
			"add allergy: invalid severity %q: %w",
			severity,
			core.ErrInvalidInput,
		)
	}

	items, err := s.allergies.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entry := Allergy{
		ID:       uuid.New().String(),
		Name:     name,
		Category: category,
		Severity: severity,
	}

	if err := s.allergies.PutAll(ctx, append(items, entry)); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *Service) DeleteAllergy(ctx context.Context, id string) error {
	items, err := s.allergies.GetAll(ctx)
	if err != nil {
		return err
	}

	kept, found := removeByID(items, id, func(a Allergy) string { return a.ID })
	if !found {
		return fmt.Errorf("delete allergy %q: %w", id, core.ErrNotFound)
	}

	return s.allergies.PutAll(ctx, kept)
}

func (s *Service) ListConditions(ctx context.Context) ([]Condition, error) {
	return s.conditions.GetAll(ctx)
}

func (s *Service) AddCondition(
	ctx context.Context,
	name, category string,
	critical bool,
) (*Condition, error) {
	items, err := s.conditions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entry := Condition{
		ID:       uuid.New().String(),
		Name:     name,
		Category: category,
		Critical: critical,
	}

	if err := s.conditions.PutAll(ctx, append(items, entry)); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *Service) DeleteCondition(ctx context.Context, id string) error {
	items, err := s.conditions.GetAll(ctx)
	if err != nil {
		return err
	}

	kept, found := removeByID(items, id, func(c Condition) string { return c.ID })
	if !found {
		return fmt.Errorf("delete condition %q: %w", id, core.ErrNotFound)
	}

	return s.conditions.PutAll(ctx, kept)
}

func (s *Service) ListFAQs(ctx context.Context) ([]FAQ, error) {
	return s.faqs.GetAll(ctx)
}

func (s *Service) AddFAQ(
	ctx context.Context,
	question, answer, category string,
) (*FAQ, error) {
	items, err := s.faqs.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entry := FAQ{
		ID:       uuid.New().String(),
		Question: question,
		Answer:   answer,
		Category: category,
	}

	if err := s.faqs.PutAll(ctx, append(items, entry)); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *Service) DeleteFAQ(ctx context.Context, id string) error {
	items, err := s.faqs.GetAll(ctx)
	if err != nil {
		return err
	}

	kept, found := removeByID(items, id, func(f FAQ) string { return f.ID })
	if !found {
		return fmt.Errorf("delete faq %q: %w", id, core.ErrNotFound)
	}

	return s.faqs.PutAll(ctx, kept)
}

func removeByID[T any](items []T, id string, key func(T) string) ([]T, bool) {
	kept := items[:0]
	found := false
	for _, item := range items {
		if key(item) == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	return kept, found
}
