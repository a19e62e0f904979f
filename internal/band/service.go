// AngelaMos | 2026
// service.go

package band

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vayutech/vayu-backend/internal/core"
)

// MemberLinker is the member side of the band↔member link, implemented
// by the family service. The band service is the single mutator of
// both pointer halves; no other code path writes either.
type MemberLinker interface {
	MemberBand(ctx context.Context, userID, memberID string) (string, error)
	SetMemberBand(ctx context.Context, userID, memberID, bandID string) error
}

// SlotProvider reports free member slots, implemented by the
// subscription service.
type SlotProvider interface {
	Available(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo    Repository
	members MemberLinker
	slots   SlotProvider
}

func NewService(
	repo Repository,
	members MemberLinker,
	slots SlotProvider,
) *Service {
	return &Service{repo: repo, members: members, slots: slots}
}

// Register claims a provisioned band for a user. Both halves of the
// pair are upper-cased before comparison. A serial already in the
// global index fails with ErrAlreadyRegistered, checked by serial
// alone and before the pair match, so a claimed serial reports
// ErrAlreadyRegistered even with a wrong identifier. A pair absent
// from the inventory fails with ErrInvalidCredential no matter which
// half mismatches.
func (s *Service) Register(
	ctx context.Context,
	userID, serial, bui string,
) (*Band, error) {
	serial = strings.ToUpper(strings.TrimSpace(serial))
	bui = strings.ToUpper(strings.TrimSpace(bui))

	global, err := s.repo.ListGlobal(ctx)
	if err != nil {
		return nil, err
	}

	for i := range global {
		if global[i].Serial == serial {
			return nil, fmt.Errorf("register band: %w", ErrAlreadyRegistered)
		}
	}

	inventory, err := s.repo.ListInventory(ctx)
	if err != nil {
		return nil, err
	}

	valid := false
	for i := range inventory {
		if inventory[i].Serial == serial && inventory[i].BUI == bui {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("register band: %w", ErrInvalidCredential)
	}

	band := Band{
		ID:           uuid.New().String(),
		Serial:       serial,
		BUI:          bui,
		MemberID:     nil,
		RegisteredAt: time.Now(),
	}

	bands, err := s.repo.ListBands(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.PutBands(ctx, userID, append(bands, band)); err != nil {
		return nil, err
	}

	global = append(global, RegisteredBand{Band: band, UserID: userID})
	if err := s.repo.PutGlobal(ctx, global); err != nil {
		return nil, err
	}

	return &band, nil
}

func (s *Service) ListBands(
	ctx context.Context,
	userID string,
) ([]Band, error) {
	return s.repo.ListBands(ctx, userID)
}

// Link attaches a band to a member, swapping out any existing links on
// either side. Linking a band to its current member is a no-op. A
// member not yet holding a band consumes one slot; linking fails hard
// with ErrQuotaExceeded when none is available. A swap (the member
// already holds a band) consumes nothing.
func (s *Service) Link(
	ctx context.Context,
	userID, bandID, memberID string,
) (*Band, error) {
	bands, err := s.repo.ListBands(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := -1
	for i := range bands {
		if bands[i].ID == bandID {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, fmt.Errorf("link band %q: %w", bandID, core.ErrNotFound)
	}

	if bands[target].MemberID != nil && *bands[target].MemberID == memberID {
		return &bands[target], nil
	}

	prevBandOfMember, err := s.members.MemberBand(ctx, userID, memberID)
	if err != nil {
		return nil, fmt.Errorf("link band: %w", err)
	}

	if prevBandOfMember == "" {
		available, err := s.slots.Available(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("link band: %w", err)
		}
		if available <= 0 {
			return nil, fmt.Errorf("link band: %w", ErrQuotaExceeded)
		}
	}

	prevMemberOfBand := ""
	if bands[target].MemberID != nil {
		prevMemberOfBand = *bands[target].MemberID
	}

	// Rewrite the band side in one pass: the target takes the member,
	// any other band holding this member lets it go.
	for i := range bands {
		if i == target {
			bands[i].MemberID = &memberID
			continue
		}
		if bands[i].MemberID != nil && *bands[i].MemberID == memberID {
			bands[i].MemberID = nil
		}
	}

	if err := s.repo.PutBands(ctx, userID, bands); err != nil {
		return nil, err
	}

	if prevMemberOfBand != "" && prevMemberOfBand != memberID {
		if err := s.members.SetMemberBand(
			ctx, userID, prevMemberOfBand, "",
		); err != nil {
			return nil, fmt.Errorf("link band: clear previous member: %w", err)
		}
	}

	if err := s.members.SetMemberBand(ctx, userID, memberID, bandID); err != nil {
		return nil, fmt.Errorf("link band: %w", err)
	}

	if err := s.syncGlobal(ctx, userID, bands); err != nil {
		return nil, err
	}

	return &bands[target], nil
}

// Unlink clears both pointer halves symmetrically.
func (s *Service) Unlink(
	ctx context.Context,
	userID, bandID string,
) (*Band, error) {
	bands, err := s.repo.ListBands(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := -1
	for i := range bands {
		if bands[i].ID == bandID {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, fmt.Errorf("unlink band %q: %w", bandID, core.ErrNotFound)
	}

	memberID := ""
	if bands[target].MemberID != nil {
		memberID = *bands[target].MemberID
	}
	bands[target].MemberID = nil

	if err := s.repo.PutBands(ctx, userID, bands); err != nil {
		return nil, err
	}

	if memberID != "" {
		if err := s.members.SetMemberBand(ctx, userID, memberID, ""); err != nil {
			return nil, fmt.Errorf("unlink band: %w", err)
		}
	}

	if err := s.syncGlobal(ctx, userID, bands); err != nil {
		return nil, err
	}

	return &bands[target], nil
}

// ClearMemberLink drops the band-side pointer for a deleted member.
// Called by the family service; the bands themselves survive.
func (s *Service) ClearMemberLink(
	ctx context.Context,
	userID, memberID string,
) error {
	bands, err := s.repo.ListBands(ctx, userID)
	if err != nil {
		return err
	}

	changed := false
	for i := range bands {
		if bands[i].MemberID != nil && *bands[i].MemberID == memberID {
			bands[i].MemberID = nil
			changed = true
		}
	}

	if !changed {
		return nil
	}

	if err := s.repo.PutBands(ctx, userID, bands); err != nil {
		return err
	}

	return s.syncGlobal(ctx, userID, bands)
}

// syncGlobal mirrors a user's band pointers into the denormalized
// global index so public scan resolution never reads a stale link.
func (s *Service) syncGlobal(
	ctx context.Context,
	userID string,
	bands []Band,
) error {
	global, err := s.repo.ListGlobal(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]*Band, len(bands))
	for i := range bands {
		byID[bands[i].ID] = &bands[i]
	}

	for i := range global {
		if global[i].UserID != userID {
			continue
		}
		if b, ok := byID[global[i].ID]; ok {
			global[i].MemberID = b.MemberID
		}
	}

	return s.repo.PutGlobal(ctx, global)
}

// AddToInventory provisions a new (serial, bui) pair. Either half
// colliding with an existing pair is rejected.
func (s *Service) AddToInventory(
	ctx context.Context,
	serial, bui string,
) (*InventoryBand, error) {
	serial = strings.ToUpper(strings.TrimSpace(serial))
	bui = strings.ToUpper(strings.TrimSpace(bui))

	if serial == "" || bui == "" {
		return nil, fmt.Errorf(
			"add to inventory: serial and bui required: %w",
			core.ErrInvalidInput,
		)
	}

	inventory, err := s.repo.ListInventory(ctx)
	if err != nil {
		return nil, err
	}

	for i := range inventory {
		if inventory[i].Serial == serial || inventory[i].BUI == bui {
			return nil, fmt.Errorf(
				"add to inventory: %w",
				core.ErrDuplicateKey,
			)
		}
	}

	entry := InventoryBand{Serial: serial, BUI: bui}
	if err := s.repo.PutInventory(ctx, append(inventory, entry)); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *Service) DeleteFromInventory(ctx context.Context, serial string) error {
	serial = strings.ToUpper(strings.TrimSpace(serial))

	inventory, err := s.repo.ListInventory(ctx)
	if err != nil {
		return err
	}

	kept := inventory[:0]
	found := false
	for _, b := range inventory {
		if b.Serial == serial {
			found = true
			continue
		}
		kept = append(kept, b)
	}

	if !found {
		return fmt.Errorf(
			"delete from inventory %q: %w",
			serial,
			core.ErrNotFound,
		)
	}

	return s.repo.PutInventory(ctx, kept)
}

func (s *Service) ListInventory(ctx context.Context) ([]InventoryBand, error) {
	return s.repo.ListInventory(ctx)
}

func (s *Service) ListRegistered(ctx context.Context) ([]RegisteredBand, error) {
	return s.repo.ListGlobal(ctx)
}

// Unregister removes a band from the global index and its owner's
// collection, and nulls the linked member's back-pointer.
func (s *Service) Unregister(ctx context.Context, bandID string) error {
	global, err := s.repo.ListGlobal(ctx)
	if err != nil {
		return err
	}

	var entry *RegisteredBand
	kept := make([]RegisteredBand, 0, len(global))
	for i := range global {
		if global[i].ID == bandID {
			entry = &global[i]
			continue
		}
		kept = append(kept, global[i])
	}

	if entry == nil {
		return fmt.Errorf("unregister band %q: %w", bandID, core.ErrNotFound)
	}

	if err := s.repo.PutGlobal(ctx, kept); err != nil {
		return err
	}

	bands, err := s.repo.ListBands(ctx, entry.UserID)
	if err != nil {
		return err
	}

	memberID := ""
	keptBands := bands[:0]
	for _, b := range bands {
		if b.ID == bandID {
			if b.MemberID != nil {
				memberID = *b.MemberID
			}
			continue
		}
		keptBands = append(keptBands, b)
	}

	if err := s.repo.PutBands(ctx, entry.UserID, keptBands); err != nil {
		return err
	}

	if memberID != "" {
		if err := s.members.SetMemberBand(
			ctx, entry.UserID, memberID, "",
		); err != nil {
			return fmt.Errorf("unregister band: %w", err)
		}
	}

	return nil
}
