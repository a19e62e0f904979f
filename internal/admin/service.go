// AngelaMos | 2026
// service.go

package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vayutech/vayu-backend/internal/band"
	"github.com/vayutech/vayu-backend/internal/config"
	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/family"
	"github.com/vayutech/vayu-backend/internal/identity"
	"github.com/vayutech/vayu-backend/internal/store"
	"github.com/vayutech/vayu-backend/internal/subscription"
)

// TokenIssuer mints admin session tokens.
type TokenIssuer interface {
	CreateSessionToken(userID, role, phone string) (string, time.Time, error)
}

// MemberLister exposes the per-user member registry.
type MemberLister interface {
	ListMembers(ctx context.Context, userID string) ([]family.FamilyMember, error)
}

// Ledger exposes the per-user subscription ledger.
type Ledger interface {
	List(ctx context.Context, userID string) ([]subscription.Subscription, error)
	Cancel(ctx context.Context, userID, subscriptionID string) (*subscription.Subscription, error)
}

// BandDesk exposes the band operations the back office drives.
type BandDesk interface {
	ListBands(ctx context.Context, userID string) ([]band.Band, error)
	ListRegistered(ctx context.Context) ([]band.RegisteredBand, error)
	ListInventory(ctx context.Context) ([]band.InventoryBand, error)
	AddToInventory(ctx context.Context, serial, bui string) (*band.InventoryBand, error)
	DeleteFromInventory(ctx context.Context, serial string) error
	Unregister(ctx context.Context, bandID string) error
}

type Service struct {
	store    store.Store
	accounts *store.Collection[Account]
	users    *store.Collection[identity.User]
	members  MemberLister
	subs     Ledger
	bands    BandDesk
	sessions TokenIssuer
	logger   *slog.Logger
}

func NewService(
	s store.Store,
	members MemberLister,
	subs Ledger,
	bands BandDesk,
	sessions TokenIssuer,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    s,
		accounts: store.NewCollection[Account](s, store.KeyAdminAccounts),
		users:    store.NewCollection[identity.User](s, store.KeyUsers),
		members:  members,
		subs:     subs,
		bands:    bands,
		sessions: sessions,
		logger:   logger,
	}
}

// Seed guarantees the super-admin account exists. The initial password
// comes from configuration and is hashed before it touches the store.
func (s *Service) Seed(ctx context.Context, cfg config.AdminConfig) error {
	accounts, err := s.accounts.GetAll(ctx)
	if err != nil {
		return err
	}

	email := strings.ToLower(cfg.Email)
	for i := range accounts {
		if accounts[i].Email == email {
			return nil
		}
	}

	hash, err := core.HashPassword(cfg.InitialPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	account := Account{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         cfg.Name,
		Role:         RoleSuperAdmin,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.accounts.PutAll(ctx, append(accounts, account)); err != nil {
		return err
	}

	s.logger.Info("seeded super admin account", "email", email)
	return nil
}

// Login checks email+password and issues an admin session token.
// Both an unknown email and a wrong password report the same error.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*Account, string, time.Time, error) {
	accounts, err := s.accounts.GetAll(ctx)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for i := range accounts {
		if accounts[i].Email != email {
			continue
		}

		ok, err := core.VerifyPassword(password, accounts[i].PasswordHash)
		if err != nil {
			return nil, "", time.Time{}, fmt.Errorf("admin login: %w", err)
		}
		if !ok {
			return nil, "", time.Time{}, core.ErrUnauthorized
		}

		token, expiresAt, err := s.sessions.CreateSessionToken(
			accounts[i].ID,
			identity.RoleAdmin,
			"",
		)
		if err != nil {
			return nil, "", time.Time{}, fmt.Errorf("admin login: %w", err)
		}

		return &accounts[i], token, expiresAt, nil
	}

	return nil, "", time.Time{}, core.ErrUnauthorized
}

// ListUsers returns every user enriched with counts for the list view.
// search matches name, email, phone, or UDC, case-insensitively.
func (s *Service) ListUsers(
	ctx context.Context,
	search string,
) ([]UserOverview, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]UserOverview, 0, len(users))
	for i := range users {
		if search != "" && !matchesUser(&users[i], search) {
			continue
		}

		overview, err := s.enrichUser(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *overview)
	}

	return out, nil
}

func matchesUser(u *identity.User, search string) bool {
	return strings.Contains(strings.ToLower(u.Name), search) ||
		strings.Contains(strings.ToLower(u.Email), search) ||
		strings.Contains(u.Phone, search) ||
		strings.Contains(strings.ToLower(u.UDC), search)
}

func (s *Service) enrichUser(
	ctx context.Context,
	u *identity.User,
) (*UserOverview, error) {
	members, err := s.members.ListMembers(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	bands, err := s.bands.ListBands(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subs.List(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	status := "none"
	planName := "No Plan"
	now := time.Now()
	for i := range subs {
		if subs[i].IsActive(now) {
			status = subscription.StatusActive
			planName = subs[i].PlanName
			break
		}
	}
	if status == "none" && len(subs) > 0 {
		status = subscription.StatusExpired
	}

	return &UserOverview{
		User:               *u,
		MemberCount:        len(members),
		BandCount:          len(bands),
		SubscriptionStatus: status,
		PlanName:           planName,
	}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*UserDetail, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var user *identity.User
	for i := range users {
		if users[i].ID == id {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", id, core.ErrNotFound)
	}

	members, err := s.members.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	bands, err := s.bands.ListBands(ctx, id)
	if err != nil {
		return nil, err
	}

	subs, err := s.subs.List(ctx, id)
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		User:          *user,
		Members:       members,
		Bands:         bands,
		Subscriptions: subs,
	}, nil
}

// DeleteUser removes the user record and the user-scoped collections.
// Entries in the global band index are left untouched; Unregister is
// the explicit path for retiring a registered band.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]identity.User, 0, len(users))
	found := false
	for i := range users {
		if users[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, users[i])
	}
	if !found {
		return fmt.Errorf("user %q: %w", id, core.ErrNotFound)
	}

	if err := s.users.PutAll(ctx, kept); err != nil {
		return err
	}

	for _, key := range []string{
		store.KeyMembers(id),
		store.KeyBands(id),
		store.KeySubscriptions(id),
	} {
		if err := s.store.Delete(ctx, key); err != nil &&
			!errors.Is(err, store.ErrKeyNotFound) {
			return fmt.Errorf("delete user %q: %w", id, err)
		}
	}

	s.logger.Info("deleted user", "user_id", id)
	return nil
}

// ListSubscriptions flattens every user's ledger with derived statuses.
func (s *Service) ListSubscriptions(
	ctx context.Context,
) ([]SubscriptionOverview, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []SubscriptionOverview
	for i := range users {
		subs, err := s.subs.List(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		for j := range subs {
			out = append(out, SubscriptionOverview{
				Subscription: subs[j],
				UserID:       users[i].ID,
				UserName:     users[i].Name,
			})
		}
	}

	return out, nil
}

// CancelSubscription locates the owning user and cancels through the
// ledger so the usual cancellation semantics apply.
func (s *Service) CancelSubscription(
	ctx context.Context,
	subscriptionID string,
) (*SubscriptionOverview, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		subs, err := s.subs.List(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}

		for j := range subs {
			if subs[j].ID != subscriptionID {
				continue
			}

			cancelled, err := s.subs.Cancel(ctx, users[i].ID, subscriptionID)
			if err != nil {
				return nil, err
			}
			return &SubscriptionOverview{
				Subscription: *cancelled,
				UserID:       users[i].ID,
				UserName:     users[i].Name,
			}, nil
		}
	}

	return nil, fmt.Errorf(
		"subscription %q: %w", subscriptionID, core.ErrNotFound)
}

// ListRegisteredBands enriches the global index with owner and member
// display names.
func (s *Service) ListRegisteredBands(
	ctx context.Context,
) ([]BandOverview, error) {
	registered, err := s.bands.ListRegistered(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for i := range users {
		names[users[i].ID] = users[i].Name
	}

	memberNames := map[string]string{}
	out := make([]BandOverview, 0, len(registered))
	for i := range registered {
		entry := BandOverview{
			RegisteredBand: registered[i],
			UserName:       names[registered[i].UserID],
		}

		if registered[i].MemberID != nil {
			memberID := *registered[i].MemberID
			if _, ok := memberNames[memberID]; !ok {
				members, err := s.members.ListMembers(
					ctx, registered[i].UserID)
				if err != nil {
					return nil, err
				}
				for j := range members {
					memberNames[members[j].ID] = members[j].FullName
				}
			}
			entry.MemberName = memberNames[memberID]
		}

		out = append(out, entry)
	}

	return out, nil
}

// ListInventory flags each provisioned band that has been claimed.
func (s *Service) ListInventory(ctx context.Context) ([]InventoryEntry, error) {
	inventory, err := s.bands.ListInventory(ctx)
	if err != nil {
		return nil, err
	}

	registered, err := s.bands.ListRegistered(ctx)
	if err != nil {
		return nil, err
	}

	claimed := make(map[string]bool, len(registered))
	for i := range registered {
		claimed[registered[i].Serial] = true
	}

	out := make([]InventoryEntry, 0, len(inventory))
	for i := range inventory {
		out = append(out, InventoryEntry{
			InventoryBand: inventory[i],
			IsRegistered:  claimed[inventory[i].Serial],
		})
	}

	return out, nil
}

func (s *Service) AddInventory(
	ctx context.Context,
	serial, bui string,
) (*band.InventoryBand, error) {
	return s.bands.AddToInventory(ctx, serial, bui)
}

func (s *Service) DeleteInventory(ctx context.Context, serial string) error {
	return s.bands.DeleteFromInventory(ctx, serial)
}

func (s *Service) UnregisterBand(ctx context.Context, bandID string) error {
	return s.bands.Unregister(ctx, bandID)
}
