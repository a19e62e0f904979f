// AngelaMos | 2026
// service.go

package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vayutech/vayu-backend/internal/core"
)

// Verification codes are demo-grade: no code is actually delivered and
// any 6-digit value is accepted, matching the original product behavior.
var (
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	codePattern  = regexp.MustCompile(`^\d{6}$`)
)

const pendingTTL = 10 * time.Minute

type Service struct {
	repo     Repository
	sessions *SessionManager
}

func NewService(repo Repository, sessions *SessionManager) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// RequestCode records the phone as pending verification. It always
// succeeds for a well-formed number; re-requesting refreshes the window.
func (s *Service) RequestCode(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf(
			"request code: invalid mobile number: %w",
			core.ErrInvalidInput,
		)
	}

	return s.repo.PutPending(ctx, PendingVerification{
		Phone:       phone,
		RequestedAt: time.Now(),
	})
}

type VerifyResult struct {
	IsNewUser bool
	Token     string
	ExpiresAt time.Time
	User      *User
}

// VerifyCode resolves the pending phone. An existing account gets a
// session immediately; an unknown phone keeps its pending record alive
// so registration can complete.
func (s *Service) VerifyCode(
	ctx context.Context,
	phone, code string,
) (*VerifyResult, error) {
	if !codePattern.MatchString(code) {
		return nil, fmt.Errorf(
			"verify code: code must be 6 digits: %w",
			core.ErrInvalidInput,
		)
	}

	pending, err := s.repo.GetPending(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("verify code: %w", err)
	}

	if pending.IsExpired(pendingTTL) {
		//nolint:errcheck // stale record cleanup is best effort
		_ = s.repo.DeletePending(ctx, phone)
		return nil, fmt.Errorf(
			"verify code: verification window expired: %w",
			core.ErrInvalidInput,
		)
	}

	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return &VerifyResult{IsNewUser: true}, nil
		}
		return nil, err
	}

	token, expiresAt, err := s.sessions.CreateSessionToken(
		user.ID,
		RoleUser,
		user.Phone,
	)
	if err != nil {
		return nil, fmt.Errorf("verify code: %w", err)
	}

	if err := s.repo.DeletePending(ctx, phone); err != nil {
		return nil, err
	}

	return &VerifyResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// CompleteRegistration turns a verified pending phone into a User and
// opens a session.
func (s *Service) CompleteRegistration(
	ctx context.Context,
	phone, name, email string,
) (*VerifyResult, error) {
	pending, err := s.repo.GetPending(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("complete registration: %w", err)
	}

	if pending.IsExpired(pendingTTL) {
		//nolint:errcheck // stale record cleanup is best effort
		_ = s.repo.DeletePending(ctx, phone)
		return nil, fmt.Errorf(
			"complete registration: verification window expired: %w",
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:        uuid.New().String(),
		UDC:       NewUDC(),
		Phone:     phone,
		Name:      name,
		Email:     strings.ToLower(email),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	if err := s.repo.DeletePending(ctx, phone); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.sessions.CreateSessionToken(
		user.ID,
		RoleUser,
		user.Phone,
	)
	if err != nil {
		return nil, fmt.Errorf("complete registration: %w", err)
	}

	return &VerifyResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
