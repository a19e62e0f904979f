// AngelaMos | 2026
// service_test.go

package identity

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vayutech/vayu-backend/internal/config"
	"github.com/vayutech/vayu-backend/internal/core"
	"github.com/vayutech/vayu-backend/internal/store"
)

func newSessionManager(t *testing.T) *SessionManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	sm, err := NewSessionManager(config.JWTConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		SessionExpire:  24 * time.Hour,
		Issuer:         "vayu-backend",
		Audience:       "vayu-api",
	})
	require.NoError(t, err)
	return sm
}

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(store.NewMemory()), newSessionManager(t))
}

func TestRequestCodeValidatesPhone(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.RequestCode(ctx, "9876543210"))

	for _, phone := range []string{"1234567890", "98765", "987654321012", "abcdefghij"} {
		require.ErrorIs(t, svc.RequestCode(ctx, phone), core.ErrInvalidInput, phone)
	}
}

func TestVerifyCodeRequiresPending(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.VerifyCode(ctx, "9876543210", "123456")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestVerifyCodeValidatesFormat(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.RequestCode(ctx, "9876543210"))

	for _, code := range []string{"12345", "1234567", "12345a", ""} {
		_, err := svc.VerifyCode(ctx, "9876543210", code)
		require.ErrorIs(t, err, core.ErrInvalidInput, code)
	}
}

// Any six digits pass; there is no real OTP delivery to check against.
func TestVerifyCodeUnknownPhoneReportsNewUser(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.RequestCode(ctx, "9876543210"))

	result, err := svc.VerifyCode(ctx, "9876543210", "000000")
	require.NoError(t, err)
	assert.True(t, result.IsNewUser)
	assert.Empty(t, result.Token)

	// The pending record survives so registration can complete.
	reg, err := svc.CompleteRegistration(
		ctx, "9876543210", "Asha Rao", "Asha@Example.com")
	require.NoError(t, err)
	require.NotNil(t, reg.User)
	assert.Equal(t, "asha@example.com", reg.User.Email)
	assert.True(t, strings.HasPrefix(reg.User.UDC, "UDC"))
	assert.NotEmpty(t, reg.Token)
}

func TestVerifyCodeExistingUserGetsSession(t *testing.T) {
	ctx := context.Background()
	sm := newSessionManager(t)
	svc := NewService(NewRepository(store.NewMemory()), sm)

	require.NoError(t, svc.RequestCode(ctx, "9876543210"))
	reg, err := svc.CompleteRegistration(
		ctx, "9876543210", "Asha Rao", "asha@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.RequestCode(ctx, "9876543210"))
	result, err := svc.VerifyCode(ctx, "9876543210", "424242")
	require.NoError(t, err)
	assert.False(t, result.IsNewUser)
	require.NotNil(t, result.User)
	assert.Equal(t, reg.User.ID, result.User.ID)

	claims, err := sm.VerifySessionToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, "9876543210", claims.Phone)

	// Session consumed the pending record.
	_, err = svc.VerifyCode(ctx, "9876543210", "424242")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCompleteRegistrationRejectsDuplicatePhone(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.RequestCode(ctx, "9876543210"))
	_, err := svc.CompleteRegistration(
		ctx, "9876543210", "Asha Rao", "asha@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.RequestCode(ctx, "9876543210"))
	_, err = svc.CompleteRegistration(
		ctx, "9876543210", "Imposter", "other@example.com")
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateProfileIsPartial(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.RequestCode(ctx, "9876543210"))
	reg, err := svc.CompleteRegistration(
		ctx, "9876543210", "Asha Rao", "asha@example.com")
	require.NoError(t, err)

	email := "New@Example.com"
	updated, err := svc.UpdateProfile(ctx, reg.User.ID, UpdateProfileRequest{
		Email: &email,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "Asha Rao", updated.Name)
	assert.Equal(t, reg.User.UDC, updated.UDC)
}

func TestVerifySessionTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	sm := newSessionManager(t)

	_, err := sm.VerifySessionToken(ctx, "not-a-token")
	require.Error(t, err)

	// A token signed by a different key fails verification.
	other := newSessionManager(t)
	token, _, err := other.CreateSessionToken("user-1", RoleUser, "9876543210")
	require.NoError(t, err)

	_, err = sm.VerifySessionToken(ctx, token)
	require.Error(t, err)
}
