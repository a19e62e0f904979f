// AngelaMos | 2026
// store.go

// Package store persists named collections as JSON blobs under string keys.
// Every entity collection in the system lives under one key; readers and
// writers always move whole collections. There is no locking across
// processes: two writers racing on the same key are last-write-wins.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value exists under the key.
// Callers that treat an absent collection as empty should check for it.
var ErrKeyNotFound = errors.New("store: key not found")

// Store is the narrow key-value contract every backend satisfies.
// Backend failures are wrapped with core.ErrStorage so callers can
// distinguish "storage broke" from domain errors.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Collection keys. Scoped collections embed the owning user id; global
// collections are single system-wide blobs.
const (
	KeyUsers                = "users"
	KeyAllRegisteredBands   = "all_registered_bands"
	KeyMasterBands          = "master_bands"
	KeyMasterAllergies      = "master_allergies"
	KeyMasterConditions     = "master_conditions"
	KeyMasterFAQs           = "master_faqs"
	KeyNotifications        = "notifications"
	KeySupportTickets       = "support_tickets"
	KeyAdminAccounts        = "admin_accounts"
	KeyPendingVerifications = "pending_verifications"
)

func KeyMembers(userID string) string {
	return "members:" + userID
}

func KeyBands(userID string) string {
	return "bands:" + userID
}

func KeySubscriptions(userID string) string {
	return "subscriptions:" + userID
}
