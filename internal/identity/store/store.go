package store

import (
	"context"
	"errors"
	"time"

	"github.com/Soulfra/agent-router-sub005/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement it. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Identities() Identities
	Actions() Actions

	ApplyMigrations() error

	// WithTx executes fn within a transaction, rolling back when fn
	// returns an error and committing otherwise. This is the recommended
	// way to do multi-step writes (e.g. ledger update + action insert).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the store.
type Tx interface {
	Identities() Identities
	Actions() Actions

	Commit() error
	Rollback() error
}

// Identities persists identity records and their reputation ledgers.
type Identities interface {
	CreateIdentity(ctx context.Context, rec domain.Record) error
	GetIdentity(ctx context.Context, id string) (domain.Record, error)

	// ApplyAction applies one verified action to the ledger counters in
	// place: verified_actions always increments by one, commits by the
	// given delta, first_action is set once and last_action updated. The
	// increment happens inside the UPDATE so concurrent writers can never
	// lose each other's counts.
	ApplyAction(ctx context.Context, id string, commitsDelta int, at time.Time) error

	// SetTOTPSecret stores (or clears, with "") the TOTP enrolment.
	SetTOTPSecret(ctx context.Context, id, secret string) error
}

// Actions persists signed action records.
type Actions interface {
	CreateAction(ctx context.Context, rec domain.ActionRecord) error
	ListActions(ctx context.Context, identityID string, limit int) ([]domain.ActionRecord, error)

	// DeleteActionsBefore prunes records older than cutoff, returning the
	// number deleted. Used by housekeeping.
	DeleteActionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
