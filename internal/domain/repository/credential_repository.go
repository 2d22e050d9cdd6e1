// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"booking/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrCredentialNotFound is returned when no calendar credential is stored.
// After a revocation purge this is the authoritative "disconnected" signal.
var ErrCredentialNotFound = errors.New("calendar credential not found")

// CredentialRepository persists the single OAuth credential of the external
// calendar account. There is at most one record per provider.
type CredentialRepository interface {
	// SaveCredential inserts or replaces the credential for its provider.
	SaveCredential(ctx context.Context, credential *entity.CalendarCredential) error

	// FindCredential retrieves the stored credential for a provider.
	FindCredential(ctx context.Context, provider string) (*entity.CalendarCredential, error)

	// DeleteCredential purges the stored credential. Recovering from a purge
	// requires a brand-new consent flow.
	DeleteCredential(ctx context.Context, provider string) error
}
