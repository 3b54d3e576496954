package store

import (
	"context"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
)

// Store is the persistence collaborator for user profiles. Implementations
// must treat SaveProfile as a full atomic overwrite of prior state, and
// LoadProfile must substitute a fresh skeleton for unreadable records
// rather than surfacing partial data.
type Store interface {
	Close() error

	// LoadProfile returns the stored profile. The bool reports whether a
	// prior record existed; when it is false, or when the stored record
	// is corrupt, the returned profile is a default skeleton for id.
	LoadProfile(ctx context.Context, id string) (profile.Profile, bool, error)

	// SaveProfile overwrites the stored state for p.ID as a whole.
	SaveProfile(ctx context.Context, p profile.Profile) error

	// ListProfiles returns all profiles in insertion order.
	ListProfiles(ctx context.Context) ([]profile.Profile, error)

	// FindByName returns the first profile with the given name.
	FindByName(ctx context.Context, name string) (profile.Profile, bool, error)
}
