// Package profile stores tenant ranking profiles as JSON documents.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/visearch/internal/db"
	"github.com/kailas-cloud/visearch/internal/domain"
	domprof "github.com/kailas-cloud/visearch/internal/domain/profile"
)

// store is the consumer interface for profile documents (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
}

// Repo implements usecase/search.ProfileReader.
type Repo struct {
	store store
}

// New creates a profile repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get loads a tenant's ranking profile. A missing document maps to
// ErrProfileNotFound so the caller can fall back to defaults.
func (r *Repo) Get(ctx context.Context, orgID string) (domprof.Profile, error) {
	raw, err := r.store.JSONGet(ctx, domain.ProfileKey(orgID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprof.Profile{}, fmt.Errorf("org %s: %w", orgID, domain.ErrProfileNotFound)
		}
		return domprof.Profile{}, fmt.Errorf("load profile %s: %w", orgID, err)
	}

	var doc profileDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domprof.Profile{}, fmt.Errorf("decode profile %s: %w", orgID, err)
	}

	p, err := doc.toDomain(orgID)
	if err != nil {
		return domprof.Profile{}, fmt.Errorf("profile %s: %w", orgID, err)
	}
	return p, nil
}

// Save validates and persists a tenant's ranking profile.
func (r *Repo) Save(ctx context.Context, p domprof.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(fromDomain(p))
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.OrgID, err)
	}
	if err := r.store.JSONSet(ctx, domain.ProfileKey(p.OrgID), "$", data); err != nil {
		return fmt.Errorf("save profile %s: %w", p.OrgID, err)
	}
	return nil
}
