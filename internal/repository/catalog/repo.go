// Package catalog implements the read-side adapter for product
// attributes stored as Redis hashes by the catalog ingestion job.
package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/visearch/internal/domain"
	domcat "github.com/kailas-cloud/visearch/internal/domain/catalog"
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HSet(ctx context.Context, key string, fields map[string]string) error
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/search.CatalogReader.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Fetch reads attributes for the given products in one pipelined
// round-trip. Products without a catalog entry are absent from the
// returned map; the caller decides what a missing entry means.
func (r *Repo) Fetch(ctx context.Context, orgID string, productIDs []string) (map[string]domcat.Attributes, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = domain.CatalogKey(orgID, id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog attributes: %w", err)
	}

	attrs := make(map[string]domcat.Attributes, len(productIDs))
	for i, h := range hashes {
		if len(h) == 0 {
			continue
		}
		attrs[productIDs[i]] = parseAttributes(productIDs[i], h)
	}
	return attrs, nil
}

// Put writes a product's attributes (seeding and admin paths).
func (r *Repo) Put(ctx context.Context, orgID string, attrs domcat.Attributes) error {
	if attrs.ProductID == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidRequest)
	}
	key := domain.CatalogKey(orgID, attrs.ProductID)
	if err := r.store.HSet(ctx, key, buildHashFields(attrs)); err != nil {
		return fmt.Errorf("put catalog attributes %s: %w", attrs.ProductID, err)
	}
	return nil
}

// Delete removes a product's catalog entry.
func (r *Repo) Delete(ctx context.Context, orgID, productID string) error {
	if err := r.store.Del(ctx, domain.CatalogKey(orgID, productID)); err != nil {
		return fmt.Errorf("delete catalog attributes %s: %w", productID, err)
	}
	return nil
}
