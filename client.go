// Package visearch is the ingestion and administration client for the
// visual search engine: partition provisioning, embedding entry upserts,
// catalog attribute writes, and ranking profile management. The serving
// path is the HTTP API under cmd/visearch.
package visearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/visearch/internal/db"
	dbRedis "github.com/kailas-cloud/visearch/internal/db/redis"
	catalogrepo "github.com/kailas-cloud/visearch/internal/repository/catalog"
	indexrepo "github.com/kailas-cloud/visearch/internal/repository/index"
	profilerepo "github.com/kailas-cloud/visearch/internal/repository/profile"
)

// Client is the visearch ingestion SDK entry point.
type Client struct {
	store    db.Store
	admin    *indexrepo.Admin
	catalog  *catalogrepo.Repo
	profiles *profilerepo.Repo
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		dimension:        defaultDimension,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("visearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("visearch: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("visearch: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	return &Client{
		store: store,
		admin: indexrepo.NewAdmin(store, indexrepo.AdminConfig{
			Dimension:       cfg.dimension,
			HNSWM:           cfg.hnswM,
			HNSWEFConstruct: cfg.hnswEFConstruct,
		}),
		catalog:  catalogrepo.New(store),
		profiles: profilerepo.New(store),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsurePartition provisions the vector index for an org/category
// partition and registers it for search fan-out. Idempotent.
func (c *Client) EnsurePartition(ctx context.Context, orgID, category string) error {
	return c.admin.EnsurePartition(ctx, orgID, category)
}

// UpsertEntry indexes one embedding entry into a partition. The vector
// must match the client's configured dimension.
func (c *Client) UpsertEntry(ctx context.Context, orgID, category string, e Entry) error {
	return c.admin.UpsertEntry(ctx, orgID, category, entryToInternal(e))
}

// DeleteEntry removes an embedding entry from a partition.
func (c *Client) DeleteEntry(ctx context.Context, orgID, category, imageID string) error {
	return c.admin.DeleteEntry(ctx, orgID, category, imageID)
}

// PutAttributes writes a product's catalog attributes, used by the
// filtering and business-rule stages at query time.
func (c *Client) PutAttributes(ctx context.Context, orgID string, attrs Attributes) error {
	return c.catalog.Put(ctx, orgID, attributesToInternal(attrs))
}

// DeleteAttributes removes a product's catalog entry. Candidates without
// attributes are dropped at query time.
func (c *Client) DeleteAttributes(ctx context.Context, orgID, productID string) error {
	return c.catalog.Delete(ctx, orgID, productID)
}

// SaveProfile validates and stores a tenant's ranking profile.
// Zero-valued profile fields keep the engine defaults.
func (c *Client) SaveProfile(ctx context.Context, p Profile) error {
	dp, err := profileToInternal(p)
	if err != nil {
		return err
	}
	return c.profiles.Save(ctx, dp)
}
