package index

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/visearch/internal/db"
	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
)

// adminStore is the consumer interface for partition provisioning and
// entry writes (ISP). The read path uses the narrower store interface.
type adminStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// AdminConfig holds partition index build parameters.
type AdminConfig struct {
	// Dimension is the embedding dimensionality all entries must match.
	Dimension int
	// HNSWM is the max edges per HNSW node. Zero uses the engine default.
	HNSWM int
	// HNSWEFConstruct is the build-time candidate list size.
	HNSWEFConstruct int
}

// ApplyDefaults fills zero values with production defaults.
func (c *AdminConfig) ApplyDefaults() {
	if c.Dimension <= 0 {
		c.Dimension = 512
	}
	if c.HNSWM <= 0 {
		c.HNSWM = 16
	}
	if c.HNSWEFConstruct <= 0 {
		c.HNSWEFConstruct = 200
	}
}

// Entry is one indexed embedding: a whole product image or a detected
// region crop within it.
type Entry struct {
	ImageID          string
	ProductID        string
	VariantID        string
	Level            candidate.Level
	RegionConfidence float64
	Vector           []float32
}

// Admin provisions partition indexes and writes entries. It is the
// ingestion-side counterpart of Repo.
type Admin struct {
	store adminStore
	cfg   AdminConfig
}

// NewAdmin creates the ingestion-side index repository.
func NewAdmin(s adminStore, cfg AdminConfig) *Admin {
	cfg.ApplyDefaults()
	return &Admin{store: s, cfg: cfg}
}

// EnsurePartition creates the FT index for an org/category partition if
// it does not exist and registers the category in the partition set.
// Idempotent.
func (a *Admin) EnsurePartition(ctx context.Context, orgID, category string) error {
	name := domain.PartitionIndexName(orgID, category)

	exists, err := a.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check partition index %s: %w", name, err)
	}
	if !exists {
		def, err := db.NewIndex(name).
			Prefix(domain.PartitionEntryPrefix(orgID, category)).
			Tag(fieldLevel).
			VectorHNSW(
				domain.VectorFieldName, a.cfg.Dimension,
				db.DistanceCosine, a.cfg.HNSWM, a.cfg.HNSWEFConstruct,
			).
			Build()
		if err != nil {
			return fmt.Errorf("build partition index %s: %w", name, err)
		}
		if err := a.store.CreateIndex(ctx, def); err != nil {
			return fmt.Errorf("create partition index %s: %w", name, err)
		}
	}

	if err := a.store.SAdd(ctx, domain.PartitionSetKey(orgID), category); err != nil {
		return fmt.Errorf("register partition %s/%s: %w", orgID, category, err)
	}
	return nil
}

// UpsertEntry writes one embedding entry into a partition. The partition
// must have been provisioned with EnsurePartition first.
func (a *Admin) UpsertEntry(ctx context.Context, orgID, category string, e Entry) error {
	if e.ImageID == "" || e.ProductID == "" {
		return fmt.Errorf("%w: image id and product id are required", domain.ErrInvalidRequest)
	}
	if len(e.Vector) != a.cfg.Dimension {
		return fmt.Errorf("%w: entry has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(e.Vector), a.cfg.Dimension)
	}

	fields := map[string]string{
		fieldProductID:         e.ProductID,
		fieldImageID:           e.ImageID,
		domain.VectorFieldName: vectorToBytes(e.Vector),
	}
	if e.VariantID != "" {
		fields[fieldVariantID] = e.VariantID
	}
	if e.Level == candidate.LevelRegion {
		fields[fieldLevel] = string(candidate.LevelRegion)
		fields[fieldRegionConf] = strconv.FormatFloat(e.RegionConfidence, 'f', -1, 64)
	} else {
		fields[fieldLevel] = string(candidate.LevelImage)
	}

	key := domain.PartitionEntryPrefix(orgID, category) + e.ImageID
	if err := a.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("upsert entry %s: %w", e.ImageID, err)
	}
	return nil
}

// DeleteEntry removes one embedding entry from a partition.
func (a *Admin) DeleteEntry(ctx context.Context, orgID, category, imageID string) error {
	key := domain.PartitionEntryPrefix(orgID, category) + imageID
	if err := a.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete entry %s: %w", imageID, err)
	}
	return nil
}
