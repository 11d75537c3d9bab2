package domain

import "fmt"

// KeyPrefix namespaces every key the engine reads or writes.
const KeyPrefix = "visearch:"

// VectorFieldName is the indexed vector field inside an index entry hash.
const VectorFieldName = "vector"

// PartitionIndexName returns the FT index name for a tenant partition.
// Tenant isolation is structural: the org ID is baked into every index
// name, so a query can never reach another tenant's vectors.
func PartitionIndexName(orgID, category string) string {
	return fmt.Sprintf("%s%s:%s:idx", KeyPrefix, orgID, category)
}

// PartitionEntryPrefix returns the key prefix for index entries in a partition.
func PartitionEntryPrefix(orgID, category string) string {
	return fmt.Sprintf("%s%s:%s:vec:", KeyPrefix, orgID, category)
}

// PartitionSetKey returns the key of the set holding an org's partition names.
func PartitionSetKey(orgID string) string {
	return fmt.Sprintf("%s%s:partitions", KeyPrefix, orgID)
}

// CatalogKey returns the hash key holding a product's attributes.
func CatalogKey(orgID, productID string) string {
	return fmt.Sprintf("%scatalog:%s:%s", KeyPrefix, orgID, productID)
}

// FeedbackKey returns the hash key holding a product's feedback counters.
func FeedbackKey(orgID, productID string) string {
	return fmt.Sprintf("%sfb:%s:%s", KeyPrefix, orgID, productID)
}

// ProfileKey returns the key holding a tenant's ranking profile JSON.
func ProfileKey(orgID string) string {
	return fmt.Sprintf("%sprofile:%s", KeyPrefix, orgID)
}
