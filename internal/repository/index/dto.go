package index

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/visearch/internal/db"
	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/search/candidate"
)

// Field names of an index entry hash.
const (
	fieldProductID  = "product_id"
	fieldVariantID  = "variant_id"
	fieldImageID    = "image_id"
	fieldLevel      = "level"
	fieldRegionConf = "region_conf"
)

// parseEntries converts FT.SEARCH hits into pipeline candidates. Entries
// without a product ID are skipped: they cannot be resolved against the
// catalog or deduplicated.
func parseEntries(sr *db.SearchResult, keyPrefix string) []candidate.Candidate {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	cands := make([]candidate.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		c, ok := parseEntry(entry, keyPrefix)
		if !ok {
			continue
		}
		cands = append(cands, c)
	}
	return cands
}

func parseEntry(entry db.SearchEntry, keyPrefix string) (candidate.Candidate, bool) {
	productID := entry.Fields[fieldProductID]
	if productID == "" {
		return candidate.Candidate{}, false
	}

	imageID := entry.Fields[fieldImageID]
	if imageID == "" {
		imageID = strings.TrimPrefix(entry.Key, keyPrefix)
	}

	c := candidate.Candidate{
		ProductID: productID,
		VariantID: entry.Fields[fieldVariantID],
		ImageID:   imageID,
		Level:     candidate.LevelImage,
		Vector:    bytesToVector(entry.Fields[domain.VectorFieldName]),
		ANNScore:  entry.Score,
	}
	c.AddReason(candidate.ReasonANNMatch)

	if entry.Fields[fieldLevel] == string(candidate.LevelRegion) {
		c.Level = candidate.LevelRegion
		c.AddReason(candidate.ReasonRegionMatch)
		if conf, err := strconv.ParseFloat(entry.Fields[fieldRegionConf], 64); err == nil {
			c.RegionConfidence = conf
		}
	}

	return c, true
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per
// float, little-endian), the blob layout FT indexes expect.
func vectorToBytes(v []float32) string {
	b := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return string(b)
}

// bytesToVector deserializes a binary string to []float32 (little-endian).
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
