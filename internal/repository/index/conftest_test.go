package index

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/visearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	mu            sync.Mutex
	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index string) (int, error)
	sMembersFn    func(ctx context.Context, key string) ([]string, error)
	knnCalls      []string
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.mu.Lock()
	m.knnCalls = append(m.knnCalls, q.IndexName)
	m.mu.Unlock()
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index)
	}
	return 0, nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.sMembersFn != nil {
		return m.sMembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.knnCalls)
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, Config{
		PartitionTimeout: time.Second,
		RetryAttempts:    3,
		RetryBaseDelay:   time.Millisecond,
	})
	return repo, ms
}

func testBlob(vals ...float32) string {
	buf := make([]byte, len(vals)*4)
	for i, f := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

func imageEntry(key, productID string, score float64) db.SearchEntry {
	return db.SearchEntry{
		Key:   key,
		Score: score,
		Fields: map[string]string{
			fieldProductID: productID,
			fieldImageID:   productID + "-img",
			fieldLevel:     "image",
			"vector":       testBlob(0.1, 0.2),
		},
	}
}
