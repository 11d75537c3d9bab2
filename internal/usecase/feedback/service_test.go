package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/feedback"
)

// --- Mocks ---

type mockRecorder struct {
	err  error
	sigs []feedback.Signal
	orgs []string
}

func (m *mockRecorder) Record(_ context.Context, orgID string, sig feedback.Signal) error {
	if m.err != nil {
		return m.err
	}
	m.orgs = append(m.orgs, orgID)
	m.sigs = append(m.sigs, sig)
	return nil
}

// --- Tests ---

func TestRecord_Success(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(rec)

	err := svc.Record(context.Background(), "acme", "srch-1", "prod-1", feedback.Purchase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.sigs) != 1 {
		t.Fatalf("expected 1 recorded signal, got %d", len(rec.sigs))
	}
	if rec.orgs[0] != "acme" {
		t.Errorf("unexpected org: %s", rec.orgs[0])
	}
	if rec.sigs[0].ProductID() != "prod-1" || rec.sigs[0].Type() != feedback.Purchase {
		t.Errorf("unexpected signal: %+v", rec.sigs[0])
	}
}

func TestRecord_InvalidType(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(rec)

	err := svc.Record(context.Background(), "acme", "srch-1", "prod-1", feedback.Type("view"))
	if !errors.Is(err, domain.ErrInvalidSignal) {
		t.Errorf("expected ErrInvalidSignal, got %v", err)
	}
	if len(rec.sigs) != 0 {
		t.Errorf("invalid signal must not be recorded")
	}
}

func TestRecord_MissingFields(t *testing.T) {
	svc := New(&mockRecorder{})

	if err := svc.Record(context.Background(), "acme", "", "prod-1", feedback.Click); !errors.Is(err, domain.ErrInvalidSignal) {
		t.Errorf("expected ErrInvalidSignal for missing search id, got %v", err)
	}
	if err := svc.Record(context.Background(), "acme", "srch-1", "", feedback.Click); !errors.Is(err, domain.ErrInvalidSignal) {
		t.Errorf("expected ErrInvalidSignal for missing product id, got %v", err)
	}
}

func TestRecord_StoreError(t *testing.T) {
	storeErr := errors.New("conn refused")
	svc := New(&mockRecorder{err: storeErr})

	err := svc.Record(context.Background(), "acme", "srch-1", "prod-1", feedback.Like)
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
