// Package feedback models the engagement signals consumed by reranker
// weight tuning. The engine only records them; training is out of band.
package feedback

import (
	"fmt"

	"github.com/kailas-cloud/visearch/internal/domain"
)

// Type is the kind of engagement signal.
type Type string

// Supported signal types.
const (
	Click    Type = "click"
	Purchase Type = "purchase"
	Like     Type = "like"
	Dislike  Type = "dislike"
)

// IsValid reports whether t is a known signal type.
func (t Type) IsValid() bool {
	switch t {
	case Click, Purchase, Like, Dislike:
		return true
	}
	return false
}

// Signal is a single engagement event tied to a search.
type Signal struct {
	searchID   string
	productID  string
	signalType Type
}

// New validates and creates a feedback signal.
func New(searchID, productID string, signalType Type) (Signal, error) {
	if searchID == "" {
		return Signal{}, fmt.Errorf("%w: search id is required", domain.ErrInvalidSignal)
	}
	if productID == "" {
		return Signal{}, fmt.Errorf("%w: product id is required", domain.ErrInvalidSignal)
	}
	if !signalType.IsValid() {
		return Signal{}, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidSignal, signalType)
	}
	return Signal{searchID: searchID, productID: productID, signalType: signalType}, nil
}

// SearchID returns the originating search identifier.
func (s Signal) SearchID() string { return s.searchID }

// ProductID returns the product the signal applies to.
func (s Signal) ProductID() string { return s.productID }

// Type returns the signal type.
func (s Signal) Type() Type { return s.signalType }
