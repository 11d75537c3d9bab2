// Package request models a validated visual search request. Requests are
// immutable after construction; validation happens once at the boundary
// so no pipeline stage re-checks inputs.
package request

import (
	"fmt"

	"github.com/kailas-cloud/visearch/internal/domain"
	"github.com/kailas-cloud/visearch/internal/domain/region"
	"github.com/kailas-cloud/visearch/internal/domain/search/filter"
)

// Request limits.
const (
	DefaultTopK   = 20
	MaxTopK       = 100
	MaxTextLength = 1024
)

// Request is a validated, immutable search request.
type Request struct {
	orgID       string
	image       []float32
	text        []float32
	textQuery   string
	regionBBox  *region.BBox
	filters     filter.Filters
	topK        int
	offset      int
	lambda      *float64
	imageWeight *float64
	textWeight  *float64
}

// New validates and creates a request.
//
// topK semantics: nil means "use the default", an explicit 0 is a valid
// request that returns no rows but still reports the total candidate
// count. Values above MaxTopK are clamped.
func New(
	orgID string,
	image, text []float32,
	textQuery string,
	regionBBox *region.BBox,
	filters filter.Filters,
	topK *int,
	offset int,
	lambda *float64,
	imageWeight, textWeight *float64,
) (Request, error) {
	if orgID == "" {
		return Request{}, fmt.Errorf("%w: org id is required", domain.ErrInvalidRequest)
	}
	if len(image) == 0 {
		return Request{}, fmt.Errorf("%w: query image vector is required", domain.ErrInvalidRequest)
	}
	if len(text) > 0 && textQuery != "" {
		return Request{}, fmt.Errorf("%w: supply either a text vector or raw text, not both",
			domain.ErrInvalidRequest)
	}
	if len(textQuery) > MaxTextLength {
		return Request{}, fmt.Errorf("%w: text query too long (max %d chars)",
			domain.ErrInvalidRequest, MaxTextLength)
	}

	k := DefaultTopK
	if topK != nil {
		k = *topK
	}
	if k < 0 {
		return Request{}, fmt.Errorf("%w: topK must be non-negative", domain.ErrInvalidRequest)
	}
	if k > MaxTopK {
		k = MaxTopK
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("%w: offset must be non-negative", domain.ErrInvalidRequest)
	}
	if lambda != nil && (*lambda < 0 || *lambda > 1) {
		return Request{}, fmt.Errorf("%w: diversityLambda must be in [0,1]", domain.ErrInvalidRequest)
	}
	if (imageWeight == nil) != (textWeight == nil) {
		return Request{}, fmt.Errorf("%w: fusion weights must be set together", domain.ErrInvalidRequest)
	}
	if imageWeight != nil && (*imageWeight <= 0 || *textWeight < 0) {
		return Request{}, fmt.Errorf("%w: fusion weights must be positive", domain.ErrInvalidRequest)
	}

	return Request{
		orgID:       orgID,
		image:       image,
		text:        text,
		textQuery:   textQuery,
		regionBBox:  regionBBox,
		filters:     filters,
		topK:        k,
		offset:      offset,
		lambda:      lambda,
		imageWeight: imageWeight,
		textWeight:  textWeight,
	}, nil
}

// OrgID returns the tenant identifier.
func (r *Request) OrgID() string { return r.orgID }

// Image returns the query image vector.
func (r *Request) Image() []float32 { return r.image }

// Text returns the optional query text vector.
func (r *Request) Text() []float32 { return r.text }

// TextQuery returns the optional raw text query (embedded by the engine).
func (r *Request) TextQuery() string { return r.textQuery }

// Region returns the optional cropped-region constraint.
func (r *Request) Region() *region.BBox { return r.regionBBox }

// Filters returns the structured attribute filters.
func (r *Request) Filters() filter.Filters { return r.filters }

// TopK returns the requested result count.
func (r *Request) TopK() int { return r.topK }

// Offset returns the pagination offset.
func (r *Request) Offset() int { return r.offset }

// Lambda returns the MMR lambda override, nil to use the profile value.
func (r *Request) Lambda() *float64 { return r.lambda }

// FusionWeights returns the image/text fusion weight overrides, nil to
// use the profile values.
func (r *Request) FusionWeights() (image, text *float64) {
	return r.imageWeight, r.textWeight
}
