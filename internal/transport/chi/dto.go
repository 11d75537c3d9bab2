package chi

import (
	"fmt"

	"github.com/kailas-cloud/visearch/internal/domain/region"
	"github.com/kailas-cloud/visearch/internal/domain/search/filter"
	"github.com/kailas-cloud/visearch/internal/domain/search/request"
	"github.com/kailas-cloud/visearch/internal/domain/search/result"
)

// searchRequestDTO is the POST /v1/search request body.
type searchRequestDTO struct {
	OrgID           string      `json:"orgId"`
	QueryImage      []float32   `json:"queryImage"`
	QueryText       []float32   `json:"queryText,omitempty"`
	QueryTextRaw    string      `json:"queryTextRaw,omitempty"`
	RegionBBox      *bboxDTO    `json:"regionBBox,omitempty"`
	Filters         *filtersDTO `json:"filters,omitempty"`
	TopK            *int        `json:"topK,omitempty"`
	Offset          int         `json:"offset,omitempty"`
	DiversityLambda *float64    `json:"diversityLambda,omitempty"`
	ImageWeight     *float64    `json:"imageWeight,omitempty"`
	TextWeight      *float64    `json:"textWeight,omitempty"`
}

type bboxDTO struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type filtersDTO struct {
	PriceMin    *float64 `json:"priceMin,omitempty"`
	PriceMax    *float64 `json:"priceMax,omitempty"`
	Brand       []string `json:"brand,omitempty"`
	Category    []string `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	InStockOnly bool     `json:"inStockOnly,omitempty"`
}

// searchResponseDTO is the POST /v1/search response body.
type searchResponseDTO struct {
	SearchID   string          `json:"searchId"`
	Results    []resultItemDTO `json:"results"`
	Total      int             `json:"total"`
	Pagination paginationDTO   `json:"pagination"`
	Metadata   metadataDTO     `json:"metadata"`
	Degraded   bool            `json:"degraded,omitempty"`
}

type resultItemDTO struct {
	ProductID   string   `json:"productId"`
	VariantID   string   `json:"variantId,omitempty"`
	ImageID     string   `json:"imageId"`
	Score       float64  `json:"score"`
	Rank        int      `json:"rank"`
	ReasonCodes []string `json:"reasonCodes"`
}

type paginationDTO struct {
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

type metadataDTO struct {
	SearchTimeMs   int64    `json:"searchTimeMs"`
	ModelVersion   string   `json:"modelVersion"`
	AppliedFilters []string `json:"appliedFilters"`
}

// feedbackRequestDTO is the POST /v1/feedback request body.
type feedbackRequestDTO struct {
	OrgID     string `json:"orgId"`
	SearchID  string `json:"searchId"`
	ProductID string `json:"productId"`
	Type      string `json:"type"`
}

// errorDTO is the error envelope for all non-2xx responses.
type errorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// healthDTO is the GET /healthz response body.
type healthDTO struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchRequestFromDTO(dto searchRequestDTO) (request.Request, error) {
	var bbox *region.BBox
	if dto.RegionBBox != nil {
		b, err := region.New(dto.RegionBBox.X, dto.RegionBBox.Y, dto.RegionBBox.Width, dto.RegionBBox.Height)
		if err != nil {
			return request.Request{}, fmt.Errorf("parse region: %w", err)
		}
		bbox = &b
	}

	var filters filter.Filters
	if dto.Filters != nil {
		f, err := filter.New(
			dto.Filters.PriceMin, dto.Filters.PriceMax,
			dto.Filters.Brand, dto.Filters.Category, dto.Filters.Tags,
			dto.Filters.InStockOnly,
		)
		if err != nil {
			return request.Request{}, fmt.Errorf("parse filters: %w", err)
		}
		filters = f
	}

	req, err := request.New(
		dto.OrgID, dto.QueryImage, dto.QueryText, dto.QueryTextRaw,
		bbox, filters,
		dto.TopK, dto.Offset, dto.DiversityLambda,
		dto.ImageWeight, dto.TextWeight,
	)
	if err != nil {
		return request.Request{}, fmt.Errorf("build search request: %w", err)
	}
	return req, nil
}

func searchResponseToDTO(resp result.Response) searchResponseDTO {
	items := make([]resultItemDTO, len(resp.Results))
	for i, r := range resp.Results {
		reasons := r.ReasonCodes
		if reasons == nil {
			reasons = []string{}
		}
		items[i] = resultItemDTO{
			ProductID:   r.ProductID,
			VariantID:   r.VariantID,
			ImageID:     r.ImageID,
			Score:       r.Score,
			Rank:        r.Rank,
			ReasonCodes: reasons,
		}
	}

	applied := resp.AppliedFilters
	if applied == nil {
		applied = []string{}
	}

	return searchResponseDTO{
		SearchID: resp.SearchID,
		Results:  items,
		Total:    resp.Total,
		Pagination: paginationDTO{
			HasNext: resp.HasNext,
			HasPrev: resp.HasPrev,
		},
		Metadata: metadataDTO{
			SearchTimeMs:   resp.TookMs,
			ModelVersion:   resp.ModelVersion,
			AppliedFilters: applied,
		},
		Degraded: resp.Degraded,
	}
}
