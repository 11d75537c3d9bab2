// Package result holds the caller-visible search response: ranked rows
// plus the pagination and timing envelope.
package result

// Result is a single caller-visible ranked match.
type Result struct {
	ProductID   string
	VariantID   string
	ImageID     string
	Score       float64
	Rank        int
	ReasonCodes []string
}

// Response is the complete search response envelope.
type Response struct {
	SearchID string
	Results  []Result
	// Total is the candidate count before pagination, not the page size.
	Total          int
	HasNext        bool
	HasPrev        bool
	TookMs         int64
	ModelVersion   string
	AppliedFilters []string
	Degraded       bool
}

// Empty returns an empty response for an empty tenant partition.
func Empty(searchID, modelVersion string, appliedFilters []string) Response {
	return Response{
		SearchID:       searchID,
		Results:        []Result{},
		ModelVersion:   modelVersion,
		AppliedFilters: appliedFilters,
	}
}
