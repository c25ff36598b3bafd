// internal/domain/models/envelope.go
package models

// LocationFilter restricts results to a radius around a point. It is sent
// to the API as a single JSON-encoded "location" parameter.
type LocationFilter struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}

// FiltersApplied echoes the filters the server actually used.
type FiltersApplied struct {
	Type             string          `json:"type,omitempty"`
	Status           string          `json:"status,omitempty"`
	Urgency          *string         `json:"urgency,omitempty"`
	Establishment    *string         `json:"establishment,omitempty"`
	AssistanceType   *string         `json:"assistance_type,omitempty"`
	ContributionType *string         `json:"contribution_type,omitempty"`
	Search           *string         `json:"search,omitempty"`
	Location         *LocationFilter `json:"location,omitempty"`
	Sort             string          `json:"sort,omitempty"`
}

// PaginationMeta describes the window the server returned.
// ReturnedRequests and ReturnedContributions never exceed Limit.
type PaginationMeta struct {
	Limit                 int `json:"limit"`
	Offset                int `json:"offset"`
	ReturnedRequests      int `json:"returned_requests"`
	ReturnedContributions int `json:"returned_contributions"`
}

// Meta carries server-side totals across all pages plus the echo of the
// request that produced the envelope.
type Meta struct {
	TotalRequests      int            `json:"total_requests"`
	TotalContributions int            `json:"total_contributions"`
	FiltersApplied     FiltersApplied `json:"filters_applied"`
	Pagination         PaginationMeta `json:"pagination"`
}

// Envelope is one page of results. It is replaced wholesale on every
// successful fetch and never merged with a previous page.
type Envelope struct {
	Requests      []AssistanceRequest `json:"requests"`
	Contributions []Contribution      `json:"contributions"`
	Meta          Meta                `json:"meta"`
}
