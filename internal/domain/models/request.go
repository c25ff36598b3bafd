// internal/domain/models/request.go
package models

import "fmt"

// AssistanceRequest is a flood victim's request for help as published by the
// relief data API. Values are read-only snapshots; the dashboard never
// writes them back.
type AssistanceRequest struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	MobileNumber  string `json:"mobile_number"`
	MobileNumber2 string `json:"mobile_number_2"`
	Email         string `json:"email,omitempty"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	NumMen      int `json:"num_men"`
	NumWomen    int `json:"num_women"`
	NumChildren int `json:"num_children"`

	Urgency           string   `json:"urgency"`          // low | medium | high | critical
	Status            string   `json:"status"`           // pending | acknowledged | in_progress | resolved | cancelled
	AssistanceTypes   []string `json:"assistance_types"` // subset of AssistanceTypes
	AdditionalNotes   string   `json:"additional_notes"`
	ImageURLs         []string `json:"image_urls"`
	EstablishmentType string   `json:"establishment_type"`

	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`

	ResolvedByUserID   *string   `json:"resolved_by_user_id"`
	ResolvedByName     *string   `json:"resolved_by_name"`
	ResolvedAt         Timestamp `json:"resolved_at"`
	AcknowledgedAt     Timestamp `json:"acknowledged_at,omitempty"`
	AcknowledgedBy     *string   `json:"acknowledged_by,omitempty"`
	AcknowledgedByName *string   `json:"acknowledged_by_name,omitempty"`

	// DistanceKm is only present when the query carried a location filter.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// People returns the total head count on the request.
func (r AssistanceRequest) People() int {
	return r.NumMen + r.NumWomen + r.NumChildren
}

// PeopleSummary formats the head count as "men/women/children".
func (r AssistanceRequest) PeopleSummary() string {
	return fmt.Sprintf("%d/%d/%d", r.NumMen, r.NumWomen, r.NumChildren)
}
