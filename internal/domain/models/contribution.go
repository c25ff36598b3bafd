// internal/domain/models/contribution.go
package models

import "strings"

// Contribution is an offer of goods, services or labor published by the
// relief data API.
type Contribution struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	MobileNumber  string  `json:"mobile_number"`
	MobileNumber2 *string `json:"mobile_number_2"`
	Email         string  `json:"email"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	ContributionTypes []string `json:"contribution_types"` // subset of ContributionTypes
	GoodsTypes        []string `json:"goods_types"`        // only when Goods is offered
	ServicesTypes     []string `json:"services_types"`     // only when Services is offered
	LaborTypes        []string `json:"labor_types"`        // only when Labor is offered

	CoverageRadiusKm float64 `json:"coverage_radius_km"`
	Status           string  `json:"status"` // available | committed | delivered | unavailable

	Verified         bool      `json:"verified"`
	VerifiedByName   *string   `json:"verified_by_name"`
	VerifiedByUserID *string   `json:"verified_by_user_id"`
	VerifiedAt       Timestamp `json:"verified_at"`

	PickupRequired    bool    `json:"pickup_required"`
	AvailabilityNotes *string `json:"availability_notes"`
	AdditionalNotes   *string `json:"additional_notes"`

	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`

	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Offers reports whether the contribution lists the given top-level kind.
func (c Contribution) Offers(kind string) bool {
	return contains(c.ContributionTypes, kind)
}

// SubTypes returns the sub-type list for a top-level kind. The list is
// reported only when that kind is actually offered, so a stray goods_types
// array on a Services-only contribution is ignored.
func (c Contribution) SubTypes(kind string) []string {
	if !c.Offers(kind) {
		return nil
	}
	switch kind {
	case ContributionGoods:
		return c.GoodsTypes
	case ContributionServices:
		return c.ServicesTypes
	case ContributionLabor:
		return c.LaborTypes
	}
	return nil
}

// Notes returns the additional notes, or "" when absent.
func (c Contribution) Notes() string {
	if c.AdditionalNotes == nil {
		return ""
	}
	return *c.AdditionalNotes
}

// OfferSummary describes what is offered, e.g. "Goods: Food, Water; Labor".
func (c Contribution) OfferSummary() string {
	offers := make([]string, 0, len(c.ContributionTypes))
	for _, kind := range c.ContributionTypes {
		if subs := c.SubTypes(kind); len(subs) > 0 {
			offers = append(offers, kind+": "+strings.Join(subs, ", "))
			continue
		}
		offers = append(offers, kind)
	}
	return strings.Join(offers, "; ")
}
