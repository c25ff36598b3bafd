// internal/domain/models/relief.go
package models

// Canonical urgency levels for assistance requests.
//
// These are the wire values used by the relief data API and the values the
// dashboard sends back in the "urgency" filter parameter.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// Urgencies lists urgency levels from least to most urgent.
var Urgencies = []string{
	UrgencyLow,
	UrgencyMedium,
	UrgencyHigh,
	UrgencyCritical,
}

// Request lifecycle states.
const (
	RequestStatusPending      = "pending"
	RequestStatusAcknowledged = "acknowledged"
	RequestStatusInProgress   = "in_progress"
	RequestStatusResolved     = "resolved"
	RequestStatusCancelled    = "cancelled"
)

// RequestStatuses is the full set of request status values.
var RequestStatuses = []string{
	RequestStatusPending,
	RequestStatusAcknowledged,
	RequestStatusInProgress,
	RequestStatusResolved,
	RequestStatusCancelled,
}

// Contribution lifecycle states.
const (
	ContributionStatusAvailable   = "available"
	ContributionStatusCommitted   = "committed"
	ContributionStatusDelivered   = "delivered"
	ContributionStatusUnavailable = "unavailable"
)

// ContributionStatuses is the full set of contribution status values.
var ContributionStatuses = []string{
	ContributionStatusAvailable,
	ContributionStatusCommitted,
	ContributionStatusDelivered,
	ContributionStatusUnavailable,
}

// Kinds of help a request can ask for. These are capitalized on the wire.
const (
	AssistanceFood       = "Food"
	AssistanceWater      = "Water"
	AssistanceShelter    = "Shelter"
	AssistanceMedical    = "Medical"
	AssistanceEvacuation = "Evacuation"
	AssistanceMedicine   = "Medicine"
	AssistanceOther      = "Other"
)

// AssistanceTypes is the full set of assistance type values.
var AssistanceTypes = []string{
	AssistanceFood,
	AssistanceWater,
	AssistanceShelter,
	AssistanceMedical,
	AssistanceEvacuation,
	AssistanceMedicine,
	AssistanceOther,
}

// Top-level contribution kinds.
const (
	ContributionGoods    = "Goods"
	ContributionServices = "Services"
	ContributionLabor    = "Labor"
)

// ContributionTypes is the full set of top-level contribution kinds.
var ContributionTypes = []string{
	ContributionGoods,
	ContributionServices,
	ContributionLabor,
}

// GoodsTypes, ServicesTypes and LaborTypes are the sub-types that may
// accompany the matching top-level contribution kind.
var (
	GoodsTypes    = []string{"Food", "Medicine", "Clothing", "Water", "Other"}
	ServicesTypes = []string{"Medical", "Transportation", "Shelter", "Communication", "Other"}
	LaborTypes    = []string{"Construction", "Cleanup", "Distribution", "Medical", "Other"}
)

// ValidUrgency reports whether s is a known urgency level.
func ValidUrgency(s string) bool { return contains(Urgencies, s) }

// ValidRequestStatus reports whether s is a known request status.
func ValidRequestStatus(s string) bool { return contains(RequestStatuses, s) }

// ValidContributionStatus reports whether s is a known contribution status.
func ValidContributionStatus(s string) bool { return contains(ContributionStatuses, s) }

// ValidAssistanceType reports whether s is a known assistance type.
func ValidAssistanceType(s string) bool { return contains(AssistanceTypes, s) }

// ValidContributionType reports whether s is a known top-level contribution kind.
func ValidContributionType(s string) bool { return contains(ContributionTypes, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultSiteName is shown in page headers when no site name is configured.
const DefaultSiteName = "Flood Relief"
