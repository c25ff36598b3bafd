// internal/app/system/querystate/state.go
package querystate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/floodrelief/internal/app/system/floodapi"
	"github.com/dalemusser/floodrelief/internal/app/system/paging"
	"github.com/dalemusser/floodrelief/internal/domain/models"
)

// Tab selects which record type the dashboard shows.
type Tab string

const (
	TabRequests      Tab = "requests"
	TabContributions Tab = "contributions"
	TabAll           Tab = "all"
)

// Tabs lists tabs in display order.
var Tabs = []Tab{TabRequests, TabContributions, TabAll}

// Sort is the server-side ordering.
type Sort string

const (
	SortNewest  Sort = "newest"
	SortOldest  Sort = "oldest"
	SortNearest Sort = "nearest"
)

// Sorts lists sort orders in display order.
var Sorts = []Sort{SortNewest, SortOldest, SortNearest}

// All is the sentinel filter value meaning "no filter".
const All = "all"

// Filter names a filterable field. The names double as API parameter names.
type Filter string

const (
	FilterStatus           Filter = "status"
	FilterUrgency          Filter = "urgency"
	FilterEstablishment    Filter = "establishment"
	FilterAssistanceType   Filter = "assistance_type"
	FilterContributionType Filter = "contribution_type"
)

// Filters lists every filter name.
var Filters = []Filter{
	FilterStatus,
	FilterUrgency,
	FilterEstablishment,
	FilterAssistanceType,
	FilterContributionType,
}

var (
	ErrInvalidTab         = errors.New("invalid tab")
	ErrInvalidSort        = errors.New("invalid sort order")
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrUnknownFilter      = errors.New("unknown filter")
	ErrInvalidFilterValue = errors.New("invalid filter value")
	ErrInvalidLocation    = errors.New("invalid location")
)

// State is the complete description of what the dashboard should request
// next. It is a comparable value; every With* method returns a modified
// copy and leaves the receiver untouched.
//
// Filter fields hold "" when unset. The "all" sentinel is normalized to ""
// on the way in, so an unset filter is never sent to the API.
type State struct {
	Tab    Tab
	Search string // committed (debounced) search text

	Status           string
	Urgency          string
	Establishment    string
	AssistanceType   string
	ContributionType string

	// Location is unset when RadiusKm is zero.
	Location models.LocationFilter

	Sort    Sort
	Page    int
	PerPage int
}

// Default returns the initial dashboard state: requests tab, newest first,
// page 1 of DefaultPageSize rows.
func Default() State {
	return State{
		Tab:     TabRequests,
		Sort:    SortNewest,
		Page:    1,
		PerPage: paging.DefaultPageSize,
	}
}

// ValidTab reports whether t is a known tab.
func ValidTab(t Tab) bool {
	for _, v := range Tabs {
		if v == t {
			return true
		}
	}
	return false
}

// ValidSort reports whether s is a known sort order.
func ValidSort(s Sort) bool {
	for _, v := range Sorts {
		if v == s {
			return true
		}
	}
	return false
}

// HasLocation reports whether a location filter is set.
func (s State) HasLocation() bool { return s.Location.RadiusKm > 0 }

// Filter returns the value of the named filter, "" when unset.
func (s State) Filter(name Filter) string {
	switch name {
	case FilterStatus:
		return s.Status
	case FilterUrgency:
		return s.Urgency
	case FilterEstablishment:
		return s.Establishment
	case FilterAssistanceType:
		return s.AssistanceType
	case FilterContributionType:
		return s.ContributionType
	}
	return ""
}

// ActiveFilters counts the filters (including search and location) that
// narrow the result set.
func (s State) ActiveFilters() int {
	n := 0
	for _, f := range Filters {
		if s.Filter(f) != "" {
			n++
		}
	}
	if s.Search != "" {
		n++
	}
	if s.HasLocation() {
		n++
	}
	return n
}

// WithTab switches tabs and resets to page 1. Leaving the requests tab
// clears the urgency filter, which only applies to requests; coming back
// does not restore it.
func (s State) WithTab(t Tab) (State, error) {
	if !ValidTab(t) {
		return s, fmt.Errorf("%w: %q", ErrInvalidTab, t)
	}
	if t == s.Tab {
		return s, nil
	}
	s.Tab = t
	if t != TabRequests {
		s.Urgency = ""
	}
	s.Page = 1
	return s, nil
}

// WithFilter sets the named filter and resets to page 1. An empty value or
// All clears the filter.
func (s State) WithFilter(name Filter, value string) (State, error) {
	value = normalizeFilterValue(value)
	if err := validateFilter(name, value); err != nil {
		return s, err
	}
	if s.Filter(name) == value {
		return s, nil
	}
	switch name {
	case FilterStatus:
		s.Status = value
	case FilterUrgency:
		s.Urgency = value
	case FilterEstablishment:
		s.Establishment = value
	case FilterAssistanceType:
		s.AssistanceType = value
	case FilterContributionType:
		s.ContributionType = value
	}
	s.Page = 1
	return s, nil
}

// WithSearch sets the committed search text and resets to page 1.
func (s State) WithSearch(text string) State {
	text = strings.TrimSpace(text)
	if text == s.Search {
		return s
	}
	s.Search = text
	s.Page = 1
	return s
}

// WithSort changes the ordering and resets to page 1.
func (s State) WithSort(order Sort) (State, error) {
	if !ValidSort(order) {
		return s, fmt.Errorf("%w: %q", ErrInvalidSort, order)
	}
	if order == s.Sort {
		return s, nil
	}
	s.Sort = order
	s.Page = 1
	return s, nil
}

// WithPerPage changes the page size and resets to page 1. Filters are kept.
func (s State) WithPerPage(n int) (State, error) {
	if !paging.ValidPageSize(n) {
		return s, fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	if n == s.PerPage {
		return s, nil
	}
	s.PerPage = n
	s.Page = 1
	return s, nil
}

// WithPage moves to page n, clamped into [1, totalPages].
func (s State) WithPage(n, totalPages int) State {
	s.Page = paging.Clamp(n, totalPages)
	return s
}

// WithLocation sets a radius filter around lat/lng and resets to page 1.
func (s State) WithLocation(lat, lng, radiusKm float64) (State, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 || radiusKm <= 0 {
		return s, fmt.Errorf("%w: lat=%v lng=%v radius_km=%v", ErrInvalidLocation, lat, lng, radiusKm)
	}
	loc := models.LocationFilter{Lat: lat, Lng: lng, RadiusKm: radiusKm}
	if loc == s.Location {
		return s, nil
	}
	s.Location = loc
	s.Page = 1
	return s, nil
}

// WithoutLocation clears the radius filter and resets to page 1.
func (s State) WithoutLocation() State {
	if !s.HasLocation() {
		return s
	}
	s.Location = models.LocationFilter{}
	if s.Sort == SortNearest {
		s.Sort = SortNewest
	}
	s.Page = 1
	return s
}

// Query derives the API request for s. Unset filters are omitted, limit is
// the page size and offset is (page-1)*perPage.
func (s State) Query() floodapi.Query {
	q := floodapi.Query{
		Type:             string(s.Tab),
		Limit:            s.PerPage,
		Offset:           paging.Offset(s.Page, s.PerPage),
		Status:           s.Status,
		Urgency:          s.Urgency,
		Establishment:    s.Establishment,
		AssistanceType:   s.AssistanceType,
		ContributionType: s.ContributionType,
		Search:           s.Search,
		Sort:             string(s.Sort),
	}
	if s.HasLocation() {
		loc := s.Location
		q.Location = &loc
	}
	return q
}

func normalizeFilterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, All) {
		return ""
	}
	return v
}

// validateFilter checks value against the vocabulary for name. Status
// accepts both request and contribution statuses because the same
// parameter serves every tab.
func validateFilter(name Filter, value string) error {
	ok := true
	switch name {
	case FilterStatus:
		ok = value == "" || models.ValidRequestStatus(value) || models.ValidContributionStatus(value)
	case FilterUrgency:
		ok = value == "" || models.ValidUrgency(value)
	case FilterAssistanceType:
		ok = value == "" || models.ValidAssistanceType(value)
	case FilterContributionType:
		ok = value == "" || models.ValidContributionType(value)
	case FilterEstablishment:
		// free text
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	if !ok {
		return fmt.Errorf("%w: %s=%q", ErrInvalidFilterValue, name, value)
	}
	return nil
}

// Cleared drops search, filters and location but keeps the tab, page size
// and sort. Nearest falls back to the default sort since it needs a
// location.
func (s State) Cleared() State {
	next := Default()
	next.Tab = s.Tab
	next.PerPage = s.PerPage
	if s.Sort != SortNearest {
		next.Sort = s.Sort
	}
	return next
}

// StatusesFor lists the status values that make sense as a filter on tab.
// The "all" tab offers the union, request statuses first.
func StatusesFor(tab Tab) []string {
	switch tab {
	case TabRequests:
		return models.RequestStatuses
	case TabContributions:
		return models.ContributionStatuses
	}
	out := append([]string{}, models.RequestStatuses...)
	for _, s := range models.ContributionStatuses {
		if !models.ValidRequestStatus(s) {
			out = append(out, s)
		}
	}
	return out
}
