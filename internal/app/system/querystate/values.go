// internal/app/system/querystate/values.go
package querystate

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/floodrelief/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
)

// URL parameter names used by the web dashboard. These are the dashboard's
// own links, not the API's parameters.
const (
	ParamTab     = "tab"
	ParamSearch  = "q"
	ParamSort    = "sort"
	ParamPage    = "page"
	ParamPerPage = "per_page"
	ParamLat     = "lat"
	ParamLng     = "lng"
	ParamRadius  = "radius_km"
)

// Values encodes s for use in dashboard links. Fields at their default
// value are left out to keep URLs short.
func (s State) Values() url.Values {
	def := Default()
	v := url.Values{}
	if s.Tab != def.Tab {
		v.Set(ParamTab, string(s.Tab))
	}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	for _, f := range Filters {
		if val := s.Filter(f); val != "" {
			v.Set(string(f), val)
		}
	}
	if s.Sort != def.Sort {
		v.Set(ParamSort, string(s.Sort))
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	if s.PerPage != def.PerPage {
		v.Set(ParamPerPage, strconv.Itoa(s.PerPage))
	}
	if s.HasLocation() {
		v.Set(ParamLat, strconv.FormatFloat(s.Location.Lat, 'f', -1, 64))
		v.Set(ParamLng, strconv.FormatFloat(s.Location.Lng, 'f', -1, 64))
		v.Set(ParamRadius, strconv.FormatFloat(s.Location.RadiusKm, 'f', -1, 64))
	}
	return v
}

// Href returns path with s encoded as its query string.
func (s State) Href(path string) string {
	enc := s.Values().Encode()
	if enc == "" {
		return path
	}
	return path + "?" + enc
}

// ParseRequest rebuilds a State from the dashboard link parameters on r,
// starting from base. It never fails: unknown or invalid values are ignored
// and the base value is kept. The search is capped at query.MaxSearchLen.
// The page is not clamped here because the total is unknown until the
// fetch completes.
func ParseRequest(r *http.Request, base State) State {
	s := base
	raw := r.URL.Query()

	if t := Tab(query.Get(r, ParamTab)); ValidTab(t) {
		s.Tab = t
	}
	s.Search = normalizeSearch(query.Search(r, ParamSearch))

	for _, f := range Filters {
		if !raw.Has(string(f)) {
			continue
		}
		if next, err := s.WithFilter(f, query.Get(r, string(f))); err == nil {
			s = next
		}
	}
	if s.Tab != TabRequests {
		s.Urgency = ""
	}

	if o := Sort(query.Get(r, ParamSort)); ValidSort(o) {
		s.Sort = o
	}
	s.PerPage = paging.ParsePageSize(r, ParamPerPage, s.PerPage)

	lat, errLat := strconv.ParseFloat(query.Get(r, ParamLat), 64)
	lng, errLng := strconv.ParseFloat(query.Get(r, ParamLng), 64)
	radius, errRadius := strconv.ParseFloat(query.Get(r, ParamRadius), 64)
	if errLat == nil && errLng == nil && errRadius == nil {
		if next, err := s.WithLocation(lat, lng, radius); err == nil {
			s = next
		}
	}

	s.Page = paging.ParsePage(r, ParamPage)
	return s
}

// normalizeSearch trims q and drops a rune split by truncation.
func normalizeSearch(q string) string {
	return State{}.WithSearch(strings.ToValidUTF8(q, "")).Search
}
