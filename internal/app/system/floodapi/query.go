// internal/app/system/floodapi/query.go
package floodapi

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/dalemusser/floodrelief/internal/domain/models"
)

// Query is one request to the relief data API. Empty string fields are
// unset and are omitted from the query string entirely; they are never
// sent as "".
type Query struct {
	Type             string // requests | contributions | all
	Limit            int
	Offset           int
	Status           string
	Urgency          string
	Establishment    string
	AssistanceType   string
	ContributionType string
	Search           string
	Location         *models.LocationFilter
	Sort             string // newest | oldest | nearest
}

// Values encodes q as URL query parameters. Limit and offset are sent
// together whenever a limit is set, so the first page carries offset=0.
// The location filter is JSON-encoded into a single "location" parameter.
func (q Query) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}

	set("type", q.Type)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
		v.Set("offset", strconv.Itoa(max(q.Offset, 0)))
	}
	set("status", q.Status)
	set("urgency", q.Urgency)
	set("establishment", q.Establishment)
	set("assistance_type", q.AssistanceType)
	set("contribution_type", q.ContributionType)
	set("search", q.Search)
	if q.Location != nil {
		if b, err := json.Marshal(q.Location); err == nil {
			v.Set("location", string(b))
		}
	}
	set("sort", q.Sort)
	return v
}

// Encode returns the query string form of q, with keys sorted.
func (q Query) Encode() string {
	return q.Values().Encode()
}
