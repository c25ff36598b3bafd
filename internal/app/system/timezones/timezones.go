// Package timezones holds the curated list of display time zones offered
// for rendering record timestamps.
package timezones

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	// Embedded zone database so LoadLocation works in minimal containers.
	_ "time/tzdata"
)

//go:embed timezonedata/timezones.json
var FS embed.FS

type Zone struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Region string `json:"region,omitempty"`
}

var (
	loadOnce sync.Once
	zones    []Zone
	byID     map[string]Zone
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		data, err := FS.ReadFile("timezonedata/timezones.json")
		if err != nil {
			loadErr = err
			return
		}

		var list []Zone
		if err := json.Unmarshal(data, &list); err != nil {
			loadErr = err
			return
		}

		zones = list
		byID = make(map[string]Zone, len(list))
		for _, z := range list {
			byID[z.ID] = z
		}
	})
}

// Load is optional: call it at startup to fail fast on a bad embed.
func Load() error {
	load()
	return loadErr
}

// Label returns the human-friendly label for an ID, or the ID itself if not found.
func Label(id string) string {
	load()
	if z, ok := byID[id]; ok && z.Label != "" {
		return z.Label
	}
	return id
}

// Valid reports whether the given ID exists in the curated list.
func Valid(id string) bool {
	load()
	_, ok := byID[id]
	return ok
}

// Location resolves a curated zone ID. IDs outside the list are rejected
// even when the system knows them.
func Location(id string) (*time.Location, error) {
	if !Valid(id) {
		return nil, fmt.Errorf("unsupported time zone %q", id)
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", id, err)
	}
	return loc, nil
}
