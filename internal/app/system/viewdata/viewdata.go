// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"

	"github.com/dalemusser/floodrelief/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title"),
//	}
type BaseVM struct {
	SiteName    string
	Title       string
	CurrentPath string
}

var (
	mu       sync.RWMutex
	siteName = models.DefaultSiteName
)

// SetSiteName sets the name shown in page headers. Call once at startup.
// An empty name restores the default.
func SetSiteName(name string) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		name = models.DefaultSiteName
	}
	siteName = name
}

// SiteName returns the configured site name.
func SiteName() string {
	mu.RLock()
	defer mu.RUnlock()
	return siteName
}

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	return BaseVM{
		SiteName:    SiteName(),
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
	}
}
