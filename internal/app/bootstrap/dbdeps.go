// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/floodrelief/internal/app/system/floodapi"
)

// DBDeps holds back-end dependencies for the app. The dashboard has no
// database of its own; its only back end is the relief data API.
type DBDeps struct {
	API *floodapi.Client
}
