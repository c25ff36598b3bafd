// internal/app/system/csvutil/formats.go
package csvutil

// Content types for export downloads.
const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypeTSV = "text/tab-separated-values; charset=utf-8"
)

// BOM is the UTF-8 byte order mark written ahead of CSV downloads so
// spreadsheet apps detect Unicode.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Record kinds used in export file names.
const (
	KindRequests      = "requests"
	KindContributions = "contributions"
)

// fileStampLayout renders DDMMYYYYHHMMSS.
const fileStampLayout = "02012006150405"

// createdAtLayout is how timestamps appear in exported cells.
const createdAtLayout = "2006-01-02 15:04:05"
