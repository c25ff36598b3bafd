// internal/app/system/csvutil/export.go
package csvutil

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/floodrelief/internal/domain/models"
)

// RequestHeader lists the exported request columns in order.
var RequestHeader = []string{
	"ID",
	"Name",
	"Phone",
	"Address",
	"Urgency",
	"Status",
	"Assistance Needed",
	"People (Men/Women/Children)",
	"Additional Notes",
	"Created At",
}

// ContributionHeader lists the exported contribution columns in order.
var ContributionHeader = []string{
	"ID",
	"Name",
	"Phone",
	"Address",
	"Status",
	"Contribution Types",
	"Coverage (km)",
	"Verified",
	"Additional Notes",
	"Created At",
}

// Table is a header plus string rows, ready to be written as CSV or TSV.
type Table struct {
	Kind   string
	Header []string
	Rows   [][]string
}

// Empty reports whether the table has no data rows. Empty tables export as
// an empty document, header included.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// RequestsTable builds the export table for requests. Free text is exported
// exactly as stored. Timestamps are shown in loc; a nil loc means UTC.
func RequestsTable(reqs []models.AssistanceRequest, loc *time.Location) Table {
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		rows = append(rows, []string{
			r.ID,
			r.FullName,
			r.MobileNumber,
			r.Address,
			r.Urgency,
			r.Status,
			strings.Join(r.AssistanceTypes, "; "),
			r.PeopleSummary(),
			r.AdditionalNotes,
			formatCreated(r.CreatedAt, loc),
		})
	}
	return Table{Kind: KindRequests, Header: RequestHeader, Rows: rows}
}

// ContributionsTable builds the export table for contributions.
func ContributionsTable(cs []models.Contribution, loc *time.Location) Table {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		verified := "No"
		if c.Verified {
			verified = "Yes"
		}
		rows = append(rows, []string{
			c.ID,
			c.FullName,
			c.MobileNumber,
			c.Address,
			c.Status,
			strings.Join(c.ContributionTypes, "; "),
			strconv.FormatFloat(c.CoverageRadiusKm, 'f', -1, 64),
			verified,
			c.Notes(),
			formatCreated(c.CreatedAt, loc),
		})
	}
	return Table{Kind: KindContributions, Header: ContributionHeader, Rows: rows}
}

func formatCreated(ts models.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format(createdAtLayout)
}

// CSV renders the table. The header row is written as-is; every data field
// is double-quoted with embedded quotes doubled. Lines are separated by
// "\n" with no trailing newline.
func (t Table) CSV() string {
	if t.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Join(t.Header, ","))
	for _, row := range t.Rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

var tsvCleaner = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// TSV renders the table tab-separated for pasting into a spreadsheet. Tabs
// and line breaks inside cells become spaces.
func (t Table) TSV() string {
	if t.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(tsvCleaner.Replace(cell))
		}
	}
	return b.String()
}

// WriteCSV writes the CSV rendering to w, preceded by a BOM when the table
// has rows.
func (t Table) WriteCSV(w io.Writer) error {
	if t.Empty() {
		return nil
	}
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	_, err := io.WriteString(w, t.CSV())
	return err
}

// FileName returns the download name for an export of kind taken at now,
// e.g. flood_requests_18102026143005.csv.
func FileName(kind string, now time.Time) string {
	return "flood_" + kind + "_" + now.Format(fileStampLayout) + ".csv"
}

// TableFor picks the records to export for a dashboard tab. Tabs other
// than "contributions", including "all", export requests.
func TableFor(tab string, env *models.Envelope, loc *time.Location) Table {
	if env == nil {
		return Table{Kind: KindRequests, Header: RequestHeader}
	}
	if tab == KindContributions {
		return ContributionsTable(env.Contributions, loc)
	}
	return RequestsTable(env.Requests, loc)
}
