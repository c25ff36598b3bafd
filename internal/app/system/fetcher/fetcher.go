// internal/app/system/fetcher/fetcher.go
package fetcher

import (
	"context"

	"github.com/dalemusser/floodrelief/internal/app/system/floodapi"
	"github.com/dalemusser/floodrelief/internal/domain/models"
	"go.uber.org/zap"
)

// Source performs one fetch. *floodapi.Client satisfies it.
type Source interface {
	Fetch(ctx context.Context, q floodapi.Query) floodapi.Result
}

// Pending is an issued but not yet completed fetch. Run may be called on
// any goroutine; it touches nothing owned by the Orchestrator.
type Pending struct {
	Seq   uint64
	Query floodapi.Query
	src   Source
}

// Run performs the fetch and returns its completion for Apply.
func (p Pending) Run(ctx context.Context) Completion {
	return Completion{Seq: p.Seq, Query: p.Query, Result: p.src.Fetch(ctx, p.Query)}
}

// Completion is a finished fetch waiting to be applied.
type Completion struct {
	Seq    uint64
	Query  floodapi.Query
	Result floodapi.Result
}

// Snapshot is what a view renders.
type Snapshot struct {
	Data    *models.Envelope // nil before the first success and after any failure
	Err     error
	Loading bool
	Query   floodapi.Query // query of the latest issued fetch
	Seq     uint64
}

// Message returns the error text for the banner, or "".
func (s Snapshot) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Orchestrator sequences fetches so that only the latest issued request can
// change what is displayed. Every issued fetch gets a strictly increasing
// sequence number; completions carrying an older number are discarded.
//
// The Orchestrator is not safe for concurrent use. Begin, Apply and the
// accessors belong to one owning goroutine; only Pending.Run runs elsewhere.
type Orchestrator struct {
	src Source
	log *zap.Logger

	immediate bool
	seq       uint64
	hasQuery  bool
	last      floodapi.Query

	data    *models.Envelope
	err     error
	loading bool
}

// New returns an Orchestrator in immediate mode: QueryChanged issues a
// fetch straight away.
func New(src Source, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{src: src, log: logger, immediate: true}
}

// SetImmediate toggles immediate mode. With it off, QueryChanged only
// records the query and fetches happen on Refetch.
func (o *Orchestrator) SetImmediate(on bool) { o.immediate = on }

// Immediate reports whether immediate mode is on.
func (o *Orchestrator) Immediate() bool { return o.immediate }

// Begin issues a fetch for q. Loading turns on; the previous data stays
// visible until the completion is applied.
func (o *Orchestrator) Begin(q floodapi.Query) Pending {
	o.seq++
	o.last = q
	o.hasQuery = true
	o.loading = true
	o.log.Debug("fetch issued",
		zap.Uint64("seq", o.seq),
		zap.String("type", q.Type),
		zap.Int("offset", q.Offset))
	return Pending{Seq: o.seq, Query: q, src: o.src}
}

// QueryChanged is called whenever the committed query changes. In
// immediate mode it issues a fetch and returns it with ok=true.
func (o *Orchestrator) QueryChanged(q floodapi.Query) (p Pending, ok bool) {
	if !o.immediate {
		o.last = q
		o.hasQuery = true
		return Pending{}, false
	}
	return o.Begin(q), true
}

// Refetch reissues the last query. It is safe while another fetch is in
// flight; the newer one simply supersedes it. ok is false when no query has
// been seen yet.
func (o *Orchestrator) Refetch() (p Pending, ok bool) {
	if !o.hasQuery {
		return Pending{}, false
	}
	return o.Begin(o.last), true
}

// Apply installs a completion if it belongs to the latest issued fetch and
// reports whether it did. Failures clear the data; successes replace it
// wholesale and clear the error.
func (o *Orchestrator) Apply(c Completion) bool {
	if c.Seq != o.seq {
		o.log.Debug("discarding stale fetch result",
			zap.Uint64("seq", c.Seq),
			zap.Uint64("latest", o.seq))
		return false
	}
	o.loading = false
	if c.Result.Err != nil {
		o.err = c.Result.Err
		o.data = nil
		o.log.Warn("fetch failed",
			zap.Uint64("seq", c.Seq),
			zap.String("request_id", c.Result.RequestID),
			zap.Error(c.Result.Err))
		return true
	}
	o.data = c.Result.Data
	o.err = nil
	return true
}

// Fetch runs q to completion on the calling goroutine and applies it.
// Request handlers use this; interactive views use Begin and Apply.
func (o *Orchestrator) Fetch(ctx context.Context, q floodapi.Query) Snapshot {
	o.Apply(o.Begin(q).Run(ctx))
	return o.Snapshot()
}

// Snapshot returns the current view of the data.
func (o *Orchestrator) Snapshot() Snapshot {
	return Snapshot{
		Data:    o.data,
		Err:     o.err,
		Loading: o.loading,
		Query:   o.last,
		Seq:     o.seq,
	}
}

// Data returns the current envelope, or nil.
func (o *Orchestrator) Data() *models.Envelope { return o.data }

// Err returns the error from the latest applied fetch, or nil.
func (o *Orchestrator) Err() error { return o.err }

// Loading reports whether the latest issued fetch is still outstanding.
func (o *Orchestrator) Loading() bool { return o.loading }
