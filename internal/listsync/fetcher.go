package listsync

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/gateway"
	"github.com/idilsaglam/tada/internal/model"
)

// Lister is the read side of the gateway.
type Lister interface {
	List(ctx context.Context, q model.ListQuery) (model.ListResult, error)
}

// Fetcher performs Fetches. Starting a newer Fetch cancels the older one
// still in flight; a Fetch older than the newest started is not sent at all.
type Fetcher struct {
	lister Lister
	log    *zap.Logger

	mu       sync.Mutex
	inflight uint64
	cancel   context.CancelFunc
}

func NewFetcher(l Lister, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{lister: l, log: log}
}

// Run performs fx and returns the Loaded or Failed event that answers it.
// Failures are logged here; callers only feed the event back into State.
func (f *Fetcher) Run(ctx context.Context, fx Fetch) Event {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	f.mu.Lock()
	if fx.Seq < f.inflight {
		f.mu.Unlock()
		f.log.Debug("skipping superseded list fetch", zap.Uint64("seq", fx.Seq), zap.Uint64("latest", f.inflight))
		return Failed{Seq: fx.Seq, Err: context.Canceled}
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.inflight, f.cancel = fx.Seq, cancel
	f.mu.Unlock()

	res, err := f.lister.List(ctx, fx.Query)

	f.mu.Lock()
	superseded := f.inflight != fx.Seq
	if !superseded {
		f.cancel = nil
	}
	f.mu.Unlock()

	if err != nil {
		if superseded {
			f.log.Debug("list fetch superseded", zap.Uint64("seq", fx.Seq), zap.Error(err))
		} else {
			fields := append(queryFields(fx), zap.Error(err))
			var te *gateway.TransportError
			if errors.As(err, &te) {
				fields = append(fields, zap.String("request_id", te.RequestID), zap.Int("status", te.StatusCode))
			}
			f.log.Error("list todos failed", fields...)
		}
		return Failed{Seq: fx.Seq, Err: err}
	}
	f.log.Debug("list todos", append(queryFields(fx), zap.Int("count", res.Count), zap.Int("returned", len(res.Results)))...)
	return Loaded{Seq: fx.Seq, Result: res}
}

func queryFields(fx Fetch) []zap.Field {
	return []zap.Field{
		zap.Uint64("seq", fx.Seq),
		zap.Int("page", fx.Query.Page),
		zap.String("sort_by", string(fx.Query.SortBy)),
		zap.String("sort_order", string(fx.Query.SortOrder)),
		zap.String("q", fx.Query.Query),
	}
}

// Session drives State synchronously: each Dispatch applies the event and,
// if a fetch results, runs it to completion before returning.
type Session struct {
	state   State
	fetcher *Fetcher
}

// NewSession builds the state for q and performs the initial fetch.
func NewSession(ctx context.Context, f *Fetcher, q model.ListQuery) *Session {
	st, fx := New(q)
	s := &Session{state: st, fetcher: f}
	s.state, _ = s.state.Apply(f.Run(ctx, fx))
	return s
}

func (s *Session) State() State { return s.state }

func (s *Session) Dispatch(ctx context.Context, ev Event) State {
	st, fx := s.state.Apply(ev)
	s.state = st
	if fx != nil {
		s.state, _ = s.state.Apply(s.fetcher.Run(ctx, *fx))
	}
	return s.state
}
