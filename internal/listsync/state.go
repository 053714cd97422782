// Package listsync keeps a client-side page of todos consistent with the
// remote collection. State is one explicit value; transitions are pure
// functions from (State, Event) to a new State plus at most one Fetch to run.
//
// Overlapping fetches are resolved by sequence numbers: every Fetch carries
// the next Seq, the State remembers the latest one issued, and replies
// tagged with any other Seq are dropped. Fetcher additionally cancels the
// superseded request so it stops consuming the connection.
package listsync

import (
	"github.com/idilsaglam/tada/internal/model"
)

// Phase is either Loading (a fetch is outstanding) or Ready.
type Phase int

const (
	Loading Phase = iota
	Ready
)

func (p Phase) String() string {
	if p == Loading {
		return "loading"
	}
	return "ready"
}

// State is everything the list view renders from.
type State struct {
	Query   model.ListQuery
	Result  model.ListResult
	HasMeta bool // Result carries count/page/limit from a successful fetch
	Phase   Phase
	Seq     uint64 // sequence number of the latest issued fetch
	Err     error  // last list failure, cleared by the next success
}

// Fetch is a request the driver must perform and answer with Loaded or Failed.
type Fetch struct {
	Seq   uint64
	Query model.ListQuery
}

// New returns the state for q with its initial fetch.
func New(q model.ListQuery) (State, Fetch) {
	if q.Page < 1 {
		q.Page = 1
	}
	s := State{Query: q, Phase: Loading, Seq: 1}
	return s, Fetch{Seq: s.Seq, Query: q}
}

// Items returns the todos on the current page.
func (s State) Items() []model.Todo { return s.Result.Results }

// Apply runs one transition. The returned Fetch is nil when nothing needs to
// be requested.
func (s State) Apply(ev Event) (State, *Fetch) {
	switch e := ev.(type) {
	case SetPage:
		return s.setPage(e.Page)
	case NextPage:
		if !s.CanNext() {
			return s, nil
		}
		return s.setPage(s.Query.Page + 1)
	case PrevPage:
		if !s.CanPrev() {
			return s, nil
		}
		return s.setPage(s.Query.Page - 1)
	case SetSort:
		if e.Field == s.Query.SortBy {
			return s, nil
		}
		s.Query.SortBy = e.Field
		return s.refetch()
	case SetOrder:
		if e.Order == s.Query.SortOrder {
			return s, nil
		}
		s.Query.SortOrder = e.Order
		return s.refetch()
	case SetSearch:
		if e.Text == s.Query.Query {
			return s, nil
		}
		s.Query.Query = e.Text
		s.Query.Page = 1
		return s.refetch()
	case Refresh, Updated, Created:
		return s.refetch()
	case Deleted:
		return s.afterDelete()
	case Loaded:
		if e.Seq != s.Seq {
			return s, nil
		}
		s.Result = e.Result
		if s.Result.Results == nil {
			s.Result.Results = []model.Todo{}
		}
		s.HasMeta = true
		s.Phase = Ready
		s.Err = nil
		return s, nil
	case Failed:
		if e.Seq != s.Seq {
			return s, nil
		}
		s.Result = model.ListResult{Results: []model.Todo{}}
		s.HasMeta = false
		s.Phase = Ready
		s.Err = e.Err
		return s, nil
	}
	return s, nil
}

func (s State) setPage(p int) (State, *Fetch) {
	if p < 1 || p == s.Query.Page {
		return s, nil
	}
	s.Query.Page = p
	return s.refetch()
}

// afterDelete keeps the view off a page that the removal emptied.
func (s State) afterDelete() (State, *Fetch) {
	if s.HasMeta && s.Query.Page > 1 {
		newCount := s.Result.Count - 1
		if newCount <= (s.Query.Page-1)*s.Result.Limit {
			return s.setPage(s.Query.Page - 1)
		}
	}
	return s.refetch()
}

func (s State) refetch() (State, *Fetch) {
	s.Seq++
	s.Phase = Loading
	return s, &Fetch{Seq: s.Seq, Query: s.Query}
}

// TotalPages is ceil(count/limit), never below 1.
func TotalPages(count, limit int) int {
	if limit <= 0 || count <= 0 {
		return 1
	}
	return (count + limit - 1) / limit
}

// TotalPages for the last fetched result.
func (s State) TotalPages() int {
	if !s.HasMeta {
		return 1
	}
	return TotalPages(s.Result.Count, s.Result.Limit)
}

// CanPrev reports whether "Previous" is enabled.
func (s State) CanPrev() bool {
	return s.HasMeta && s.Query.Page > 1
}

// CanNext reports whether "Next" is enabled.
func (s State) CanNext() bool {
	return s.HasMeta && s.Query.Page*s.Result.Limit < s.Result.Count
}
