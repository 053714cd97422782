package listsync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
)

func todos(n int) []model.Todo {
	out := make([]model.Todo, n)
	for i := range out {
		out[i] = model.Todo{ID: string(rune('a' + i)), Title: "t"}
	}
	return out
}

// ready returns a Ready state on page with the given metadata.
func ready(page, limit, count, onPage int) State {
	q := model.DefaultQuery()
	q.Page = page
	s, fx := New(q)
	s, _ = s.Apply(Loaded{Seq: fx.Seq, Result: model.ListResult{
		Results: todos(onPage), Count: count, Page: page, Limit: limit,
	}})
	return s
}

func TestNew_StartsLoadingWithFetch(t *testing.T) {
	s, fx := New(model.ListQuery{Page: 0, SortBy: model.SortByTitle, SortOrder: model.Asc})
	assert.Equal(t, Loading, s.Phase)
	assert.Equal(t, 1, fx.Query.Page)
	assert.Equal(t, s.Seq, fx.Seq)
	assert.False(t, s.CanPrev(), "no paging before any metadata")
	assert.False(t, s.CanNext(), "no paging before any metadata")
	assert.Equal(t, 1, s.TotalPages())
}

func TestApply_InputChangesTriggerExactlyOneFetch(t *testing.T) {
	base := ready(1, 10, 30, 10)
	cases := []struct {
		name  string
		ev    Event
		check func(t *testing.T, q model.ListQuery)
	}{
		{"page", SetPage{Page: 2}, func(t *testing.T, q model.ListQuery) {
			assert.Equal(t, 2, q.Page)
		}},
		{"next", NextPage{}, func(t *testing.T, q model.ListQuery) {
			assert.Equal(t, 2, q.Page)
		}},
		{"sort", SetSort{Field: model.SortByTitle}, func(t *testing.T, q model.ListQuery) {
			assert.Equal(t, model.SortByTitle, q.SortBy)
		}},
		{"order", SetOrder{Order: model.Desc}, func(t *testing.T, q model.ListQuery) {
			assert.Equal(t, model.Desc, q.SortOrder)
		}},
		{"search", SetSearch{Text: "milk"}, func(t *testing.T, q model.ListQuery) {
			assert.Equal(t, "milk", q.Query)
		}},
		{"refresh", Refresh{}, func(t *testing.T, q model.ListQuery) {
			assert.Equal(t, base.Query, q, "refresh keeps the query")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, fx := base.Apply(tc.ev)
			require.NotNil(t, fx)
			assert.Equal(t, Loading, s.Phase)
			assert.Equal(t, base.Seq+1, fx.Seq)
			assert.Equal(t, s.Seq, fx.Seq)
			assert.Equal(t, s.Query, fx.Query, "fetch query is the active query")
			tc.check(t, fx.Query)
		})
	}
}

func TestApply_UnchangedInputsDoNotFetch(t *testing.T) {
	base := ready(1, 10, 5, 5)
	for _, ev := range []Event{
		SetPage{Page: 1},
		SetPage{Page: 0},
		SetSort{Field: model.SortByDueDate},
		SetOrder{Order: model.Asc},
		SetSearch{Text: ""},
		PrevPage{},
		NextPage{}, // 1*10 >= 5
	} {
		s, fx := base.Apply(ev)
		assert.Nil(t, fx, "%T", ev)
		assert.Equal(t, Ready, s.Phase, "%T", ev)
		assert.Equal(t, base.Seq, s.Seq, "%T", ev)
	}
}

func TestApply_SearchResetsPageToOne(t *testing.T) {
	s := ready(3, 10, 30, 10)
	s, fx := s.Apply(SetSearch{Text: "milk"})
	require.NotNil(t, fx)
	assert.Equal(t, 1, fx.Query.Page)
	assert.Equal(t, 1, s.Query.Page)
	assert.Equal(t, "milk", fx.Query.Query)
}

func TestApply_DeleteSoleItemOnLastPageStepsBack(t *testing.T) {
	// page=2, limit=10, count=11: the one item on page 2 goes away.
	s := ready(2, 10, 11, 1)
	s, fx := s.Apply(Deleted{ID: "a"})
	require.NotNil(t, fx)
	assert.Equal(t, 1, s.Query.Page)
	assert.Equal(t, 1, fx.Query.Page)
}

func TestApply_DeleteKeepsPageWhenItemsRemain(t *testing.T) {
	cases := []struct {
		name                      string
		page, limit, count, shown int
	}{
		{"page 2 still has items", 2, 10, 12, 2},
		{"first page never moves", 1, 10, 1, 1},
		{"middle page", 2, 10, 30, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := ready(tc.page, tc.limit, tc.count, tc.shown)
			next, fx := s.Apply(Deleted{ID: "a"})
			require.NotNil(t, fx, "a delete always refetches")
			assert.Equal(t, s.Query, next.Query)
			assert.Equal(t, s.Seq+1, next.Seq)
		})
	}
}

func TestApply_DeleteWithoutMetadataRefetches(t *testing.T) {
	s, fx := New(model.ListQuery{Page: 3, SortBy: model.SortByDueDate, SortOrder: model.Asc})
	s, _ = s.Apply(Failed{Seq: fx.Seq, Err: errors.New("boom")})
	_, next := s.Apply(Deleted{ID: "x"})
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Query.Page)
}

func TestApply_UpdatedAndCreatedRefetch(t *testing.T) {
	s := ready(2, 10, 15, 5)
	for _, ev := range []Event{Updated{}, Created{}} {
		next, fx := s.Apply(ev)
		require.NotNil(t, fx, "%T", ev)
		assert.Equal(t, s.Query, fx.Query, "%T", ev)
		assert.Equal(t, Loading, next.Phase, "%T", ev)
	}
}

func TestApply_StaleResponsesAreDropped(t *testing.T) {
	s := ready(1, 10, 30, 10)
	s, first := s.Apply(SetPage{Page: 2})
	s, second := s.Apply(SetPage{Page: 3})

	// The page-2 reply arrives after page 3 was requested.
	stale := model.ListResult{Results: todos(1), Count: 30, Page: 2, Limit: 10}
	next, fx := s.Apply(Loaded{Seq: first.Seq, Result: stale})
	assert.Nil(t, fx)
	assert.Equal(t, Loading, next.Phase)
	assert.NotEqual(t, 2, next.Result.Page, "stale reply is ignored")

	next, _ = next.Apply(Failed{Seq: first.Seq, Err: errors.New("late")})
	assert.NoError(t, next.Err, "stale failure is ignored")
	assert.Equal(t, Loading, next.Phase)

	fresh := model.ListResult{Results: todos(10), Count: 30, Page: 3, Limit: 10}
	next, _ = next.Apply(Loaded{Seq: second.Seq, Result: fresh})
	assert.Equal(t, Ready, next.Phase)
	assert.Equal(t, 3, next.Result.Page)
}

func TestApply_FailureLeavesEmptyReadyState(t *testing.T) {
	s := ready(1, 10, 30, 10)
	s, fx := s.Apply(Refresh{})
	boom := errors.New("boom")
	s, _ = s.Apply(Failed{Seq: fx.Seq, Err: boom})
	assert.Equal(t, Ready, s.Phase)
	assert.NotNil(t, s.Items())
	assert.Empty(t, s.Items())
	assert.ErrorIs(t, s.Err, boom)
	assert.False(t, s.CanNext())
	assert.False(t, s.CanPrev())

	s, fx = s.Apply(Refresh{})
	s, _ = s.Apply(Loaded{Seq: fx.Seq, Result: model.ListResult{Count: 0, Page: 1, Limit: 10}})
	assert.NoError(t, s.Err, "success clears the error")
	assert.NotNil(t, s.Items(), "nil results become an empty page")
}

func TestPagination(t *testing.T) {
	cases := []struct {
		count, limit, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 1},
		{5, -1, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.count, tc.limit), "TotalPages(%d, %d)", tc.count, tc.limit)
	}

	single := ready(1, 10, 10, 10)
	assert.False(t, single.CanNext())
	assert.False(t, single.CanPrev())

	first := ready(1, 10, 11, 10)
	assert.True(t, first.CanNext())
	assert.False(t, first.CanPrev())

	last := ready(2, 10, 11, 1)
	assert.False(t, last.CanNext())
	assert.True(t, last.CanPrev())
}
