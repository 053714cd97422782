package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate_LocalMidnight(t *testing.T) {
	got, err := ParseDueDate("2025-05-06")
	require.NoError(t, err)
	want := time.Date(2025, 5, 6, 0, 0, 0, 0, time.Local)
	assert.True(t, got.Equal(want), "expected %v, got %v", want, got)
	assert.Equal(t, "2025-05-06", FormatDueDate(got))
}

func TestParseDueDate_Errors(t *testing.T) {
	_, err := ParseDueDate("  ")
	assert.ErrorIs(t, err, ErrDueDateRequired)
	_, err = ParseDueDate("06/05/2025")
	assert.ErrorIs(t, err, ErrBadDueDate)
}

func TestDraftValidate(t *testing.T) {
	due := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"ok", Draft{Title: "Buy milk", DueDate: due}, nil},
		{"blank title", Draft{Title: "   ", DueDate: due}, ErrEmptyTitle},
		{"no due date", Draft{Title: "Buy milk"}, ErrDueDateRequired},
		{"empty description is fine", Draft{Title: "x", Description: "", DueDate: due}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDraftMarshal_OmitsIDAndSendsUTCInstant(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	d := Draft{Title: "t", Description: "d", DueDate: time.Date(2025, 5, 6, 0, 0, 0, 0, loc)}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","description":"d","due_date":"2025-05-05T22:00:00.000Z"}`, string(b))
}

func TestListResult_NullResultsIsEmptyPage(t *testing.T) {
	var r ListResult
	require.NoError(t, json.Unmarshal([]byte(`{"results":null,"count":0,"page":1,"limit":10}`), &r))
	assert.NotNil(t, r.Results)
	assert.Empty(t, r.Results)
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 10, r.Limit)
}

func TestListResult_NullBodyIsRejected(t *testing.T) {
	for _, body := range []string{"null", "  null\n"} {
		var r ListResult
		assert.Error(t, json.Unmarshal([]byte(body), &r), "body %q", body)
	}
}

func TestParseSortFieldAndOrder(t *testing.T) {
	f, err := ParseSortField("TITLE")
	require.NoError(t, err)
	assert.Equal(t, SortByTitle, f)
	_, err = ParseSortField("priority")
	assert.Error(t, err)

	o, err := ParseSortOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, Desc, o)
	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)

	assert.Equal(t, SortByTitle, SortByDueDate.Toggle())
	assert.Equal(t, Desc, Asc.Toggle())
}
