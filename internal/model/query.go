package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SortField is a column the collection can be ordered by.
type SortField string

const (
	SortByDueDate SortField = "due_date"
	SortByTitle   SortField = "title"
)

// SortOrder is the ordering direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortField accepts only the fields the service can sort by.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByDueDate, SortByTitle:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q (want due_date or title)", s)
}

// ParseSortOrder accepts asc or desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case Asc, Desc:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want asc or desc)", s)
}

// Toggle flips between the two sort fields.
func (f SortField) Toggle() SortField {
	if f == SortByTitle {
		return SortByDueDate
	}
	return SortByTitle
}

// Toggle flips the direction.
func (o SortOrder) Toggle() SortOrder {
	if o == Desc {
		return Asc
	}
	return Desc
}

func (f SortField) Label() string {
	if f == SortByTitle {
		return "Title"
	}
	return "Due Date"
}

func (o SortOrder) Label() string {
	if o == Desc {
		return "Descending"
	}
	return "Ascending"
}

// ListQuery selects one page of one ordering of one filtered subset.
type ListQuery struct {
	Page      int       `json:"page"`
	SortBy    SortField `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
	Query     string    `json:"q"`
}

// DefaultQuery is the first page ordered by due date, ascending, unfiltered.
func DefaultQuery() ListQuery {
	return ListQuery{Page: 1, SortBy: SortByDueDate, SortOrder: Asc}
}

// ListResult is the service's answer to a ListQuery.
type ListResult struct {
	Results []Todo `json:"results"`
	Count   int    `json:"count"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
}

// UnmarshalJSON treats a null results array as an empty page. A body that is
// null as a whole carries no page metadata and is rejected.
func (r *ListResult) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return fmt.Errorf("list result: body is null")
	}
	type plain ListResult
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Results == nil {
		p.Results = []Todo{}
	}
	*r = ListResult(p)
	return nil
}
