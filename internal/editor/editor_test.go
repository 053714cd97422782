package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
)

type fakeUpdater struct {
	calls []model.Draft
	ids   []string
	err   error
}

func (f *fakeUpdater) Update(_ context.Context, id string, d model.Draft) (model.Todo, error) {
	f.calls = append(f.calls, d)
	f.ids = append(f.ids, id)
	if f.err != nil {
		return model.Todo{}, f.err
	}
	return model.Todo{ID: id, Title: d.Title, Description: d.Description, DueDate: d.DueDate}, nil
}

func sample() model.Todo {
	return model.Todo{
		ID:          "todo-1",
		Title:       "Test Todo",
		Description: "Test Description",
		DueDate:     time.Date(2025, 5, 6, 0, 0, 0, 0, time.Local),
	}
}

func TestEditor_StartsViewingAndSeedsDraft(t *testing.T) {
	e := New(sample())
	assert.Equal(t, Viewing, e.Mode)

	e = e.Begin()
	assert.Equal(t, Editing, e.Mode)
	assert.Equal(t, Fields{Title: "Test Todo", Description: "Test Description", DueDate: "2025-05-06"}, e.Draft)
}

func TestEditor_CancelDiscardsDraft(t *testing.T) {
	e := New(sample()).Begin()
	e.Draft.Title = "changed"
	e = e.Cancel()
	assert.Equal(t, Viewing, e.Mode)
	assert.Zero(t, e.Draft)
	assert.Equal(t, "Test Todo", e.Item.Title, "cancel leaves the item alone")
}

func TestEditor_SaveNormalizesAndNotifies(t *testing.T) {
	u := &fakeUpdater{}
	e := New(sample()).Begin()
	e.Draft.Title = "Renamed"
	e.Draft.DueDate = "2025-06-01"

	e, ev, err := e.Save(context.Background(), u)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "todo-1", ev.Todo.ID)
	assert.Equal(t, Viewing, e.Mode)
	assert.Equal(t, "Renamed", e.Item.Title)

	require.Equal(t, []string{"todo-1"}, u.ids)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	assert.True(t, u.calls[0].DueDate.Equal(want), "expected local midnight %v, got %v", want, u.calls[0].DueDate)
	assert.Equal(t, "Test Description", u.calls[0].Description, "untouched fields are sent as-is")
}

func TestEditor_SaveFailureKeepsEditing(t *testing.T) {
	boom := errors.New("boom")
	u := &fakeUpdater{err: boom}
	e := New(sample()).Begin()
	e.Draft.Title = "Unsaved"

	e, ev, err := e.Save(context.Background(), u)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, ev, "no refresh on failure")
	assert.Equal(t, Editing, e.Mode)
	assert.Equal(t, "Unsaved", e.Draft.Title, "draft survives a failed save")
	assert.Equal(t, "Test Todo", e.Item.Title)
}

func TestEditor_SaveRejectsInvalidDraftWithoutCalling(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Fields)
		want error
	}{
		{"blank title", func(f *Fields) { f.Title = " " }, model.ErrEmptyTitle},
		{"no date", func(f *Fields) { f.DueDate = "" }, model.ErrDueDateRequired},
		{"bad date", func(f *Fields) { f.DueDate = "tomorrow" }, model.ErrBadDueDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &fakeUpdater{}
			e := New(sample()).Begin()
			tc.edit(&e.Draft)
			e, _, err := e.Save(context.Background(), u)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, u.calls, "gateway is not called")
			assert.Equal(t, Editing, e.Mode)
		})
	}
}

func TestEditor_SaveOutsideEditing(t *testing.T) {
	_, _, err := New(sample()).Save(context.Background(), &fakeUpdater{})
	assert.ErrorIs(t, err, ErrNotEditing)
}
