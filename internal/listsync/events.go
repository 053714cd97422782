package listsync

import "github.com/idilsaglam/tada/internal/model"

// Event is an input to State.Apply.
type Event interface{ isEvent() }

type (
	SetPage   struct{ Page int }
	NextPage  struct{}
	PrevPage  struct{}
	SetSort   struct{ Field model.SortField }
	SetOrder  struct{ Order model.SortOrder }
	SetSearch struct{ Text string }

	// Refresh refetches the active query unchanged.
	Refresh struct{}

	// Deleted reports that the service acknowledged removing ID.
	Deleted struct{ ID string }
	// Updated reports that the service acknowledged a change to Todo.
	Updated struct{ Todo model.Todo }
	// Created reports that the service stored Todo.
	Created struct{ Todo model.Todo }

	// Loaded and Failed answer the Fetch with the same Seq.
	Loaded struct {
		Seq    uint64
		Result model.ListResult
	}
	Failed struct {
		Seq uint64
		Err error
	}
)

func (SetPage) isEvent()   {}
func (NextPage) isEvent()  {}
func (PrevPage) isEvent()  {}
func (SetSort) isEvent()   {}
func (SetOrder) isEvent()  {}
func (SetSearch) isEvent() {}
func (Refresh) isEvent()   {}
func (Deleted) isEvent()   {}
func (Updated) isEvent()   {}
func (Created) isEvent()   {}
func (Loaded) isEvent()    {}
func (Failed) isEvent()    {}
