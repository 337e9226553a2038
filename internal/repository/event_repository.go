package repository

import (
	"github.com/iliyamo/event-ticket-reservation/internal/model"
)

// EventRepo reads and writes the full event collection of one file.
// Titles are not checked for uniqueness here.
type EventRepo struct {
	path  string
	codec Codec
}

// NewEventRepo returns an EventRepo bound to path.  A nil codec means JSON.
func NewEventRepo(path string, codec Codec) *EventRepo {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &EventRepo{path: path, codec: codec}
}

// Path returns the file backing the repository.
func (r *EventRepo) Path() string { return r.path }

// Load returns every persisted event in storage order.  When the file
// does not exist yet the result is an empty slice.
func (r *EventRepo) Load() ([]model.Event, error) {
	var events []model.Event
	if err := readCollection(r.path, r.codec, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	for i := range events {
		if events[i].ReservedNationalIDs == nil {
			events[i].ReservedNationalIDs = []string{}
		}
	}
	return events, nil
}

// Save overwrites the file with events.
func (r *EventRepo) Save(events []model.Event) error {
	data, err := r.Encode(events)
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path, data)
}

// Encode renders events in the repository's format without writing them.
func (r *EventRepo) Encode(events []model.Event) ([]byte, error) {
	out := make([]model.Event, len(events))
	for i, e := range events {
		out[i] = e
		if out[i].ReservedNationalIDs == nil {
			out[i].ReservedNationalIDs = []string{}
		}
	}
	data, err := r.codec.Marshal(out)
	if err != nil {
		return nil, ioErr("encode", r.path, err)
	}
	return data, nil
}
