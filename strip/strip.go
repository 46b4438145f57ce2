// Package strip decides which tracks and events of a document are disposable
// and removes them in place.
package strip

import (
	"errors"

	"github.com/jsphweid/midistrip/constants"
	"github.com/jsphweid/midistrip/model"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

// NoDocument is the count returned alongside ErrNoDocument.
const NoDocument = -1

var ErrNoDocument = errors.New("no document loaded")

// IsUnwanted reports whether e is a program change or control change. Only
// the kind is looked at; channel and controller number do not matter.
func IsUnwanted(e *model.Event) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case model.ProgramChange, model.ControlChange:
		return true
	default:
		return false
	}
}

// keepsTrack lists the kinds that make a track worth keeping. Any other kind,
// including ones added to model later, leaves the track empty.
func keepsTrack(k model.Kind) bool {
	switch k {
	case model.NoteOn, model.SetTempo:
		return true
	default:
		return false
	}
}

// IsEmpty reports whether c is a track without any note on or tempo event.
// A nil chunk is empty; chunks that are not tracks never are.
func IsEmpty(c model.Chunk) bool {
	if c == nil {
		return true
	}
	track, ok := c.(*model.Track)
	if !ok {
		return false
	}
	if track == nil {
		return true
	}
	for _, e := range track.Events {
		if e != nil && keepsTrack(e.Kind) {
			return false
		}
	}
	return true
}

// StripEmptyTracks removes every chunk IsEmpty reports and returns how many
// went. Survivors keep their relative order.
func StripEmptyTracks(doc *model.Document) (int, error) {
	if doc == nil {
		return NoDocument, ErrNoDocument
	}
	before := len(doc.Chunks)
	doc.Chunks = slices.DeleteFunc(doc.Chunks, IsEmpty)
	return before - len(doc.Chunks), nil
}

// StripUnwantedEvents removes every event IsUnwanted reports from every track
// and returns the total removed. Deltas of the remaining events are left as
// they are.
func StripUnwantedEvents(doc *model.Document) (int, error) {
	if doc == nil {
		return NoDocument, ErrNoDocument
	}
	removed := 0
	for _, track := range doc.Tracks() {
		before := len(track.Events)
		track.Events = slices.DeleteFunc(track.Events, IsUnwanted)
		removed += before - len(track.Events)
	}
	return removed, nil
}

// StripUnwantedEventsKeepTime removes the same events as StripUnwantedEvents
// but adds each removed delta to the next kept event, so every survivor stays
// at its absolute tick. A folded delta that no longer fits in a file is split
// over empty text events placed in front of it.
func StripUnwantedEventsKeepTime(doc *model.Document) (int, error) {
	if doc == nil {
		return NoDocument, ErrNoDocument
	}
	removed := 0
	for _, track := range doc.Tracks() {
		kept := make([]*model.Event, 0, len(track.Events))
		var carry uint64
		for _, e := range track.Events {
			if IsUnwanted(e) {
				carry += uint64(e.Delta)
				removed++
				continue
			}
			if e != nil && carry > 0 {
				var delta uint32
				kept, delta = appendSpacers(kept, carry+uint64(e.Delta))
				e.Delta = delta
				carry = 0
			}
			kept = append(kept, e)
		}
		if carry > 0 {
			kept, track.EndDelta = appendSpacers(kept, carry+uint64(track.EndDelta))
		}
		track.Events = kept
	}
	return removed, nil
}

// appendSpacers emits MaxDelta-long spacers until delta fits and returns the
// remainder.
func appendSpacers(events []*model.Event, delta uint64) ([]*model.Event, uint32) {
	for delta > constants.MaxDelta {
		events = append(events, model.NewEvent(constants.MaxDelta, smf.MetaText("")))
		delta -= constants.MaxDelta
	}
	return events, uint32(delta)
}
