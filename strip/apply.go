package strip

import (
	"github.com/jsphweid/midistrip/model"
)

type Options struct {
	EmptyTracks      bool
	UnwantedEvents   bool
	KeepAbsoluteTime bool
}

func DefaultOptions() Options {
	return Options{EmptyTracks: true, UnwantedEvents: true}
}

type Result struct {
	Tracks int
	Events int
}

func (r Result) Changed() bool {
	return r.Tracks > 0 || r.Events > 0
}

// Apply runs the enabled passes, tracks first. The order does not change the
// outcome; it only saves scanning events of tracks that are about to go.
func Apply(doc *model.Document, opts Options) (Result, error) {
	var res Result
	if doc == nil {
		return res, ErrNoDocument
	}
	if opts.EmptyTracks {
		n, err := StripEmptyTracks(doc)
		if err != nil {
			return res, err
		}
		res.Tracks = n
	}
	if opts.UnwantedEvents {
		strip := StripUnwantedEvents
		if opts.KeepAbsoluteTime {
			strip = StripUnwantedEventsKeepTime
		}
		n, err := strip(doc)
		if err != nil {
			return res, err
		}
		res.Events = n
	}
	return res, nil
}
