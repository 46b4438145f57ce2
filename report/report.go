package report

import (
	"fmt"
	"strings"

	"github.com/jsphweid/midistrip/constants"
	"github.com/jsphweid/midistrip/model"
	"github.com/jsphweid/midistrip/strip"
)

// TrackName is the text of the last SequenceTrackName event in t, or
// "Unnamed".
func TrackName(t *model.Track) string {
	name := constants.UnnamedTrack
	if t == nil {
		return name
	}
	for _, e := range t.Events {
		if n, ok := e.TrackName(); ok {
			name = n
		}
	}
	return name
}

// TrackList labels every track as "{index} - {name}". It returns nil when
// there is no document and an empty slice when the document has no tracks.
func TrackList(doc *model.Document) []string {
	if doc == nil {
		return nil
	}
	tracks := doc.Tracks()
	res := make([]string, 0, len(tracks))
	for i, t := range tracks {
		res = append(res, fmt.Sprintf("%d - %s", i, TrackName(t)))
	}
	return res
}

// TrackData renders each event of t on its own line. ok is false for a nil
// track.
func TrackData(t *model.Track) (data string, ok bool) {
	if t == nil {
		return "", false
	}
	var sb strings.Builder
	for _, e := range t.Events {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	return sb.String(), true
}

func GetTrack(doc *model.Document, index int) *model.Track {
	if doc == nil || index < 0 {
		return nil
	}
	tracks := doc.Tracks()
	if index >= len(tracks) {
		return nil
	}
	return tracks[index]
}

func Summarize(index int, t *model.Track) model.TrackSummary {
	s := model.TrackSummary{
		Index: index,
		Name:  TrackName(t),
		Empty: strip.IsEmpty(t),
	}
	if t == nil {
		return s
	}
	s.Events = len(t.Events)
	for _, e := range t.Events {
		if e == nil {
			continue
		}
		if e.Kind == model.NoteOn {
			s.NoteOns++
		}
		if strip.IsUnwanted(e) {
			s.Unwanted++
		}
	}
	return s
}

func Summaries(doc *model.Document) []model.TrackSummary {
	if doc == nil {
		return nil
	}
	tracks := doc.Tracks()
	res := make([]model.TrackSummary, 0, len(tracks))
	for i, t := range tracks {
		res = append(res, Summarize(i, t))
	}
	return res
}
