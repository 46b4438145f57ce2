package report

import (
	"testing"

	"github.com/jsphweid/midistrip/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func named(n string, rest ...*model.Event) *model.Track {
	return model.NewTrack(append([]*model.Event{model.NewEvent(0, smf.MetaTrackSequenceName(n))}, rest...)...)
}

func threeTracks() *model.Document {
	return model.NewDocument(named("Track 0"), named("Track 1"), named("Track 2"))
}

func TestTrackListNilDocument(t *testing.T) {
	assert.Nil(t, TrackList(nil))
}

func TestTrackListEmptyDocument(t *testing.T) {
	list := TrackList(model.NewDocument())
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTrackListNames(t *testing.T) {
	assert.Equal(t, []string{"0 - Track 0", "1 - Track 1", "2 - Track 2"}, TrackList(threeTracks()))
}

func TestTrackListSkipsUnknownChunksAndUsesLastName(t *testing.T) {
	doc := model.NewDocument(
		&model.UnknownChunk{ID: "XFIH"},
		model.NewTrack(model.NewEvent(0, midi.NoteOn(0, 60, 100))),
		&model.UnknownChunk{ID: "XFIH"},
		named("first", model.NewEvent(0, smf.MetaTrackSequenceName("second"))),
	)
	assert.Equal(t, []string{"0 - Unnamed", "1 - second"}, TrackList(doc))
}

func TestTrackData(t *testing.T) {
	assert := assert.New(t)

	data, ok := TrackData(nil)
	assert.False(ok)
	assert.Equal("", data)

	data, ok = TrackData(model.NewTrack())
	assert.True(ok)
	assert.Equal("", data)

	events := []*model.Event{
		model.NewEvent(0, smf.MetaTrackSequenceName("Track 0")),
		model.NewEvent(0, smf.MetaText("Unit Testing Sample MIDI File")),
		model.NewEvent(0, smf.MetaMeter(4, 4)),
	}
	data, ok = TrackData(model.NewTrack(events...))
	assert.True(ok)
	assert.Equal(events[0].String()+"\n"+events[1].String()+"\n"+events[2].String()+"\n", data)
}

func TestGetTrack(t *testing.T) {
	doc := threeTracks()
	tracks := doc.Tracks()

	cases := []struct {
		name  string
		doc   *model.Document
		index int
		want  *model.Track
	}{
		{"nil document", nil, 0, nil},
		{"empty document", model.NewDocument(), 0, nil},
		{"first", doc, 0, tracks[0]},
		{"last", doc, 2, tracks[2]},
		{"negative", doc, -10, nil},
		{"past the end", doc, 999, nil},
		{"one past the end", doc, 3, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Same(t, c.want, GetTrack(c.doc, c.index))
		})
	}
}

func TestSummaries(t *testing.T) {
	doc := model.NewDocument(
		named("piano",
			model.NewEvent(0, midi.ProgramChange(0, 1)),
			model.NewEvent(0, midi.NoteOn(0, 60, 100)),
			model.NewEvent(10, midi.NoteOff(0, 60)),
			model.NewEvent(0, midi.ControlChange(0, 7, 90)),
		),
		model.NewTrack(),
	)

	assert.Nil(t, Summaries(nil))
	assert.Equal(t, []model.TrackSummary{
		{Index: 0, Name: "piano", Events: 5, NoteOns: 1, Unwanted: 2, Empty: false},
		{Index: 1, Name: "Unnamed", Events: 0, Empty: true},
	}, Summaries(doc))
}
