package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		msg  []byte
		want Kind
	}{
		{"empty", nil, Unknown},
		{"data byte", []byte{0x40}, Unknown},
		{"note off", midi.NoteOff(3, 60), NoteOff},
		{"note on", midi.NoteOn(3, 60, 1), NoteOn},
		{"note on velocity 0", []byte{0x93, 60, 0}, NoteOff},
		{"poly aftertouch", []byte{0xA0, 60, 10}, PolyAftertouch},
		{"control change", midi.ControlChange(15, 7, 100), ControlChange},
		{"program change", midi.ProgramChange(9, 0), ProgramChange},
		{"channel pressure", []byte{0xD0, 10}, ChannelPressure},
		{"pitch bend", []byte{0xE0, 0x00, 0x40}, PitchBend},
		{"sysex", []byte{0xF0, 0x01, 0x02, 0xF7}, SysEx},
		{"sysex escape", []byte{0xF7, 0x01, 0x02}, SysEx},
		{"track name", smf.MetaTrackSequenceName("lead"), SequenceTrackName},
		{"tempo", smf.MetaTempo(90), SetTempo},
		{"time signature", smf.MetaMeter(3, 4), TimeSignature},
		{"text", smf.MetaText("hello"), Text},
		{"end of track", []byte{0xFF, 0x2F, 0x00}, EndOfTrack},
		{"unknown meta", []byte{0xFF, 0x60, 0x00}, UnknownMeta},
		{"short meta", []byte{0xFF}, UnknownMeta},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, KindOf(c.msg))
		})
	}
}

func TestKindString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("NoteOn", NoteOn.String())
	assert.Equal("SequenceTrackName", SequenceTrackName.String())
	assert.Equal("Kind(250)", Kind(250).String())
}

func TestEventTrackName(t *testing.T) {
	assert := assert.New(t)

	n, ok := NewEvent(0, smf.MetaTrackSequenceName("Track 0")).TrackName()
	assert.True(ok)
	assert.Equal("Track 0", n)

	_, ok = NewEvent(0, smf.MetaText("Track 0")).TrackName()
	assert.False(ok)

	var nilEvent *Event
	_, ok = nilEvent.TrackName()
	assert.False(ok)
	assert.Equal("", nilEvent.String())
}

func TestDocumentTracks(t *testing.T) {
	a := NewTrack()
	b := NewTrack(NewEvent(0, midi.NoteOn(0, 60, 100)))
	doc := NewDocument(&UnknownChunk{ID: "XFIH"}, a, nil, (*Track)(nil), b)

	assert.Equal(t, []*Track{a, b}, doc.Tracks())
	assert.Equal(t, 2, doc.TrackCount())

	var none *Document
	assert.Nil(t, none.Tracks())
	assert.Equal(t, 0, none.TrackCount())
}
