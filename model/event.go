package model

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Kind is the category of an event. The set is closed: anything the codec
// hands us that is not listed here maps to Unknown or UnknownMeta.
type Kind uint8

const (
	Unknown Kind = iota
	NoteOff
	NoteOn
	PolyAftertouch
	ControlChange
	ProgramChange
	ChannelPressure
	PitchBend
	SysEx
	SequenceNumber
	Text
	Copyright
	SequenceTrackName
	InstrumentName
	Lyric
	Marker
	CuePoint
	ProgramName
	DeviceName
	ChannelPrefix
	Port
	EndOfTrack
	SetTempo
	SMPTEOffset
	TimeSignature
	KeySignature
	SequencerSpecific
	UnknownMeta
)

var kindNames = [...]string{
	Unknown:           "Unknown",
	NoteOff:           "NoteOff",
	NoteOn:            "NoteOn",
	PolyAftertouch:    "PolyAftertouch",
	ControlChange:     "ControlChange",
	ProgramChange:     "ProgramChange",
	ChannelPressure:   "ChannelPressure",
	PitchBend:         "PitchBend",
	SysEx:             "SysEx",
	SequenceNumber:    "SequenceNumber",
	Text:              "Text",
	Copyright:         "Copyright",
	SequenceTrackName: "SequenceTrackName",
	InstrumentName:    "InstrumentName",
	Lyric:             "Lyric",
	Marker:            "Marker",
	CuePoint:          "CuePoint",
	ProgramName:       "ProgramName",
	DeviceName:        "DeviceName",
	ChannelPrefix:     "ChannelPrefix",
	Port:              "Port",
	EndOfTrack:        "EndOfTrack",
	SetTempo:          "SetTempo",
	SMPTEOffset:       "SMPTEOffset",
	TimeSignature:     "TimeSignature",
	KeySignature:      "KeySignature",
	SequencerSpecific: "SequencerSpecific",
	UnknownMeta:       "UnknownMeta",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var metaKinds = map[byte]Kind{
	0x00: SequenceNumber,
	0x01: Text,
	0x02: Copyright,
	0x03: SequenceTrackName,
	0x04: InstrumentName,
	0x05: Lyric,
	0x06: Marker,
	0x07: CuePoint,
	0x08: ProgramName,
	0x09: DeviceName,
	0x20: ChannelPrefix,
	0x21: Port,
	0x2F: EndOfTrack,
	0x51: SetTempo,
	0x54: SMPTEOffset,
	0x58: TimeSignature,
	0x59: KeySignature,
	0x7F: SequencerSpecific,
}

// KindOf classifies the raw bytes of a track message. A note on with
// velocity 0 is a note off.
func KindOf(msg []byte) Kind {
	if len(msg) == 0 {
		return Unknown
	}
	status := msg[0]
	switch {
	case status == 0xFF:
		if len(msg) < 2 {
			return UnknownMeta
		}
		if k, ok := metaKinds[msg[1]]; ok {
			return k
		}
		return UnknownMeta
	case status == 0xF0 || status == 0xF7:
		return SysEx
	case status < 0x80:
		return Unknown
	}

	switch status & 0xF0 {
	case 0x80:
		return NoteOff
	case 0x90:
		if len(msg) > 2 && msg[2] == 0 {
			return NoteOff
		}
		return NoteOn
	case 0xA0:
		return PolyAftertouch
	case 0xB0:
		return ControlChange
	case 0xC0:
		return ProgramChange
	case 0xD0:
		return ChannelPressure
	case 0xE0:
		return PitchBend
	}
	return Unknown
}

type Event struct {
	Delta   uint32
	Kind    Kind
	Message smf.Message
}

func NewEvent(delta uint32, msg []byte) *Event {
	return &Event{Delta: delta, Kind: KindOf(msg), Message: smf.Message(msg)}
}

// TrackName returns the text of a SequenceTrackName event.
func (e *Event) TrackName() (string, bool) {
	if e == nil || e.Kind != SequenceTrackName {
		return "", false
	}
	var name string
	if !e.Message.GetMetaTrackName(&name) {
		return "", false
	}
	return name, true
}

func (e *Event) String() string {
	if e == nil {
		return ""
	}
	return e.Message.String()
}
