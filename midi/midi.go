package midi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jsphweid/midistrip/chunk"
	"github.com/jsphweid/midistrip/constants"
	"github.com/jsphweid/midistrip/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "Error parsing midi file... " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "Error writing midi file... " + e.Err.Error() }
func (e *EncodeError) Unwrap() error { return e.Err }

var errNoHeader = errors.New("missing MThd header chunk")

// handed to gomidi in place of the file's own division word
const metricDivision = 96

// Parse decodes an SMF. Tracks go through gomidi; chunks it does not model
// are kept as model.UnknownChunk in their original position.
func Parse(data []byte) (doc *model.Document, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			e = &DecodeError{Err: fmt.Errorf("%v", r)}
		}
	}()

	raws, err := chunk.Split(data)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(raws) == 0 || raws[0].ID != constants.HeaderChunkID {
		return nil, &DecodeError{Err: errNoHeader}
	}
	header := raws[0].Data
	if len(header) < constants.HeaderSize {
		return nil, &DecodeError{Err: fmt.Errorf("MThd is %d bytes, want %d", len(header), constants.HeaderSize)}
	}

	// gomidi only sees the header and the tracks. Its reader handles metric
	// divisions only, and the real division stays in the document anyway.
	gmHeader := append([]byte(nil), header[:constants.HeaderSize]...)
	binary.BigEndian.PutUint16(gmHeader[4:6], metricDivision)
	trackRaws := []chunk.Raw{{ID: constants.HeaderChunkID, Data: gmHeader}}
	for _, r := range raws[1:] {
		if r.ID == constants.TrackChunkID {
			trackRaws = append(trackRaws, r)
		}
	}
	binary.BigEndian.PutUint16(gmHeader[2:4], uint16(len(trackRaws)-1))

	var tracks []smf.Track
	if len(trackRaws) > 1 {
		parsed, err := smf.ReadFrom(bytes.NewReader(chunk.Join(trackRaws)))
		if err != nil {
			return nil, &DecodeError{Err: err}
		}
		tracks = parsed.Tracks
	}
	if len(tracks) != len(trackRaws)-1 {
		return nil, &DecodeError{Err: fmt.Errorf("decoded %d tracks, file has %d", len(tracks), len(trackRaws)-1)}
	}

	doc = &model.Document{
		Format:   binary.BigEndian.Uint16(header[0:2]),
		Division: binary.BigEndian.Uint16(header[4:6]),
	}
	next := 0
	for _, r := range raws[1:] {
		switch r.ID {
		case constants.HeaderChunkID:
			return nil, &DecodeError{Err: errors.New("more than one MThd chunk")}
		case constants.TrackChunkID:
			doc.Chunks = append(doc.Chunks, fromSMFTrack(tracks[next]))
			next++
		default:
			data := make([]byte, len(r.Data))
			copy(data, r.Data)
			doc.Chunks = append(doc.Chunks, &model.UnknownChunk{ID: r.ID, Data: data})
		}
	}
	return doc, nil
}

func fromSMFTrack(tr smf.Track) *model.Track {
	t := &model.Track{Events: make([]*model.Event, 0, len(tr))}
	for _, evt := range tr {
		msg := make([]byte, len(evt.Message))
		copy(msg, evt.Message)
		t.Events = append(t.Events, model.NewEvent(evt.Delta, msg))
	}
	if n := len(t.Events); n > 0 && t.Events[n-1].Kind == model.EndOfTrack {
		t.EndDelta = t.Events[n-1].Delta
		t.Events = t.Events[:n-1]
	}
	return t
}

func toSMFTrack(t *model.Track) smf.Track {
	tr := make(smf.Track, 0, len(t.Events)+1)
	for _, evt := range t.Events {
		if evt == nil || evt.Kind == model.EndOfTrack {
			continue
		}
		tr = append(tr, smf.Event{Delta: evt.Delta, Message: evt.Message})
	}
	tr.Close(t.EndDelta)
	return tr
}

// encodeTrack runs one track through gomidi and returns the MTrk chunk body.
func encodeTrack(t *model.Track) (res []byte, e error) {
	defer func() {
		if r := recover(); r != nil {
			e = fmt.Errorf("%v", r)
		}
	}()

	s := smf.New()
	if err := s.Add(toSMFTrack(t)); err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if _, err := s.WriteTo(buf); err != nil {
		return nil, err
	}
	raws, err := chunk.Split(buf.Bytes())
	if err != nil {
		return nil, err
	}
	for _, r := range raws {
		if r.ID == constants.TrackChunkID {
			return r.Data, nil
		}
	}
	return nil, errors.New("encoder produced no MTrk chunk")
}

// Serialize encodes doc. The header track count is recomputed, so a document
// that lost tracks to stripping stays consistent.
func Serialize(doc *model.Document) ([]byte, error) {
	if doc == nil {
		return nil, &EncodeError{Err: errors.New("no document")}
	}

	header := make([]byte, constants.HeaderSize)
	binary.BigEndian.PutUint16(header[0:2], doc.Format)
	binary.BigEndian.PutUint16(header[2:4], uint16(doc.TrackCount()))
	binary.BigEndian.PutUint16(header[4:6], doc.Division)

	buf := new(bytes.Buffer)
	chunk.Write(buf, chunk.Raw{ID: constants.HeaderChunkID, Data: header})
	for i, c := range doc.Chunks {
		switch c := c.(type) {
		case *model.Track:
			if c == nil {
				continue
			}
			data, err := encodeTrack(c)
			if err != nil {
				return nil, &EncodeError{Err: fmt.Errorf("chunk %d: %w", i, err)}
			}
			chunk.Write(buf, chunk.Raw{ID: constants.TrackChunkID, Data: data})
		case *model.UnknownChunk:
			if c == nil {
				continue
			}
			if len(c.ID) != 4 {
				return nil, &EncodeError{Err: fmt.Errorf("chunk %d: id %q is not 4 bytes", i, c.ID)}
			}
			chunk.Write(buf, chunk.Raw{ID: c.ID, Data: c.Data})
		}
	}
	return buf.Bytes(), nil
}
