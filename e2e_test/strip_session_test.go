//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/midistrip/midi"
	"github.com/jsphweid/midistrip/model"
	"github.com/jsphweid/midistrip/server"
	"github.com/jsphweid/midistrip/session"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	ts       *httptest.Server
	songPath string
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "midistrip-e2e")
	if err != nil {
		panic(err.Error())
	}
	songPath = filepath.Join(dir, "song.mid")
	if err := midi.WriteMidiFile(songPath, sampleDocument(), false); err != nil {
		panic(err.Error())
	}

	ts = httptest.NewServer(server.New(session.New(), server.Options{}).Handler())

	exitVal := m.Run()

	ts.Close()
	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func sampleDocument() *model.Document {
	return model.NewDocument(
		model.NewTrack(
			model.NewEvent(0, smf.MetaTrackSequenceName("Track 0")),
			model.NewEvent(0, smf.MetaText("Unit Testing Sample MIDI File")),
			model.NewEvent(0, smf.MetaTempo(120)),
		),
		model.NewTrack(model.NewEvent(0, smf.MetaTrackSequenceName("Track 1"))),
		model.NewTrack(
			model.NewEvent(0, smf.MetaTrackSequenceName("Track 2")),
			model.NewEvent(0, gomidi.ProgramChange(0, 0)),
			model.NewEvent(0, gomidi.ProgramChange(0, 1)),
			model.NewEvent(0, gomidi.ControlChange(0, 10, 64)),
			model.NewEvent(0, gomidi.NoteOn(0, 60, 100)),
			model.NewEvent(480, gomidi.NoteOff(0, 60)),
		),
		model.NewTrack(model.NewEvent(0, smf.MetaTrackSequenceName("Track 3"))),
	)
}

func call(method, path string, body any, out any) int {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err.Error())
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		panic(err.Error())
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err.Error())
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			panic(err.Error())
		}
	}
	return resp.StatusCode
}

func TestStripSessionE2E(t *testing.T) {
	assert := assert.New(t)

	var doc model.DocumentResponse
	assert.Equal(200, call(http.MethodPost, "/document", model.OpenRequestBody{Path: songPath}, &doc))
	assert.Equal(4, doc.Tracks)

	var tracks model.TracksResponse
	assert.Equal(200, call(http.MethodGet, "/tracks", nil, &tracks))
	assert.Equal([]string{"0 - Track 0", "1 - Track 1", "2 - Track 2", "3 - Track 3"}, tracks.Labels)

	var stripped model.StripResponse
	assert.Equal(200, call(http.MethodPost, "/strip/tracks", nil, &stripped))
	assert.Equal(model.StripResponse{Removed: 2, Status: "2 empty tracks deleted.  2 tracks remaining."}, stripped)

	assert.Equal(200, call(http.MethodPost, "/strip/events", nil, &stripped))
	assert.Equal(model.StripResponse{Removed: 3, Status: "3 CC/PC messages deleted."}, stripped)

	out := filepath.Join(filepath.Dir(songPath), "song.stripped.mid")
	assert.Equal(200, call(http.MethodPost, "/save", model.SaveRequestBody{Path: out}, &doc))
	assert.False(doc.Unsaved)

	assert.Equal(200, call(http.MethodDelete, "/document", nil, &doc))
	assert.False(doc.Loaded)

	result, err := midi.ReadMidiFile(out)
	assert.NoError(err)
	assert.Equal(2, result.TrackCount())
	for _, tr := range result.Tracks() {
		for _, e := range tr.Events {
			assert.NotEqual(model.ProgramChange, e.Kind)
			assert.NotEqual(model.ControlChange, e.Kind)
		}
	}
}
