// Package session holds one open MIDI document together with the state a
// front end shows around it: the status line, the selected track and the
// flags that gate closing with unsaved work.
//
// A Session is not safe for concurrent use. Front ends that serve several
// callers must serialize access themselves.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jsphweid/midistrip/file"
	"github.com/jsphweid/midistrip/logging"
	"github.com/jsphweid/midistrip/midi"
	"github.com/jsphweid/midistrip/model"
	"github.com/jsphweid/midistrip/report"
	"github.com/jsphweid/midistrip/strip"
	"github.com/jsphweid/midistrip/util"
	"go.uber.org/zap"
)

type Session struct {
	ID uuid.UUID

	logger           *zap.Logger
	keepAbsoluteTime bool

	doc          *model.Document
	filename     string
	trackList    []string
	selected     int
	selectedData string
	status       string
	unsaved      bool
	cancelClose  bool
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithKeepAbsoluteTime makes StripUnwantedMessages fold removed deltas into
// the following events.
func WithKeepAbsoluteTime(keep bool) Option {
	return func(s *Session) { s.keepAbsoluteTime = keep }
}

func WithDocument(doc *model.Document) Option {
	return func(s *Session) { s.doc = doc }
}

func New(opts ...Option) *Session {
	s := &Session{ID: uuid.New()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger).With(zap.String("session", s.ID.String()))
	if s.doc != nil {
		s.trackList = report.TrackList(s.doc)
	}
	return s
}

func (s *Session) Document() *model.Document { return s.doc }
func (s *Session) Filename() string          { return s.filename }
func (s *Session) Status() string            { return s.status }
func (s *Session) UnsavedChanges() bool      { return s.unsaved }
func (s *Session) CancelClose() bool         { return s.cancelClose }
func (s *Session) IsFileLoaded() bool        { return s.doc != nil }
func (s *Session) SelectedTrack() int        { return s.selected }
func (s *Session) SelectedTrackData() string { return s.selectedData }

// TrackList is the label list from the last refresh.
func (s *Session) TrackList() []string {
	return append([]string(nil), s.trackList...)
}

func (s *Session) SetCancelClose(v bool) { s.cancelClose = v }

func (s *Session) setUnsaved(v bool) {
	s.unsaved = v
	if v {
		s.cancelClose = true
	}
}

func (s *Session) setStatus(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	s.logger.Debug("status", zap.String("text", s.status))
}

func (s *Session) updateTrackList() {
	if s.doc != nil {
		s.trackList = report.TrackList(s.doc)
	} else {
		s.trackList = nil
	}
	s.SelectTrack(0)
}

// SelectTrack selects a track by index and refreshes its dump. An index with
// no track selects nothing and clears the dump.
func (s *Session) SelectTrack(index int) {
	s.selected = index
	s.updateSelectedTrackData()
}

func (s *Session) updateSelectedTrackData() {
	data, _ := report.TrackData(report.GetTrack(s.doc, s.selected))
	s.selectedData = data
}

// Load adopts doc as the open document. A nil doc closes the session.
func (s *Session) Load(doc *model.Document) {
	if doc == nil {
		s.Close()
		return
	}
	s.doc = doc
	s.filename = ""
	s.updateTrackList()
	s.setStatus("Loaded MIDI File from memory.")
}

// Read loads filename. On failure the status explains why and the document
// that was open before stays open.
func (s *Session) Read(filename string) bool {
	if !file.Exists(filename) {
		s.setStatus("File not found: \"%s\".", filename)
		return false
	}

	doc, err := midi.ReadMidiFile(filename)
	if err != nil {
		s.logger.Warn("load failed", zap.String("file", filename), zap.Error(err))
		s.setStatus("Unable to load file \"%s\": %v", filename, err)
		return false
	}

	s.doc = doc
	s.filename = filename
	s.setUnsaved(false)
	s.cancelClose = false
	s.updateTrackList()
	s.setStatus("Loaded file \"%s\" with %d tracks.", filename, len(s.trackList))
	s.logger.Info("loaded", zap.String("file", filename), zap.Int("tracks", len(s.trackList)))
	return true
}

// Write saves the document to filename, replacing an existing file only when
// overwrite is set.
func (s *Session) Write(filename string, overwrite bool) bool {
	if s.doc == nil {
		s.setStatus("No open file to save.")
		return false
	}
	if err := midi.WriteMidiFile(filename, s.doc, overwrite); err != nil {
		s.logger.Warn("save failed", zap.String("file", filename), zap.Error(err))
		s.setStatus("Error saving \"%s\": %v", filename, err)
		return false
	}

	s.filename = filename
	s.cancelClose = false
	s.setUnsaved(false)
	s.setStatus("File saved to \"%s\".", filename)
	s.logger.Info("saved", zap.String("file", filename))
	return true
}

// Save writes back to the file the document came from.
func (s *Session) Save(overwrite bool) bool {
	if s.doc == nil || !s.unsaved {
		s.setStatus("No changes to save.")
		return false
	}
	if s.filename == "" {
		s.setStatus("No file name to save to.")
		return false
	}
	return s.Write(s.filename, overwrite)
}

func (s *Session) Close() {
	s.doc = nil
	s.filename = ""
	s.updateTrackList()
	s.setUnsaved(false)
	s.setStatus("File closed.")
}

func (s *Session) StripEmptyTracks() int {
	if s.doc == nil {
		s.setStatus("No file loaded.")
		return strip.NoDocument
	}

	deleted, err := strip.StripEmptyTracks(s.doc)
	if err != nil {
		s.setStatus("%v", err)
		return deleted
	}
	if deleted == 0 {
		s.setStatus("No empty tracks found.")
		return 0
	}

	s.updateTrackList()
	remaining := len(s.trackList)
	s.setStatus("%d empty %s deleted.  %d %s remaining.",
		deleted, util.Pluralize(deleted, "track", "tracks"),
		remaining, util.Pluralize(remaining, "track", "tracks"))
	s.setUnsaved(true)
	s.logger.Info("stripped empty tracks", zap.Int("deleted", deleted), zap.Int("remaining", remaining))
	return deleted
}

// StripUnwantedMessages removes CC and PC messages. "No document" and
// "nothing to strip" get different status texts, and only an actual removal
// marks the session unsaved.
func (s *Session) StripUnwantedMessages() int {
	if s.doc == nil {
		s.setStatus("No file loaded.")
		return strip.NoDocument
	}

	stripEvents := strip.StripUnwantedEvents
	if s.keepAbsoluteTime {
		stripEvents = strip.StripUnwantedEventsKeepTime
	}
	deleted, err := stripEvents(s.doc)
	if err != nil {
		s.setStatus("%v", err)
		return deleted
	}
	if deleted == 0 {
		s.setStatus("No CC/PC messages found.")
		return 0
	}

	s.updateSelectedTrackData()
	s.setStatus("%d CC/PC %s deleted.", deleted, util.Pluralize(deleted, "message", "messages"))
	s.setUnsaved(true)
	s.logger.Info("stripped CC/PC messages", zap.Int("deleted", deleted))
	return deleted
}
