package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/jsphweid/midistrip/logging"
	"github.com/jsphweid/midistrip/model"
	"github.com/jsphweid/midistrip/report"
	"github.com/jsphweid/midistrip/session"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type Options struct {
	AllowedOrigins []string
	// Autosave writes the document back to its file AutosaveDelay after the
	// last successful strip.
	Autosave      bool
	AutosaveDelay time.Duration
	Logger        *zap.Logger
}

// Server exposes one session over HTTP. Every handler holds mu for its whole
// run, so the session only ever sees one caller at a time.
type Server struct {
	mu       sync.Mutex
	sess     *session.Session
	logger   *zap.Logger
	autosave func(func())
	handler  http.Handler
}

func New(sess *session.Session, opts Options) *Server {
	s := &Server{
		sess:   sess,
		logger: logging.OrNop(opts.Logger),
	}
	if opts.Autosave {
		s.autosave = debounce.New(opts.AutosaveDelay)
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/document", s.handleGetDocument).Methods(http.MethodGet)
	router.HandleFunc("/document", s.handleOpenDocument).Methods(http.MethodPost)
	router.HandleFunc("/document", s.handleCloseDocument).Methods(http.MethodDelete)
	router.HandleFunc("/tracks", s.handleTracks).Methods(http.MethodGet)
	router.HandleFunc("/tracks/{index}", s.handleTrackData).Methods(http.MethodGet)
	router.HandleFunc("/strip/tracks", s.handleStripTracks).Methods(http.MethodPost)
	router.HandleFunc("/strip/events", s.handleStripEvents).Methods(http.MethodPost)
	router.HandleFunc("/save", s.handleSave).Methods(http.MethodPost)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})
	s.handler = c.Handler(router)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) documentResponse() model.DocumentResponse {
	return model.DocumentResponse{
		SessionID:   s.sess.ID.String(),
		Loaded:      s.sess.IsFileLoaded(),
		Filename:    s.sess.Filename(),
		Tracks:      len(s.sess.TrackList()),
		Unsaved:     s.sess.UnsavedChanges(),
		CancelClose: s.sess.CancelClose(),
		Status:      s.sess.Status(),
	}
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.documentResponse())
}

func (s *Server) handleOpenDocument(w http.ResponseWriter, r *http.Request) {
	var input model.OpenRequestBody
	if err := decodeBody(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body: "+err.Error())
		return
	}
	if input.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sess.Read(input.Path) {
		writeError(w, http.StatusUnprocessableEntity, s.sess.Status())
		return
	}
	writeJSON(w, http.StatusOK, s.documentResponse())
}

func (s *Server) handleCloseDocument(w http.ResponseWriter, r *http.Request) {
	answer, err := session.ParseAnswer(r.URL.Query().Get("answer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sess.RequestClose(func() session.Answer { return answer }) {
		writeError(w, http.StatusConflict, "Close cancelled: "+s.sess.Status())
		return
	}
	writeJSON(w, http.StatusOK, s.documentResponse())
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.sess.Document()
	if doc == nil {
		writeError(w, http.StatusNotFound, "No file loaded.")
		return
	}
	writeJSON(w, http.StatusOK, model.TracksResponse{
		Labels: report.TrackList(doc),
		Tracks: report.Summaries(doc),
	})
}

func (s *Server) handleTrackData(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "track index must be an integer")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := report.TrackData(report.GetTrack(s.sess.Document(), index))
	if !ok {
		writeError(w, http.StatusNotFound, "No track "+strconv.Itoa(index)+".")
		return
	}
	s.sess.SelectTrack(index)
	writeJSON(w, http.StatusOK, model.TrackDataResponse{Index: index, Data: data})
}

func (s *Server) handleStripTracks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondStrip(w, s.sess.StripEmptyTracks())
}

func (s *Server) handleStripEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondStrip(w, s.sess.StripUnwantedMessages())
}

// respondStrip must be called with mu held.
func (s *Server) respondStrip(w http.ResponseWriter, removed int) {
	if removed < 0 {
		writeError(w, http.StatusConflict, s.sess.Status())
		return
	}
	if removed > 0 {
		s.scheduleAutosave()
	}
	writeJSON(w, http.StatusOK, model.StripResponse{Removed: removed, Status: s.sess.Status()})
}

func (s *Server) scheduleAutosave() {
	if s.autosave == nil || s.sess.Filename() == "" {
		return
	}
	s.autosave(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.sess.UnsavedChanges() {
			return
		}
		if s.sess.Save(true) {
			s.logger.Info("autosaved", zap.String("file", s.sess.Filename()))
		} else {
			s.logger.Warn("autosave failed", zap.String("status", s.sess.Status()))
		}
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var input model.SaveRequestBody
	if err := decodeBody(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if input.Path == "" {
		ok = s.sess.Save(input.Overwrite)
	} else {
		ok = s.sess.Write(input.Path, input.Overwrite)
	}
	if !ok {
		writeError(w, http.StatusConflict, s.sess.Status())
		return
	}
	writeJSON(w, http.StatusOK, s.documentResponse())
}
