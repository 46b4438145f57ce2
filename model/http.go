package model

type OpenRequestBody struct {
	Path string `json:"path"`
}

type SaveRequestBody struct {
	Path      string `json:"path"`
	Overwrite bool   `json:"overwrite"`
}

type DocumentResponse struct {
	SessionID   string `json:"session_id"`
	Loaded      bool   `json:"loaded"`
	Filename    string `json:"filename,omitempty"`
	Tracks      int    `json:"tracks"`
	Unsaved     bool   `json:"unsaved"`
	CancelClose bool   `json:"cancel_close"`
	Status      string `json:"status"`
}

type TrackSummary struct {
	Index    int    `json:"index" yaml:"index"`
	Name     string `json:"name" yaml:"name"`
	Events   int    `json:"events" yaml:"events"`
	NoteOns  int    `json:"note_ons" yaml:"note_ons"`
	Unwanted int    `json:"unwanted" yaml:"unwanted"`
	Empty    bool   `json:"empty" yaml:"empty"`
}

type TracksResponse struct {
	Labels []string       `json:"labels"`
	Tracks []TrackSummary `json:"tracks"`
}

type TrackDataResponse struct {
	Index int    `json:"index"`
	Data  string `json:"data"`
}

type StripResponse struct {
	Removed int    `json:"removed"`
	Status  string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
