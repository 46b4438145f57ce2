package model

// Document is a parsed SMF. A nil *Document means no file is loaded.
type Document struct {
	Format uint16
	// raw MThd division word: ticks per quarter note, or SMPTE when the high bit is set
	Division uint16
	Chunks   []Chunk
}

func NewDocument(chunks ...Chunk) *Document {
	return &Document{Format: 1, Division: 960, Chunks: chunks}
}

// Tracks returns the track chunks in document order. The position in the
// returned slice is the track's index.
func (d *Document) Tracks() []*Track {
	if d == nil {
		return nil
	}
	tracks := make([]*Track, 0, len(d.Chunks))
	for _, c := range d.Chunks {
		if t, ok := c.(*Track); ok && t != nil {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

func (d *Document) TrackCount() int {
	return len(d.Tracks())
}
