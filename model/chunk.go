package model

// Chunk is a top level unit of a document. Only *Track and *UnknownChunk
// implement it.
type Chunk interface {
	ChunkID() string
	sealed()
}

type Track struct {
	Events []*Event

	// delta of the End Of Track event; the codec adds the event back on write
	EndDelta uint32
}

func NewTrack(events ...*Event) *Track {
	return &Track{Events: events}
}

func (t *Track) ChunkID() string { return "MTrk" }
func (t *Track) sealed()         {}

// UnknownChunk is any chunk that is neither the header nor a track. It is
// carried through edits byte for byte.
type UnknownChunk struct {
	ID   string
	Data []byte
}

func (c *UnknownChunk) ChunkID() string { return c.ID }
func (c *UnknownChunk) sealed()         {}
