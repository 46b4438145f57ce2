package constants

import "os"

const ConfigEnv = "MIDISTRIP_CONFIG"

// GetConfigPath returns the config file named by MIDISTRIP_CONFIG, or "" when
// the variable is unset so callers fall back to the default search.
func GetConfigPath() string {
	return os.Getenv(ConfigEnv)
}

// UnnamedTrack is shown for tracks without a SequenceTrackName event.
const UnnamedTrack = "Unnamed"

const (
	HeaderChunkID = "MThd"
	TrackChunkID  = "MTrk"
)

// MThd data is format, ntrks and division, 2 bytes each
const HeaderSize = 6

const OutputFileMode = 0644

var MidiExtensions = []string{".mid", ".midi"}

// MaxDelta is the largest delta-time a four byte variable-length quantity holds.
const MaxDelta = 0x0FFFFFFF
