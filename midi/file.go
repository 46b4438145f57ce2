package midi

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/jsphweid/midistrip/constants"
	"github.com/jsphweid/midistrip/model"
)

var (
	ErrFileExists = errors.New("file already exists")
	ErrFileLocked = errors.New("file is being written by another process")
)

func ReadMidiFile(path string) (*model.Document, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Error reading midi file... %w", err)
	}
	return Parse(dat)
}

// WriteMidiFile serializes doc to path. An existing file is only replaced
// when overwrite is set. The bytes go to a temp file that is renamed over
// path, so a failed write never leaves a partial file behind.
func WriteMidiFile(path string, doc *model.Document, overwrite bool) error {
	dat, err := Serialize(doc)
	if err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrFileLocked, path)
	}
	// the lock file is left in place so every writer locks the same inode
	defer lock.Unlock()

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat output: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &EncodeError{Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(dat); err != nil {
		tmp.Close()
		return &EncodeError{Err: err}
	}
	if err := tmp.Chmod(constants.OutputFileMode); err != nil {
		tmp.Close()
		return &EncodeError{Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &EncodeError{Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}
