package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/midistrip/constants"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func IsMidiPath(path string) bool {
	return slices.Contains(constants.MidiExtensions, strings.ToLower(filepath.Ext(path)))
}

// GatherAllMidiPaths expands each path: files are taken as given, directories
// are walked for .mid/.midi files. maxNum of 0 means no limit.
func GatherAllMidiPaths(paths []string, maxNum int) ([]string, error) {
	var res []string
	full := func() bool { return maxNum > 0 && len(res) >= maxNum }

	for _, path := range paths {
		if full() {
			break
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			res = append(res, path)
			continue
		}
		walk := func(s string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("walking %s: %w", s, err)
			}
			if full() {
				return filepath.SkipAll
			}
			if !d.IsDir() && IsMidiPath(s) {
				res = append(res, s)
			}
			return nil
		}
		if err := filepath.WalkDir(path, walk); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

// Pluralize returns singular for a count of exactly one.
func Pluralize[A constraints.Integer](n A, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
