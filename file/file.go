package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return !errors.Is(err, fs.ErrNotExist)
	}
	return !info.IsDir()
}

// OutputPath names the file a stripped copy of in is written to. With an
// empty outDir the copy sits next to in; an empty suffix means in itself.
func OutputPath(in, outDir, suffix string) string {
	dir, base := filepath.Split(in)
	if outDir != "" {
		dir = outDir
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+suffix+ext)
}
