package repository

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

const filePerm = 0o644

// readCollection decodes the document at path into out.  A missing or
// blank file leaves out untouched and is not an error.
func readCollection(path string, codec Codec, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return ioErr("read", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := codec.Unmarshal(data, out); err != nil {
		return ioErr("decode", path, err)
	}
	return nil
}

// writeFileAtomic replaces path with data.  renameio writes a temp file
// in the same directory, syncs it and renames it into place, so readers
// see either the old document or the new one, never a truncated file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ioErr("mkdir", dir, err)
	}
	if err := renameio.WriteFile(path, data, filePerm); err != nil {
		return ioErr("write", path, err)
	}
	return nil
}

// removeTempFiles deletes the hidden temp files an interrupted
// writeFileAtomic leaves next to path (".<name>" followed by a suffix).
func removeTempFiles(path string) {
	pattern := filepath.Join(filepath.Dir(path), "."+globEscape(filepath.Base(path))+"?*")
	matches, _ := filepath.Glob(pattern)
	for _, m := range matches {
		_ = os.Remove(m)
	}
}

func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
