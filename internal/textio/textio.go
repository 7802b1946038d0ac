// Package textio reads and writes whole text files for the editor.
//
// Reads normalize every line terminator (\r\n, \r, \n) to \n and terminate
// the last line; writes store the buffer exactly as typed. A file that did
// not use \n endings, or lacked a final newline, therefore changes on the
// first save even without edits.
package textio

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// TextExtensions lists the file types the editor advertises. They are
// informational: opening and saving never filter on extension.
var TextExtensions = []string{".txt", ".config", ".log", ".xml", ".json", ".md", ".sh", ".bat"}

const filePerm = 0o644

// Decode reads r to the end and returns its text with normalized line endings.
func Decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(data) + 1)

	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			b.Write(data[start:i])
			b.WriteByte('\n')
			start = i + 1
		case '\r':
			b.Write(data[start:i])
			b.WriteByte('\n')
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(data) {
		b.Write(data[start:])
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// Store performs whole-file text I/O on the local filesystem.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Load reads path and returns its normalized text.
func (s *Store) Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open")
	}
	defer f.Close()

	text, err := Decode(f)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return text, nil
}

// Save writes text to path verbatim, creating or truncating it.
func (s *Store) Save(path string, text string) error {
	if err := os.WriteFile(path, []byte(text), filePerm); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

// Write stores text through w verbatim and closes it.
func Write(w io.WriteCloser, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		_ = w.Close()
		return errors.Wrap(err, "write")
	}
	return errors.Wrap(w.Close(), "close")
}

// ModTime reports when path was last modified.
func (s *Store) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "stat")
	}
	return info.ModTime(), nil
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
