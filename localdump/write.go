package localdump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink writes exported documents below one crawl root.
type Sink struct {
	Root string
}

func NewSink(root string) (*Sink, error) {
	if root == "" {
		return nil, fmt.Errorf("localdump: export root is empty")
	}
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("localdump: couldn't create export root %s: %w", root, err)
	}
	return &Sink{Root: root}, nil
}

// WriteJSON stores doc as indented JSON in root/subpath/filename, overwriting whatever was there.
// Message bodies are HTML, so <, > and & are written as they are.  It returns the path written.
func (s *Sink) WriteJSON(doc any, filename string, subpath string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("localdump: couldn't marshal %s: %w", filename, err)
	}

	return s.create(filename, subpath, func(f *os.File) error {
		_, err := buf.WriteTo(f)
		return err
	})
}

// WriteStream copies r into root/subpath/filename.
func (s *Sink) WriteStream(r io.Reader, filename string, subpath string) (string, error) {
	return s.create(filename, subpath, func(f *os.File) error {
		_, err := io.Copy(f, r)
		return err
	})
}

// WriteText stores contents verbatim.
func (s *Sink) WriteText(contents string, filename string, subpath string) (string, error) {
	return s.create(filename, subpath, func(f *os.File) error {
		_, err := f.WriteString(contents)
		return err
	})
}

func (s *Sink) create(filename string, subpath string, fill func(*os.File) error) (string, error) {
	directory := s.Root
	if subpath != "" {
		directory = filepath.Join(s.Root, subpath)
	}

	if err := os.MkdirAll(directory, 0750); err != nil {
		return "", fmt.Errorf("localdump: couldn't create directory %s: %w", directory, err)
	}

	abs := filepath.Join(directory, Sanitize(filename))

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("localdump: couldn't create file %s: %w", abs, err)
	}

	if err := fill(f); err != nil {
		f.Close()
		return "", fmt.Errorf("localdump: couldn't write to file %s: %w", abs, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("localdump: couldn't close file %s: %w", abs, err)
	}

	return abs, nil
}
