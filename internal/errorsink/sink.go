// Package errorsink implements the engine.ErrorSink handle: a single
// append-only file that accumulates one formatted line per captured step
// exception, serialized behind a mutex since many scenario pipelines may
// record concurrently.
package errorsink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileSink appends exception records to a file, creating its parent
// directory on first use if it doesn't already exist.
type FileSink struct {
	path string

	mu   sync.Mutex
	file *os.File
}

// NewFileSink returns a FileSink targeting path. The file itself is not
// opened until Prepare or the first Record call.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Prepare creates the sink's parent directory and opens the file for
// appending. Called during the coordinator's preflight (alongside option
// validation) so a bad path surfaces before any virtual user starts.
func (s *FileSink) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open()
}

func (s *FileSink) open() error {
	if s.file != nil {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("errorsink: create %q: %w", dir, err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("errorsink: open %q: %w", s.path, err)
	}
	s.file = f
	return nil
}

// Record appends one line describing a failed step's exception. It opens
// the file lazily if Prepare was never called, and swallows write errors
// beyond logging them to stderr: a broken error sink must never take down
// a running simulation.
func (s *FileSink) Record(scenarioName, stepName, userID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if openErr := s.open(); openErr != nil {
		fmt.Fprintf(os.Stderr, "errorsink: %v\n", openErr)
		return
	}

	line := fmt.Sprintf("%s scenario=%q step=%q user=%q err=%q\n",
		time.Now().UTC().Format(time.RFC3339Nano), scenarioName, stepName, userID, err.Error())

	if _, writeErr := s.file.WriteString(line); writeErr != nil {
		fmt.Fprintf(os.Stderr, "errorsink: write: %v\n", writeErr)
	}
}

// Close flushes and closes the underlying file, if open.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
