// Package errorlog keeps a durable, append-only record of failures that
// need operator attention: node transport errors and remote-success /
// local-failure divergences. The log is the reconciliation source when a
// wallet exists on the node with no metadata row.
package errorlog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type Recorder struct {
	path string
	mu   sync.Mutex
}

func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Record appends one timestamped line. The file is opened and closed per
// call so a crash never loses buffered records.
func (r *Recorder) Record(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s %s\n", time.Now().UTC().Format(time.RFC3339), message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append error log: %w", err)
	}

	return nil
}
