package pkg

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all Writers. Unlike io.MultiWriter a
// failing writer does not stop the rest, so log lines still reach stdout when
// the log file is unavailable.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

// Write reports len(p) only when every writer accepted all of p. Otherwise it
// returns the shortest write together with the errors of the writers that failed.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	minWritten := len(p)
	var err error
	for i, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr == nil && written < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, fmt.Errorf("writer %d: %w", i, werr))
		}
		if written < minWritten {
			minWritten = written
		}
	}
	return minWritten, err
}
