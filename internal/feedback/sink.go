package feedback

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"osce-simulator/pkg"
)

// ErrEmptyFeedback is returned when the submitted text is empty or
// whitespace-only. No row is written in that case.
var ErrEmptyFeedback = errors.New("feedback text is empty")

// ErrInvalidRating is returned when the rating is not one of the five fixed
// labels.
var ErrInvalidRating = errors.New("invalid rating label")

var header = []string{"timestamp", "feedback", "rating"}

// Sink appends feedback rows to a flat CSV file. Rows are write-once: they
// are never updated or deleted. The header row is written when the file is
// first created. A mutex serializes appends within this process; there is no
// cross-process file locking.
type Sink struct {
	mu   sync.Mutex
	path string
}

// NewSink constructs a Sink writing to path. The file is created lazily on
// the first save.
func NewSink(path string) *Sink {
	return &Sink{path: path}
}

// Save validates and appends one feedback row with the current local time.
func (s *Sink) Save(text, rating string) error {
	return s.save(text, rating, time.Now())
}

func (s *Sink) save(text, rating string, at time.Time) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyFeedback
	}
	if !pkg.ValidRating(rating) {
		return fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open feedback file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write feedback header: %w", err)
		}
	}
	row := []string{at.Format("2006-01-02 15:04:05"), text, rating}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write feedback row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush feedback row: %w", err)
	}
	return nil
}
