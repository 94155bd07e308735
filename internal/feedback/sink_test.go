package feedback

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osce-simulator/pkg"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSaveWritesHeaderAndRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	sink := NewSink(path)

	require.NoError(t, sink.Save("Great app, add more cases", pkg.RatingGood))

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"timestamp", "feedback", "rating"}, rows[0])
	assert.Equal(t, "Great app, add more cases", rows[1][1])
	assert.Equal(t, "Good", rows[1][2])

	_, err := time.Parse("2006-01-02 15:04:05", rows[1][0])
	assert.NoError(t, err, "timestamp should be well-formed")
}

func TestSaveAppendsWithoutRewritingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	sink := NewSink(path)

	require.NoError(t, sink.Save("first", pkg.RatingExcellent))
	require.NoError(t, sink.Save("second", pkg.RatingVeryPoor))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "first", rows[1][1])
	assert.Equal(t, "Excellent", rows[1][2])
	assert.Equal(t, "second", rows[2][1])
	assert.Equal(t, "Very Poor", rows[2][2])
}

func TestSaveRejectsWhitespaceOnlyFeedback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	sink := NewSink(path)

	err := sink.Save("   \t\n", pkg.RatingGood)

	assert.ErrorIs(t, err, ErrEmptyFeedback)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created on rejected feedback")
}

func TestSaveRejectsUnknownRating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	sink := NewSink(path)

	err := sink.Save("fine", "Amazing")

	assert.ErrorIs(t, err, ErrInvalidRating)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveUsesProvidedTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	sink := NewSink(path)
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

	require.NoError(t, sink.save("pi day feedback", pkg.RatingAverage, at))

	rows := readRows(t, path)
	assert.Equal(t, "2026-03-14 09:26:53", rows[1][0])
}
