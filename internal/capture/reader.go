// Package capture reads session logs written by the external tracking
// process. The log is a CSV file with a header row and the columns
// time,event,x,y,button,pressed; the analyzer consumes it read-only.
package capture

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"aimscope/internal/models"
)

var expectedHeader = []string{"time", "event", "x", "y", "button", "pressed"}

// ReadFile loads a session log from disk. The second return value counts rows
// that were skipped as malformed.
func ReadFile(path string) ([]models.RawSample, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("capture: open session log: %w", err)
	}
	defer f.Close()

	samples, skipped, err := Read(f)
	if err != nil {
		return nil, 0, fmt.Errorf("capture: %s: %w", path, err)
	}
	return samples, skipped, nil
}

// Read parses a session log. Rows with unparseable fields are skipped and
// counted rather than failing the whole session; a missing or wrong header is
// an error, since it means the file is not a session log at all.
func Read(r io.Reader) ([]models.RawSample, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("empty session log")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, 0, err
	}

	var samples []models.RawSample
	skipped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		sample, ok := parseRecord(record)
		if !ok {
			skipped++
			continue
		}
		samples = append(samples, sample)
	}

	return samples, skipped, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("unexpected header %v", header)
	}
	for i, want := range expectedHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("unexpected header column %q, want %q", header[i], want)
		}
	}
	return nil
}

func parseRecord(record []string) (models.RawSample, bool) {
	if len(record) < 4 {
		return models.RawSample{}, false
	}

	t, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	if err != nil {
		return models.RawSample{}, false
	}

	var kind models.EventKind
	switch strings.TrimSpace(record[1]) {
	case "move":
		kind = models.EventMove
	case "click":
		kind = models.EventClick
	default:
		return models.RawSample{}, false
	}

	x, ok := parseCoord(record[2])
	if !ok {
		return models.RawSample{}, false
	}
	y, ok := parseCoord(record[3])
	if !ok {
		return models.RawSample{}, false
	}

	sample := models.RawSample{Time: t, Kind: kind, X: x, Y: y}
	if len(record) > 4 {
		sample.Button = strings.TrimSpace(record[4])
	}
	if len(record) > 5 {
		sample.Pressed = parsePressed(record[5])
	}
	return sample, true
}

// parseCoord accepts both integer and fractional pixel coordinates; trackers
// on high-DPI displays report fractional positions.
func parseCoord(field string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(math.Round(v)), true
}

// parsePressed handles the tracker's Python-style booleans and the blank
// value it writes for move rows.
func parsePressed(field string) *bool {
	switch strings.TrimSpace(field) {
	case "True", "true":
		v := true
		return &v
	case "False", "false":
		v := false
		return &v
	default:
		return nil
	}
}
