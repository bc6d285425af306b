package sidecar

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Line is the text and confidence of one EasyOCR-shaped record.
type Line struct {
	Text       string
	Confidence float64
}

// Lines returns the recognized text of every record in reading order.
// Records with blank text are skipped. Records that are not JSON objects
// are an error; unknown fields are ignored.
func (d *Document) Lines() ([]Line, error) {
	lines := make([]Line, 0, len(d.ReadResult))
	for i, raw := range d.ReadResult {
		var rec struct {
			Text      string  `json:"text"`
			Confident float64 `json:"confident"`
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if strings.TrimSpace(rec.Text) == "" {
			continue
		}
		lines = append(lines, Line{Text: rec.Text, Confidence: rec.Confident})
	}
	return lines, nil
}
