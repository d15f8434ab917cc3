package transcribe

import (
	"fmt"
	"math"
	"strings"
)

// Segment is one timed span of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Document is an ordered list of segments ready for SRT rendering.
type Document struct {
	Language string
	Segments []Segment
}

// FormatTimestamp renders seconds as an SRT timestamp, HH:MM:SS,mmm.
// Milliseconds round to nearest and carry into the seconds on 1000.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := math.Floor(seconds)
	millis := int(math.Round((seconds - whole) * 1000))
	total := int(whole)
	if millis >= 1000 {
		millis -= 1000
		total++
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// RenderSRT produces the subtitle file body: 1-based cue indexes,
// timestamp ranges, trimmed text, blank line between cues.
func (d Document) RenderSRT() string {
	var builder strings.Builder
	for i, segment := range d.Segments {
		fmt.Fprintf(&builder, "%d\n", i+1)
		fmt.Fprintf(&builder, "%s --> %s\n", FormatTimestamp(segment.Start), FormatTimestamp(segment.End))
		fmt.Fprintf(&builder, "%s\n\n", strings.TrimSpace(segment.Text))
	}
	return builder.String()
}
