package ffprobe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rational is an exact frame rate as reported by ffprobe, e.g. 30000/1001
// for NTSC material. Kept as a fraction so frame counts stay exact.
type Rational struct {
	Num int64
	Den int64
}

// ParseRational parses ffprobe's avg_frame_rate field. A bare integer is
// accepted as a denominator of one. A zero denominator is rejected.
func ParseRational(value string) (Rational, error) {
	value = strings.TrimSpace(value)
	numPart, denPart, found := strings.Cut(value, "/")
	num, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("parse frame rate %q: %w", value, err)
	}
	den := int64(1)
	if found {
		den, err = strconv.ParseInt(denPart, 10, 64)
		if err != nil {
			return Rational{}, fmt.Errorf("parse frame rate %q: %w", value, err)
		}
	}
	if den == 0 {
		return Rational{}, fmt.Errorf("frame rate %q has zero denominator", value)
	}
	return Rational{Num: num, Den: den}, nil
}

// Float returns the frame rate in frames per second.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Frames converts a duration in seconds to a whole frame count. The
// duration is multiplied by the numerator before dividing so NTSC rates
// stay accurate: 10 seconds at 30000/1001 is 299 frames, not 300.
func (r Rational) Frames(durationSeconds float64) int64 {
	if r.Den == 0 {
		return 0
	}
	return int64(math.Floor(durationSeconds * float64(r.Num) / float64(r.Den)))
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}
