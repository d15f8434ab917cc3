// Package ffprobe extracts the stream metadata the transcode planner
// needs: frame rate, duration, and pixel dimensions.
package ffprobe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"clipforge/internal/services"
)

// runCommandOutput executes ffprobe and returns its stdout. Package
// variable so tests can substitute canned output.
var runCommandOutput = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// SetCommandRunnerForTests overrides the ffprobe runner during tests.
func SetCommandRunnerForTests(fn func(context.Context, string, ...string) ([]byte, error)) func() {
	previous := runCommandOutput
	runCommandOutput = fn
	return func() {
		runCommandOutput = previous
	}
}

// Result holds the probed metadata for a single media file.
type Result struct {
	FrameRate       Rational
	DurationSeconds float64
	Width           int
	Height          int
}

// FrameCount is the number of whole frames in the probed file.
func (r Result) FrameCount() int64 {
	return r.FrameRate.Frames(r.DurationSeconds)
}

// Portrait reports whether the video is taller than it is wide.
func (r Result) Portrait() bool {
	return r.Height > r.Width
}

// Probe runs ffprobe against path and returns frame rate, duration, and
// dimensions. Files with no video stream or unreadable metadata fail with
// a probe error.
func Probe(ctx context.Context, binary, path string) (Result, error) {
	if _, err := os.Stat(path); err != nil {
		return Result{}, services.Wrap(services.ErrProbe, "ffprobe", "probe", "media file not accessible", err)
	}

	rate, duration, err := probeRateAndDuration(ctx, binary, path)
	if err != nil {
		return Result{}, err
	}
	width, height, err := probeDimensions(ctx, binary, path)
	if err != nil {
		return Result{}, err
	}
	return Result{
		FrameRate:       rate,
		DurationSeconds: duration,
		Width:           width,
		Height:          height,
	}, nil
}

func probeRateAndDuration(ctx context.Context, binary, path string) (Rational, float64, error) {
	output, err := runCommandOutput(ctx, binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=avg_frame_rate:format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	if err != nil {
		return Rational{}, 0, services.Wrap(services.ErrProbe, "ffprobe", "probe", "ffprobe execution failed", err)
	}
	fields := strings.Fields(string(output))
	if len(fields) < 2 {
		return Rational{}, 0, services.Wrap(services.ErrProbe, "ffprobe", "probe",
			fmt.Sprintf("unexpected ffprobe output %q", strings.TrimSpace(string(output))), nil)
	}
	rate, err := ParseRational(fields[0])
	if err != nil {
		return Rational{}, 0, services.Wrap(services.ErrProbe, "ffprobe", "probe", "invalid frame rate", err)
	}
	duration, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Rational{}, 0, services.Wrap(services.ErrProbe, "ffprobe", "probe", "invalid duration", err)
	}
	return rate, duration, nil
}

func probeDimensions(ctx context.Context, binary, path string) (int, int, error) {
	output, err := runCommandOutput(ctx, binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=p=0",
		path)
	if err != nil {
		return 0, 0, services.Wrap(services.ErrProbe, "ffprobe", "probe", "ffprobe execution failed", err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	widthPart, heightPart, found := strings.Cut(strings.TrimSpace(line), ",")
	if !found {
		return 0, 0, services.Wrap(services.ErrProbe, "ffprobe", "probe",
			fmt.Sprintf("unexpected dimensions output %q", line), nil)
	}
	width, err := strconv.Atoi(strings.TrimSpace(widthPart))
	if err != nil {
		return 0, 0, services.Wrap(services.ErrProbe, "ffprobe", "probe", "invalid width", err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(heightPart))
	if err != nil {
		return 0, 0, services.Wrap(services.ErrProbe, "ffprobe", "probe", "invalid height", err)
	}
	return width, height, nil
}
