package ffprobe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/services"
)

func TestParseRational(t *testing.T) {
	cases := []struct {
		input   string
		num     int64
		den     int64
		wantErr bool
	}{
		{input: "30000/1001", num: 30000, den: 1001},
		{input: "25/1", num: 25, den: 1},
		{input: "24", num: 24, den: 1},
		{input: "60000/1001", num: 60000, den: 1001},
		{input: "0/0", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "30/x", wantErr: true},
	}
	for _, tc := range cases {
		rate, err := ParseRational(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRational(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRational(%q): %v", tc.input, err)
			continue
		}
		if rate.Num != tc.num || rate.Den != tc.den {
			t.Errorf("ParseRational(%q) = %d/%d, want %d/%d", tc.input, rate.Num, rate.Den, tc.num, tc.den)
		}
	}
}

func TestRationalFrames(t *testing.T) {
	ntsc := Rational{Num: 30000, Den: 1001}
	if frames := ntsc.Frames(10.0); frames != 299 {
		t.Fatalf("10s at 30000/1001 = %d frames, want 299", frames)
	}
	pal := Rational{Num: 25, Den: 1}
	if frames := pal.Frames(10.0); frames != 250 {
		t.Fatalf("10s at 25/1 = %d frames, want 250", frames)
	}
	if frames := (Rational{}).Frames(10.0); frames != 0 {
		t.Fatalf("zero rational = %d frames, want 0", frames)
	}
}

func writeStubMedia(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatalf("write stub media: %v", err)
	}
	return path
}

func TestProbe(t *testing.T) {
	path := writeStubMedia(t)
	restore := SetCommandRunnerForTests(func(_ context.Context, _ string, args ...string) ([]byte, error) {
		joined := strings.Join(args, " ")
		if strings.Contains(joined, "avg_frame_rate") {
			return []byte("30000/1001\n10.500000\n"), nil
		}
		return []byte("1920,1080\n"), nil
	})
	defer restore()

	result, err := Probe(context.Background(), "ffprobe", path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if result.FrameRate.Num != 30000 || result.FrameRate.Den != 1001 {
		t.Fatalf("frame rate = %s", result.FrameRate)
	}
	if result.DurationSeconds != 10.5 {
		t.Fatalf("duration = %f", result.DurationSeconds)
	}
	if result.Width != 1920 || result.Height != 1080 {
		t.Fatalf("dimensions = %dx%d", result.Width, result.Height)
	}
	if result.Portrait() {
		t.Fatal("landscape clip reported as portrait")
	}
	if frames := result.FrameCount(); frames != 314 {
		t.Fatalf("frame count = %d, want 314", frames)
	}
}

func TestProbeMissingFile(t *testing.T) {
	_, err := Probe(context.Background(), "ffprobe", filepath.Join(t.TempDir(), "absent.mp4"))
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("err = %v, want probe error", err)
	}
}

func TestProbeToolFailure(t *testing.T) {
	path := writeStubMedia(t)
	restore := SetCommandRunnerForTests(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})
	defer restore()

	_, err := Probe(context.Background(), "ffprobe", path)
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("err = %v, want probe error", err)
	}
}

func TestProbeMalformedOutput(t *testing.T) {
	path := writeStubMedia(t)
	restore := SetCommandRunnerForTests(func(context.Context, string, ...string) ([]byte, error) {
		return []byte("N/A\n"), nil
	})
	defer restore()

	_, err := Probe(context.Background(), "ffprobe", path)
	if !errors.Is(err, services.ErrProbe) {
		t.Fatalf("err = %v, want probe error", err)
	}
}
