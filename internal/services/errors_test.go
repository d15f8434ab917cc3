package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapTagsSentinel(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := Wrap(ErrTranscode, "transcoder", "encode", "ffmpeg failed", cause)
	if !errors.Is(err, ErrTranscode) {
		t.Fatalf("expected ErrTranscode, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "transcoder: encode: ffmpeg failed") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestWrapWithoutMarkerDefaultsToExternalTool(t *testing.T) {
	err := Wrap(nil, "probe", "run", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool fallback, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrStorage, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestContextAnnotations(t *testing.T) {
	ctx := context.Background()
	if _, ok := JobIDFromContext(ctx); ok {
		t.Fatal("unexpected job id on empty context")
	}

	ctx = WithJobID(ctx, 42)
	ctx = WithProjectID(ctx, "7")
	ctx = WithStage(ctx, "transcoding")

	if id, ok := JobIDFromContext(ctx); !ok || id != 42 {
		t.Fatalf("job id = %d, %v", id, ok)
	}
	if id, ok := ProjectIDFromContext(ctx); !ok || id != "7" {
		t.Fatalf("project id = %q, %v", id, ok)
	}
	if stage, ok := StageFromContext(ctx); !ok || stage != "transcoding" {
		t.Fatalf("stage = %q, %v", stage, ok)
	}
}
