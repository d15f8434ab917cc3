package deps

import (
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "stub-tool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	statuses := CheckBinaries([]Requirement{
		{Name: "Stub", Command: stub, Description: "test tool"},
		{Name: "Absent", Command: filepath.Join(binDir, "missing-tool")},
		{Name: "Blank", Command: "   "},
	})

	if len(statuses) != 3 {
		t.Fatalf("statuses = %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("stub unavailable: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("missing tool reported available: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("blank command: %+v", statuses[2])
	}
}

func TestRequiredMarksWhisperOptionalWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Subtitles.Enabled = false
	for _, req := range Required(&cfg) {
		if req.Name == "Whisper" && !req.Optional {
			t.Fatal("whisper should be optional with subtitles disabled")
		}
	}

	cfg.Subtitles.Enabled = true
	for _, req := range Required(&cfg) {
		if req.Name == "Whisper" && req.Optional {
			t.Fatal("whisper should be required with subtitles enabled")
		}
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Name: "A", Available: true},
		{Name: "B", Available: false, Optional: true},
		{Name: "C", Available: false},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0].Name != "C" {
		t.Fatalf("missing = %+v", missing)
	}
}
