package main

import (
	"errors"
	"testing"

	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

func TestExitCodeMapsSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"cancelled", xtcerr.Cancelled, exitCancelled},
		{"malformed container", xtcerr.MalformedContainer, exitMalformedContainer},
		{"malformed chunk", xtcerr.MalformedChunk, exitMalformedContainer},
		{"frame decode failure", xtcerr.FrameDecodeFailure, exitMalformedInput},
		{"invalid option", xtcerr.InvalidOption, exitInvalidArgs},
		{"unexpected", errors.New("boom"), exitUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeUnwrapsFrameError(t *testing.T) {
	wrapped := xtcerr.Frame(4, xtcerr.MalformedChunk)
	if got := exitCode(wrapped); got != exitMalformedContainer {
		t.Errorf("exitCode(wrapped) = %d, want %d", got, exitMalformedContainer)
	}
}

func TestBuildOptionsRejectsUnknownDevice(t *testing.T) {
	if _, err := buildOptions("bogus", "cbz", false, "stucki", 0, 1.0, false, false,
		"landscape", "overlap", false, 50, false, false, "cover", 1.0, false, 0, 0); err == nil {
		t.Error("buildOptions should reject an unknown device")
	}
}

func TestBuildOptionsAppliesDefaultsAndClampsGamma(t *testing.T) {
	opts, err := buildOptions("X4", "cbz", false, "stucki", 0, 10.0, false, false,
		"landscape", "overlap", false, 50, false, false, "cover", 1.0, false, 0, 0)
	if err != nil {
		t.Fatalf("buildOptions: %v", err)
	}
	if opts.Gamma != 3.0 {
		t.Errorf("Gamma = %v, want clamped to 3.0", opts.Gamma)
	}
}

func TestBuildOptionsRejectsBadContrast(t *testing.T) {
	if _, err := buildOptions("X4", "cbz", false, "stucki", 3, 1.0, false, false,
		"landscape", "overlap", false, 50, false, false, "cover", 1.0, false, 0, 0); err == nil {
		t.Error("buildOptions should reject an invalid contrast level")
	}
}
