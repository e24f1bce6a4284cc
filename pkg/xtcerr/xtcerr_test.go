package xtcerr

import (
	"errors"
	"testing"
)

func TestFrameWrapsAndUnwraps(t *testing.T) {
	err := Frame(3, MalformedChunk)
	if !errors.Is(err, MalformedChunk) {
		t.Error("errors.Is should see through FrameError to the sentinel")
	}
	var fe *FrameError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As should recover the *FrameError")
	}
	if fe.FrameIndex != 3 {
		t.Errorf("FrameIndex = %d, want 3", fe.FrameIndex)
	}
}

func TestFrameNilPassthrough(t *testing.T) {
	if Frame(0, nil) != nil {
		t.Error("Frame(0, nil) should be nil")
	}
}
