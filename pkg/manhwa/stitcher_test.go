package manhwa

import (
	"testing"

	"github.com/xtcconv/xtcconv/pkg/testimage"
)

func TestAppendEmitsExactlyOnePageForExactHeightBuffer(t *testing.T) {
	s := New(480, 800, 50, false)
	frame := testimage.Solid(480, 800, 128)

	pages := s.Append(frame)
	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(pages))
	}
	if pages[0].Width != 480 || pages[0].Height != 800 {
		t.Fatalf("page dims = %dx%d, want 480x800", pages[0].Width, pages[0].Height)
	}

	if final := s.Finish(); final != nil {
		t.Fatalf("Finish() after exact-height buffer should be nil, got a %dx%d frame", final.Width, final.Height)
	}
}

func TestFinishPadsResidualToTop(t *testing.T) {
	s := New(100, 200, 50, false)
	frame := testimage.Solid(100, 50, 10)

	pages := s.Append(frame)
	if len(pages) != 0 {
		t.Fatalf("expected no full pages yet, got %d", len(pages))
	}

	final := s.Finish()
	if final == nil {
		t.Fatal("Finish() = nil, want a padded page")
	}
	if final.Width != 100 || final.Height != 200 {
		t.Fatalf("final dims = %dx%d, want 100x200", final.Width, final.Height)
	}
	if final.At(0, 0).R != 10 {
		t.Errorf("top-aligned content missing: (0,0) = %d, want 10", final.At(0, 0).R)
	}
	if final.At(0, 199).R != 255 {
		t.Errorf("pad region should be white by default: (0,199) = %d, want 255", final.At(0, 199).R)
	}
}

func TestFinishPadBlack(t *testing.T) {
	s := New(50, 100, 50, true)
	frame := testimage.Solid(50, 20, 0)
	s.Append(frame)

	final := s.Finish()
	if final.At(0, 99).R != 0 {
		t.Errorf("pad region should be black: got %d, want 0", final.At(0, 99).R)
	}
}

func TestFinishOnEmptyBufferIsNil(t *testing.T) {
	s := New(480, 800, 50, false)
	if final := s.Finish(); final != nil {
		t.Errorf("Finish() on untouched stitcher = non-nil, want nil")
	}
}

func TestIsBlankDetectsUniformSlice(t *testing.T) {
	f := testimage.Solid(10, 10, 200)
	if !IsBlank(f) {
		t.Error("uniform slice should be blank")
	}
}

func TestIsBlankRejectsHighVarianceSlice(t *testing.T) {
	f := testimage.Checkerboard(10, 10, 1, 255, 0)
	if IsBlank(f) {
		t.Error("checkerboard slice should not be blank")
	}
}
