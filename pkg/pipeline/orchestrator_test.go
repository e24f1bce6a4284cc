package pipeline

import (
	"context"
	"testing"

	"github.com/xtcconv/xtcconv/pkg/pack"
	"github.com/xtcconv/xtcconv/pkg/raster"
	"github.com/xtcconv/xtcconv/pkg/testimage"
	"github.com/xtcconv/xtcconv/pkg/xtcopts"
)

type stubSource struct {
	frames []*raster.Frame
}

func (s *stubSource) NumFrames() int { return len(s.frames) }

func (s *stubSource) Frame(ctx context.Context, index int) (*raster.Frame, error) {
	return s.frames[index], nil
}

func TestRunSingleWhitePortraitFrame(t *testing.T) {
	src := &stubSource{frames: []*raster.Frame{testimage.Solid(480, 800, 255)}}
	opts := xtcopts.Default()
	opts.Orientation = xtcopts.OrientationPortrait
	opts.Dither = xtcopts.DitherNone

	orch := New(1)
	result, err := orch.Run(context.Background(), src, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(result.Pages))
	}
	p := result.Pages[0]
	if p.Width != 480 || p.Height != 800 {
		t.Fatalf("page dims = %dx%d, want 480x800", p.Width, p.Height)
	}
	wantSize := pack.PageSize(480, 800, false)
	if len(p.Chunk) != wantSize {
		t.Fatalf("chunk size = %d, want %d", len(p.Chunk), wantSize)
	}
	for i, b := range p.Chunk[pack.HeaderSize:] {
		if b != 0xFF {
			t.Fatalf("payload[%d] = %#x, want 0xff for an all-white page", i, b)
		}
	}
	if result.Mapping.TotalEmitted() != 1 {
		t.Errorf("TotalEmitted() = %d, want 1", result.Mapping.TotalEmitted())
	}
}

func TestRunLandscapeOverlapSplitProducesThreePages(t *testing.T) {
	src := &stubSource{frames: []*raster.Frame{testimage.Solid(1200, 800, 128)}}
	opts := xtcopts.Default()
	opts.Orientation = xtcopts.OrientationLandscape
	opts.SplitMode = xtcopts.SplitOverlap
	opts.Dither = xtcopts.DitherNone

	orch := New(1)
	result, err := orch.Run(context.Background(), src, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(result.Pages))
	}
	wantSize := pack.PageSize(480, 800, false)
	var prevOffset int
	for i, p := range result.Pages {
		if p.Width != 480 || p.Height != 800 {
			t.Errorf("page %d dims = %dx%d, want 480x800", i, p.Width, p.Height)
		}
		if len(p.Chunk) != wantSize {
			t.Errorf("page %d chunk size = %d, want %d", i, len(p.Chunk), wantSize)
		}
		_ = prevOffset
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	src := &stubSource{frames: []*raster.Frame{testimage.Solid(10, 10, 100)}}
	opts := xtcopts.Default()
	opts.Contrast = 3 // not one of 0,2,4,6,8

	orch := New(1)
	if _, err := orch.Run(context.Background(), src, opts); err == nil {
		t.Error("Run should reject invalid options before touching any frame")
	}
}

func TestRunConcurrentMatchesSequentialOrder(t *testing.T) {
	frames := make([]*raster.Frame, 8)
	for i := range frames {
		frames[i] = testimage.Solid(480, 800, uint8(i*30))
	}
	opts := xtcopts.Default()
	opts.Orientation = xtcopts.OrientationPortrait
	opts.Dither = xtcopts.DitherNone

	seq, err := New(1).Run(context.Background(), &stubSource{frames: frames}, opts)
	if err != nil {
		t.Fatalf("sequential Run: %v", err)
	}
	par, err := New(4).Run(context.Background(), &stubSource{frames: frames}, opts)
	if err != nil {
		t.Fatalf("parallel Run: %v", err)
	}
	if len(seq.Pages) != len(par.Pages) {
		t.Fatalf("page count mismatch: sequential %d, parallel %d", len(seq.Pages), len(par.Pages))
	}
	for i := range seq.Pages {
		if string(seq.Pages[i].Chunk) != string(par.Pages[i].Chunk) {
			t.Errorf("page %d differs between sequential and parallel runs", i)
		}
	}
}
