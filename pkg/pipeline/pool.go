package pipeline

import (
	"sync"

	"github.com/xtcconv/xtcconv/pkg/raster"
)

// maxPooledFrames bounds the reusable frame pool per spec §5's "bounded
// (a small constant like 8), discards excess buffers" policy.
const maxPooledFrames = 8

// framePool recycles device-sized raster.Frame buffers between pipeline
// stages, cutting allocation churn on large batch conversions. It only
// pools frames of a single fixed (w, h) — the device resolution — since
// that's the size every page ultimately reaches before dithering.
type framePool struct {
	mu   sync.Mutex
	w, h int
	free []*raster.Frame
}

func newFramePool(w, h int) *framePool {
	return &framePool{w: w, h: h}
}

// Get returns a pooled frame if one is available, otherwise allocates a
// fresh one.
func (p *framePool) Get() *raster.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.free); n > 0 {
		f := p.free[n-1]
		p.free = p.free[:n-1]
		return f
	}
	return raster.NewFrame(p.w, p.h)
}

// Put returns f to the pool if it matches the pool's dimensions and the
// pool isn't already full; otherwise f is discarded for the GC to
// reclaim.
func (p *framePool) Put(f *raster.Frame) {
	if f == nil || f.Width != p.w || f.Height != p.h {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) >= maxPooledFrames {
		return
	}
	p.free = append(p.free, f)
}
