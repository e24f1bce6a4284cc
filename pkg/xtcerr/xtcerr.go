// Package xtcerr defines the error taxonomy shared across the conversion
// pipeline and the container codec.
package xtcerr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers compare against these with errors.Is; wrapped
// occurrences still satisfy the comparison because every wrapper in this
// package uses fmt.Errorf's %w verb.
var (
	// InvalidOption means a ConversionOptions field is outside its
	// enumerated or clamped range.
	InvalidOption = errors.New("xtcerr: invalid option")

	// FrameDecodeFailure means the upstream frame source produced no
	// frame, or a malformed one.
	FrameDecodeFailure = errors.New("xtcerr: frame decode failure")

	// MalformedContainer means the container header, index, or declared
	// sizes are inconsistent with the file contents.
	MalformedContainer = errors.New("xtcerr: malformed container")

	// MalformedChunk means a per-page chunk header is truncated or its
	// declared length does not match the data actually present.
	MalformedChunk = errors.New("xtcerr: malformed chunk")

	// IoFailure wraps a backing-store read/write failure.
	IoFailure = errors.New("xtcerr: io failure")

	// Cancelled means the caller's cancellation token fired mid-conversion.
	Cancelled = errors.New("xtcerr: cancelled")

	// ResourceExhausted means a buffer allocation failed. No package in
	// this module returns it: pkg/pipeline neither detects allocation
	// failures nor retries them.
	ResourceExhausted = errors.New("xtcerr: resource exhausted")

	// InternalInvariant means an invariant enforced by the container
	// assembler (§3) was violated; this is a programming bug, not a
	// user-facing input error.
	InternalInvariant = errors.New("xtcerr: internal invariant violated")
)

// FrameError attaches a source frame index to an underlying error, so
// batch conversions can report which frame failed without losing the
// original error's identity for errors.Is/As.
type FrameError struct {
	FrameIndex int
	Err        error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.FrameIndex, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// Frame wraps err with the frame index it occurred at.
func Frame(index int, err error) error {
	if err == nil {
		return nil
	}
	return &FrameError{FrameIndex: index, Err: err}
}
