// Package xtcopts defines ConversionOptions, the immutable value object
// that drives every stage of the conversion pipeline, along with the
// enums it is built from and the validation that turns out-of-range
// values into xtcerr.InvalidOption.
package xtcopts

import (
	"fmt"

	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

// Device identifies the target e-ink reader's fixed portrait geometry.
type Device int

const (
	// DeviceX4 is the 480x800 device.
	DeviceX4 Device = iota
	// DeviceX3 is the 528x792 device.
	DeviceX3
)

// Dims returns the device's (width, height) in pixels.
func (d Device) Dims() (width, height int) {
	switch d {
	case DeviceX3:
		return 528, 792
	default:
		return 480, 800
	}
}

func (d Device) String() string {
	switch d {
	case DeviceX3:
		return "X3"
	default:
		return "X4"
	}
}

// ParseDevice parses the CLI --device flag value.
func ParseDevice(s string) (Device, error) {
	switch s {
	case "X4", "x4", "":
		return DeviceX4, nil
	case "X3", "x3":
		return DeviceX3, nil
	default:
		return 0, fmt.Errorf("%w: device %q", xtcerr.InvalidOption, s)
	}
}

// SourceType identifies the kind of collaborator that produced the frames.
type SourceType int

const (
	SourceCBZ SourceType = iota
	SourcePDF
	SourceImage
	SourceVideo
)

func ParseSourceType(s string) (SourceType, error) {
	switch s {
	case "cbz", "":
		return SourceCBZ, nil
	case "pdf":
		return SourcePDF, nil
	case "image":
		return SourceImage, nil
	case "video":
		return SourceVideo, nil
	default:
		return 0, fmt.Errorf("%w: source type %q", xtcerr.InvalidOption, s)
	}
}

// Orientation is portrait or landscape page framing.
type Orientation int

const (
	OrientationPortrait Orientation = iota
	OrientationLandscape
)

func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "portrait":
		return OrientationPortrait, nil
	case "landscape", "":
		return OrientationLandscape, nil
	default:
		return 0, fmt.Errorf("%w: orientation %q", xtcerr.InvalidOption, s)
	}
}

// SplitMode controls how a tall landscape page is turned into portrait
// pages.
type SplitMode int

const (
	SplitOverlap SplitMode = iota
	SplitSplit
	SplitNone
)

func ParseSplitMode(s string) (SplitMode, error) {
	switch s {
	case "overlap", "":
		return SplitOverlap, nil
	case "split":
		return SplitSplit, nil
	case "nosplit":
		return SplitNone, nil
	default:
		return 0, fmt.Errorf("%w: split mode %q", xtcerr.InvalidOption, s)
	}
}

// ImageMode controls single-image scaling into the device rectangle.
type ImageMode int

const (
	ImageCover ImageMode = iota
	ImageLetterbox
	ImageFill
	ImageCrop
)

func ParseImageMode(s string) (ImageMode, error) {
	switch s {
	case "cover", "":
		return ImageCover, nil
	case "letterbox":
		return ImageLetterbox, nil
	case "fill":
		return ImageFill, nil
	case "crop":
		return ImageCrop, nil
	default:
		return 0, fmt.Errorf("%w: image mode %q", xtcerr.InvalidOption, s)
	}
}

// DitherAlgorithm is a tagged variant selecting one of the dithering
// strategies implemented by pkg/dither.
type DitherAlgorithm int

const (
	DitherFloydSteinberg DitherAlgorithm = iota
	DitherAtkinson
	DitherStucki
	DitherZhouFang
	DitherOstromoukhov
	DitherSierraLite
	DitherOrdered
	DitherStochastic
	DitherNone
)

func ParseDitherAlgorithm(s string) (DitherAlgorithm, error) {
	switch s {
	case "floyd":
		return DitherFloydSteinberg, nil
	case "atkinson":
		return DitherAtkinson, nil
	case "stucki", "":
		return DitherStucki, nil
	case "zhoufang":
		return DitherZhouFang, nil
	case "ostromoukhov":
		return DitherOstromoukhov, nil
	case "sierra-lite":
		return DitherSierraLite, nil
	case "ordered":
		return DitherOrdered, nil
	case "stochastic":
		return DitherStochastic, nil
	case "none":
		return DitherNone, nil
	default:
		return 0, fmt.Errorf("%w: dither algorithm %q", xtcerr.InvalidOption, s)
	}
}

// ConversionOptions is the immutable value object controlling one
// conversion. Every field maps to a CLI flag (see cmd/xtcconv).
type ConversionOptions struct {
	Device     Device
	SourceType SourceType
	Is2Bit     bool
	Dither     DitherAlgorithm

	Contrast int     // one of 0, 2, 4, 6, 8
	Gamma    float64 // clamped to [0.1, 3.0]
	Invert   bool
	PadBlack bool

	Orientation Orientation
	SplitMode   SplitMode

	IncludeOverviews  bool
	SidewaysOverviews bool

	Manhwa               bool
	ManhwaOverlapPercent int // one of 30, 50, 75

	ImageMode ImageMode
	VideoFps  float64

	HorizontalMarginPercent float64 // [0, 20]
	VerticalMarginPercent   float64 // [0, 20]

	Streamed bool
}

// Default returns the baseline options: device X4, 1-bit, Stucki
// dithering, landscape orientation, overlap split — matching the CLI
// defaults in §6.
func Default() ConversionOptions {
	return ConversionOptions{
		Device:               DeviceX4,
		SourceType:           SourceCBZ,
		Dither:               DitherStucki,
		Gamma:                1.0,
		Orientation:          OrientationLandscape,
		SplitMode:            SplitOverlap,
		ImageMode:            ImageCover,
		ManhwaOverlapPercent: 50,
	}
}

var validContrast = map[int]bool{0: true, 2: true, 4: true, 6: true, 8: true}
var validOverlap = map[int]bool{30: true, 50: true, 75: true}

// Validate checks every field against its enumerated/clamped range and
// returns xtcerr.InvalidOption describing the first violation found.
func (o ConversionOptions) Validate() error {
	if !validContrast[o.Contrast] {
		return fmt.Errorf("%w: contrast %d must be one of 0,2,4,6,8", xtcerr.InvalidOption, o.Contrast)
	}
	if o.Gamma < 0.1 || o.Gamma > 3.0 {
		return fmt.Errorf("%w: gamma %g out of range [0.1, 3.0]", xtcerr.InvalidOption, o.Gamma)
	}
	if o.Manhwa && !validOverlap[o.ManhwaOverlapPercent] {
		return fmt.Errorf("%w: manhwa overlap %d must be one of 30,50,75", xtcerr.InvalidOption, o.ManhwaOverlapPercent)
	}
	if o.HorizontalMarginPercent < 0 || o.HorizontalMarginPercent > 20 {
		return fmt.Errorf("%w: horizontal margin %g out of range [0, 20]", xtcerr.InvalidOption, o.HorizontalMarginPercent)
	}
	if o.VerticalMarginPercent < 0 || o.VerticalMarginPercent > 20 {
		return fmt.Errorf("%w: vertical margin %g out of range [0, 20]", xtcerr.InvalidOption, o.VerticalMarginPercent)
	}
	if o.SourceType == SourceVideo && o.VideoFps <= 0 {
		return fmt.Errorf("%w: video fps %g must be positive", xtcerr.InvalidOption, o.VideoFps)
	}
	return nil
}

// ClampGamma clamps g to the valid range, matching the CLI's --gamma
// default-clamping behaviour (§6).
func ClampGamma(g float64) float64 {
	if g < 0.1 {
		return 0.1
	}
	if g > 3.0 {
		return 3.0
	}
	return g
}
