package scenechange

import (
	"github.com/user/scenescan/pkg/sad"
	"github.com/user/scenescan/pkg/vframe"
)

// Experiments have determined this to be an optimal threshold.
const fastThreshold = 18.0

// DefaultThreshold returns the scene cut decision threshold for the
// given bit depth.
func DefaultThreshold(bitDepth int) float64 {
	return fastThreshold * float64(bitDepth) / 8.0
}

// scaleFunction pairs the allocating and in-place downscale transforms
// for one power-of-two factor, selected once at detector construction.
type scaleFunction[T vframe.Pixel] struct {
	factor           int
	downscale        func(*vframe.Plane[T]) *vframe.Plane[T]
	downscaleInPlace func(src, dst *vframe.Plane[T])
}

func scaleFromFactor[T vframe.Pixel](factor int) *scaleFunction[T] {
	return &scaleFunction[T]{
		factor: factor,
		downscale: func(p *vframe.Plane[T]) *vframe.Plane[T] {
			return vframe.Downscale(p, factor)
		},
		downscaleInPlace: func(src, dst *vframe.Plane[T]) {
			vframe.DownscaleInPlace(src, dst, factor)
		},
	}
}

// detectScaleFactor selects the scaling factor for fast scene
// detection from the frame's smaller edge at native resolution.
// Returns nil when the frame is small enough to compare directly.
func detectScaleFactor[T vframe.Pixel](width, height int) *scaleFunction[T] {
	smallEdge := min(width, height)
	switch {
	case smallEdge <= 240:
		return nil
	case smallEdge <= 480:
		return scaleFromFactor[T](2)
	case smallEdge <= 720:
		return scaleFromFactor[T](4)
	case smallEdge <= 1080:
		return scaleFromFactor[T](8)
	case smallEdge <= 1600:
		return scaleFromFactor[T](16)
	default:
		return scaleFromFactor[T](32)
	}
}

// pairBuffer holds the two most recently compared frames in a form
// ready for differencing. Exactly one implementation is active per
// detector, fixed at construction by the downscale policy.
type pairBuffer[T vframe.Pixel] interface {
	// push makes (frame1, frame2) the current pair. Once primed, only
	// frame2 is consumed: the previous second slot rotates into the
	// first, so each frame is processed exactly once while it is in
	// the window.
	push(frame1, frame2 *vframe.Frame[T])

	// planes returns the two planes to difference.
	planes() (*vframe.Plane[T], *vframe.Plane[T])
}

// scratchBuffer compares downscaled copies held in two reusable
// scratch planes. The planes are allocated on the first push and only
// overwritten afterwards, never reallocated.
type scratchBuffer[T vframe.Pixel] struct {
	scale  *scaleFunction[T]
	slots  [2]*vframe.Plane[T]
	primed bool
}

func (b *scratchBuffer[T]) push(frame1, frame2 *vframe.Frame[T]) {
	if !b.primed {
		// Rotating here would read garbage; both slots need a fresh
		// downscale.
		b.slots[0] = b.scale.downscale(frame1.Luma())
		b.slots[1] = b.scale.downscale(frame2.Luma())
		b.primed = true
		return
	}
	b.slots[0], b.slots[1] = b.slots[1], b.slots[0]
	b.scale.downscaleInPlace(frame2.Luma(), b.slots[1])
}

func (b *scratchBuffer[T]) planes() (*vframe.Plane[T], *vframe.Plane[T]) {
	return b.slots[0], b.slots[1]
}

// refBuffer retains shared references to the source frames and
// compares their full-resolution luma planes directly. Used when no
// downscaling is configured, avoiding any copy.
type refBuffer[T vframe.Pixel] struct {
	slots  [2]*vframe.Frame[T]
	primed bool
}

func (b *refBuffer[T]) push(frame1, frame2 *vframe.Frame[T]) {
	if !b.primed {
		b.slots[0], b.slots[1] = frame1, frame2
		b.primed = true
		return
	}
	b.slots[0] = b.slots[1]
	b.slots[1] = frame2
}

func (b *refBuffer[T]) planes() (*vframe.Plane[T], *vframe.Plane[T]) {
	return b.slots[0].Luma(), b.slots[1].Luma()
}

// fastScenecut detects fast cuts using a raw difference in pixel
// values between the (possibly scaled) frames.
func (d *Detector[T]) fastScenecut(frame1, frame2 *vframe.Frame[T]) ScenecutResult {
	d.buf.push(frame1, frame2)
	first, second := d.buf.planes()
	delta := d.deltaInPlanes(first, second)

	return ScenecutResult{
		Threshold:            d.threshold,
		ImpBlockCost:         delta,
		BackwardAdjustedCost: delta,
		ForwardAdjustedCost:  delta,
	}
}

// deltaInPlanes calculates the average sum of absolute differences per
// pixel between two planes.
func (d *Detector[T]) deltaInPlanes(plane1, plane2 *vframe.Plane[T]) float64 {
	delta := sad.Plane(plane1, plane2, d.cpuLevel)
	return float64(delta) / float64(d.pixels)
}
