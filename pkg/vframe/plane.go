// Package vframe provides pixel plane and frame types for video analysis.
package vframe

// Pixel is the set of sample types a plane can hold. 8-bit video uses
// uint8 samples, everything above (10/12/16-bit) is stored as uint16.
type Pixel interface {
	~uint8 | ~uint16
}

// Plane is a 2D buffer of pixel samples with a row stride.
// Data holds Height rows of Width samples each; rows are Stride samples
// apart, so Stride >= Width.
type Plane[T Pixel] struct {
	Data   []T
	Width  int
	Height int
	Stride int
}

// NewPlane allocates a plane with a packed layout (Stride == Width).
func NewPlane[T Pixel](width, height int) *Plane[T] {
	return &Plane[T]{
		Data:   make([]T, width*height),
		Width:  width,
		Height: height,
		Stride: width,
	}
}

// Row returns the samples of row y, excluding any stride padding.
func (p *Plane[T]) Row(y int) []T {
	start := y * p.Stride
	return p.Data[start : start+p.Width]
}

// Frame is a bundle of planes making up one decoded picture.
// Plane 0 is luma; chroma planes may be absent for monochrome content.
// Frames are shared by pointer between the caller's lookahead queue and
// any retained buffer slots; they are never mutated after decode.
type Frame[T Pixel] struct {
	Planes []*Plane[T]
}

// Luma returns the luma plane.
func (f *Frame[T]) Luma() *Plane[T] {
	return f.Planes[0]
}
