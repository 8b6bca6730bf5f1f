package vframe

import (
	"fmt"
	"math/bits"
)

// Downscale reduces src by the given power-of-two factor into a freshly
// allocated plane. Each output sample is the box average of a
// factor x factor block of input samples.
func Downscale[T Pixel](src *Plane[T], factor int) *Plane[T] {
	dst := NewPlane[T](src.Width>>log2(factor), src.Height>>log2(factor))
	DownscaleInPlace(src, dst, factor)
	return dst
}

// DownscaleInPlace reduces src by the given power-of-two factor into dst,
// which must already have the reduced dimensions. No allocation occurs,
// so dst can be reused across calls.
func DownscaleInPlace[T Pixel](src, dst *Plane[T], factor int) {
	shift := log2(factor)
	// The block sum is divided by factor^2 via shift, which is only
	// correct for power-of-two factors; log2 rejects everything else.
	for y := 0; y < dst.Height; y++ {
		dstRow := dst.Row(y)
		for x := 0; x < dst.Width; x++ {
			var sum uint64
			for yy := 0; yy < factor; yy++ {
				srcRow := src.Row(y<<shift + yy)
				for xx := 0; xx < factor; xx++ {
					sum += uint64(srcRow[x<<shift+xx])
				}
			}
			dstRow[x] = T(sum >> (2 * shift))
		}
	}
}

// log2 returns the base-2 logarithm of a power-of-two factor.
// Any other value is a precondition violation and fails fast.
func log2(factor int) uint {
	if factor <= 0 || factor&(factor-1) != 0 {
		panic(fmt.Sprintf("vframe: downscale factor %d is not a power of two", factor))
	}
	return uint(bits.TrailingZeros(uint(factor)))
}
