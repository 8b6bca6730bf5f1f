// Package scoreplot renders the per-frame decision costs of a
// detection run as an image, for diagnosing threshold behavior.
package scoreplot

import (
	"image"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

const margin = 40

// Renderer draws score plots at a fixed output size.
type Renderer struct {
	Width  int
	Height int
}

// New creates a Renderer with the default output size.
func New() *Renderer {
	return &Renderer{Width: 1200, Height: 400}
}

// Render draws the cost curve, the detection threshold and the cut
// positions. Long runs are drawn at one pixel per frame and then
// resampled down to the output width.
func (r *Renderer) Render(scores []float64, threshold float64, cuts []int) image.Image {
	plotW := len(scores)
	if plotW < 10 {
		plotW = 10
	}
	naturalW := plotW + 2*margin

	maxVal := threshold
	for _, s := range scores {
		if s > maxVal {
			maxVal = s
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	maxVal *= 1.1

	dc := gg.NewContext(naturalW, r.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotH := float64(r.Height - 2*margin)
	toY := func(v float64) float64 {
		return float64(r.Height-margin) - v/maxVal*plotH
	}

	// Axes
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, margin, margin, float64(r.Height-margin))
	dc.DrawLine(margin, float64(r.Height-margin), float64(naturalW-margin), float64(r.Height-margin))
	dc.Stroke()

	// Cut markers
	dc.SetRGB(0.9, 0.3, 0.3)
	for _, cut := range cuts {
		i := cut - 1 // scores start at frame 1
		if i < 0 || i >= len(scores) {
			continue
		}
		x := float64(margin + i)
		dc.DrawLine(x, margin, x, float64(r.Height-margin))
	}
	dc.Stroke()

	// Threshold line
	dc.SetRGB(0.8, 0.6, 0.1)
	dc.SetDash(4, 4)
	dc.DrawLine(margin, toY(threshold), float64(naturalW-margin), toY(threshold))
	dc.Stroke()
	dc.SetDash()

	// Cost curve
	dc.SetRGB(0.2, 0.4, 0.8)
	dc.SetLineWidth(1.5)
	for i, s := range scores {
		x := float64(margin + i)
		if i == 0 {
			dc.MoveTo(x, toY(s))
			continue
		}
		dc.LineTo(x, toY(s))
	}
	dc.Stroke()

	img := dc.Image()
	if naturalW <= r.Width {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
