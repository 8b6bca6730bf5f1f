package ports

import (
	"github.com/user/scenescan/pkg/vframe"
)

// StreamInfo describes a decoded video stream.
type StreamInfo struct {
	Width  int
	Height int

	// BitDepth is the sample bit depth (8, 10, 12 or 16). Streams with
	// more than 8 bits per sample are stored as uint16 frames.
	BitDepth int

	// Frame rate as a rational number.
	FrameRateNum int
	FrameRateDen int

	// ChromaSubsampling is the chroma layout tag (e.g. "420", "422",
	// "444", "mono").
	ChromaSubsampling string
}

// FrameSource supplies decoded frames in temporal order.
type FrameSource[T vframe.Pixel] interface {
	// ReadFrame returns the next frame, or io.EOF after the last one.
	ReadFrame() (*vframe.Frame[T], error)
}

// ProgressReporter is called after each analyzed frame with the number
// of frames analyzed so far and the number of keyframes found.
type ProgressReporter func(framesAnalyzed, keyframes int)
