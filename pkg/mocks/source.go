package mocks

import (
	"io"

	"github.com/user/scenescan/pkg/ports"
	"github.com/user/scenescan/pkg/vframe"
)

// FrameSource is a mock implementation of ports.FrameSource that
// serves a fixed list of frames.
type FrameSource[T vframe.Pixel] struct {
	Frames []*vframe.Frame[T]

	ReadFrameFunc func() (*vframe.Frame[T], error)

	// ReadCalls counts calls to ReadFrame (for test verification).
	ReadCalls int

	next int
}

// NewFrameSource creates a mock source serving the given frames in
// order, then io.EOF.
func NewFrameSource[T vframe.Pixel](frames ...*vframe.Frame[T]) *FrameSource[T] {
	return &FrameSource[T]{Frames: frames}
}

func (m *FrameSource[T]) ReadFrame() (*vframe.Frame[T], error) {
	m.ReadCalls++
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc()
	}
	if m.next >= len(m.Frames) {
		return nil, io.EOF
	}
	frame := m.Frames[m.next]
	m.next++
	return frame, nil
}

var _ ports.FrameSource[uint8] = (*FrameSource[uint8])(nil)
