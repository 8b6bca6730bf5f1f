// Package y4m provides a streaming decoder for the YUV4MPEG2 format,
// the raw decoded-frame interchange format the detection pipeline
// reads.
package y4m

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/user/scenescan/pkg/ports"
	"github.com/user/scenescan/pkg/vframe"
)

const magic = "YUV4MPEG2"

var (
	// ErrInvalidHeader is returned when the stream header cannot be parsed.
	ErrInvalidHeader = errors.New("y4m: invalid stream header")
	// ErrInvalidFrame is returned when a frame marker is malformed.
	ErrInvalidFrame = errors.New("y4m: invalid frame marker")
	// ErrTruncatedFrame is returned when frame data ends prematurely.
	ErrTruncatedFrame = errors.New("y4m: truncated frame data")
	// ErrUnsupportedColorspace is returned for colorspaces the decoder
	// cannot represent as planar frames.
	ErrUnsupportedColorspace = errors.New("y4m: unsupported colorspace")
)

// Decoder reads YUV4MPEG2 streams frame by frame.
type Decoder struct {
	r    *bufio.Reader
	info ports.StreamInfo

	chromaWidth    int
	chromaHeight   int
	bytesPerSample int

	// Raw frame payload buffer, reused across reads.
	frameBuf []byte
}

// NewDecoder reads and validates the stream header.
func NewDecoder(r io.Reader) (*Decoder, error) {
	br := bufio.NewReaderSize(r, 1<<16)
	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	d := &Decoder{r: br}
	if err := d.parseHeader(strings.TrimSuffix(line, "\n")); err != nil {
		return nil, err
	}

	lumaSamples := d.info.Width * d.info.Height
	chromaSamples := 2 * d.chromaWidth * d.chromaHeight
	d.frameBuf = make([]byte, (lumaSamples+chromaSamples)*d.bytesPerSample)

	return d, nil
}

// Info returns the stream parameters parsed from the header.
func (d *Decoder) Info() ports.StreamInfo {
	return d.info
}

// Source8 returns the decoder as an 8-bit frame source.
// Valid only when Info().BitDepth == 8.
func (d *Decoder) Source8() ports.FrameSource[uint8] {
	return &source8{d: d}
}

// Source16 returns the decoder as a 16-bit frame source for streams
// with more than 8 bits per sample.
func (d *Decoder) Source16() ports.FrameSource[uint16] {
	return &source16{d: d}
}

func (d *Decoder) parseHeader(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != magic {
		return fmt.Errorf("%w: missing %s signature", ErrInvalidHeader, magic)
	}

	d.info.FrameRateNum = 25
	d.info.FrameRateDen = 1
	colorTag := "420jpeg"

	for _, f := range fields[1:] {
		if len(f) < 2 {
			return fmt.Errorf("%w: malformed parameter %q", ErrInvalidHeader, f)
		}
		value := f[1:]
		switch f[0] {
		case 'W':
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: bad width %q", ErrInvalidHeader, value)
			}
			d.info.Width = n
		case 'H':
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: bad height %q", ErrInvalidHeader, value)
			}
			d.info.Height = n
		case 'F':
			num, den, ok := strings.Cut(value, ":")
			n1, err1 := strconv.Atoi(num)
			n2, err2 := strconv.Atoi(den)
			if !ok || err1 != nil || err2 != nil || n1 <= 0 || n2 <= 0 {
				return fmt.Errorf("%w: bad frame rate %q", ErrInvalidHeader, value)
			}
			d.info.FrameRateNum = n1
			d.info.FrameRateDen = n2
		case 'C':
			colorTag = value
		case 'I', 'A', 'X':
			// Interlacing, aspect ratio and extensions don't affect
			// frame layout.
		default:
			return fmt.Errorf("%w: unknown parameter %q", ErrInvalidHeader, f)
		}
	}

	if d.info.Width == 0 || d.info.Height == 0 {
		return fmt.Errorf("%w: missing frame dimensions", ErrInvalidHeader)
	}

	subsampling, bitDepth, err := parseColorspace(colorTag)
	if err != nil {
		return err
	}
	d.info.ChromaSubsampling = subsampling
	d.info.BitDepth = bitDepth
	d.bytesPerSample = 1
	if bitDepth > 8 {
		d.bytesPerSample = 2
	}

	switch subsampling {
	case "420":
		d.chromaWidth = d.info.Width / 2
		d.chromaHeight = d.info.Height / 2
	case "422":
		d.chromaWidth = d.info.Width / 2
		d.chromaHeight = d.info.Height
	case "444":
		d.chromaWidth = d.info.Width
		d.chromaHeight = d.info.Height
	case "mono":
		d.chromaWidth = 0
		d.chromaHeight = 0
	}

	return nil
}

// parseColorspace splits a C tag like "420jpeg" or "422p10" into the
// subsampling layout and sample bit depth.
func parseColorspace(tag string) (string, int, error) {
	base := ""
	rest := ""
	switch {
	case strings.HasPrefix(tag, "mono"):
		base = "mono"
		rest = tag[len("mono"):]
	case strings.HasPrefix(tag, "420"), strings.HasPrefix(tag, "422"), strings.HasPrefix(tag, "444"):
		base = tag[:3]
		rest = tag[3:]
	default:
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedColorspace, tag)
	}

	switch rest {
	case "", "jpeg", "mpeg2", "paldv":
		return base, 8, nil
	}
	if strings.HasPrefix(rest, "p") {
		depth, err := strconv.Atoi(rest[1:])
		if err == nil && depth > 8 && depth <= 16 {
			return base, depth, nil
		}
	}
	return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedColorspace, tag)
}

// readFrameRaw reads one FRAME marker plus payload into the reusable
// buffer. Returns io.EOF at a clean end of stream.
func (d *Decoder) readFrameRaw() ([]byte, error) {
	line, err := d.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line == "" {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrTruncatedFrame, err)
	}
	if !strings.HasPrefix(line, "FRAME") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFrame, strings.TrimSpace(line))
	}
	if _, err := io.ReadFull(d.r, d.frameBuf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedFrame, err)
	}
	return d.frameBuf, nil
}

type source8 struct {
	d *Decoder
}

func (s *source8) ReadFrame() (*vframe.Frame[uint8], error) {
	raw, err := s.d.readFrameRaw()
	if err != nil {
		return nil, err
	}
	return frameFromRaw[uint8](s.d, raw), nil
}

type source16 struct {
	d *Decoder
}

func (s *source16) ReadFrame() (*vframe.Frame[uint16], error) {
	raw, err := s.d.readFrameRaw()
	if err != nil {
		return nil, err
	}
	return frameFromRaw[uint16](s.d, raw), nil
}

// frameFromRaw copies the raw payload into a freshly allocated frame.
// Frames must own their samples because the lookahead queue and the
// detector retain them beyond the next read.
func frameFromRaw[T vframe.Pixel](d *Decoder, raw []byte) *vframe.Frame[T] {
	luma := vframe.NewPlane[T](d.info.Width, d.info.Height)
	offset := copySamples(luma.Data, raw, d.bytesPerSample)

	frame := &vframe.Frame[T]{Planes: []*vframe.Plane[T]{luma}}
	if d.chromaWidth > 0 {
		for i := 0; i < 2; i++ {
			chroma := vframe.NewPlane[T](d.chromaWidth, d.chromaHeight)
			offset += copySamples(chroma.Data, raw[offset:], d.bytesPerSample)
			frame.Planes = append(frame.Planes, chroma)
		}
	}
	return frame
}

// copySamples decodes len(dst) samples from src and returns the number
// of bytes consumed. Samples wider than one byte are little-endian.
func copySamples[T vframe.Pixel](dst []T, src []byte, bytesPerSample int) int {
	if bytesPerSample == 1 {
		for i := range dst {
			dst[i] = T(src[i])
		}
		return len(dst)
	}
	for i := range dst {
		dst[i] = T(binary.LittleEndian.Uint16(src[2*i:]))
	}
	return 2 * len(dst)
}
