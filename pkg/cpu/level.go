// Package cpu resolves the CPU capability tier used to select a
// difference-computation kernel.
//
// Detection runs once and is cached; tests can bypass it by passing an
// explicit Level around, so no global override hook is needed.
package cpu

import (
	"fmt"
	"os"
	"strings"
	"sync"

	xcpu "golang.org/x/sys/cpu"
)

// Level is an ordered CPU capability tier, from baseline scalar code up
// through progressively wider vector instruction sets. Higher levels
// include all capabilities of lower ones.
type Level int

const (
	// Scalar uses no vector instructions.
	Scalar Level = iota
	// SSE2 is the amd64 baseline vector tier.
	SSE2
	// SSSE3 adds horizontal and shuffle operations.
	SSSE3
	// SSE41 adds packed integer extensions.
	SSE41
	// AVX2 widens integer operations to 256 bits.
	AVX2
	// AVX512 is the common AVX-512 subset (F/BW/CD/DQ/VL).
	AVX512
	// AVX512ICL is the Ice Lake AVX-512 extension set.
	AVX512ICL
)

// EnvOverride is the environment variable consulted by Detect to force a
// lower capability tier, mainly for benchmarking and debugging.
const EnvOverride = "SCENESCAN_CPU_TARGET"

// String returns the conventional lower-case name of the level.
func (l Level) String() string {
	switch l {
	case Scalar:
		return "scalar"
	case SSE2:
		return "sse2"
	case SSSE3:
		return "ssse3"
	case SSE41:
		return "sse4.1"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	case AVX512ICL:
		return "avx512icl"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name. Accepted names match String output,
// plus the aliases "sse41" and "avx512vpclmulqdq".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar", "rust":
		return Scalar, nil
	case "sse2":
		return SSE2, nil
	case "ssse3":
		return SSSE3, nil
	case "sse4.1", "sse41":
		return SSE41, nil
	case "avx2":
		return AVX2, nil
	case "avx512":
		return AVX512, nil
	case "avx512icl", "avx512vpclmulqdq":
		return AVX512ICL, nil
	default:
		return Scalar, fmt.Errorf("cpu: unknown capability level %q", s)
	}
}

var (
	detectOnce    sync.Once
	detectedLevel Level
)

// Detect returns the highest capability tier supported by this machine,
// possibly lowered by the SCENESCAN_CPU_TARGET environment variable.
// An override can only reduce the tier, never raise it past what the
// hardware supports.
func Detect() Level {
	detectOnce.Do(func() {
		detectedLevel = detect()
	})

	level := detectedLevel
	if v := os.Getenv(EnvOverride); v != "" {
		if manual, err := ParseLevel(v); err == nil && manual < level {
			level = manual
		}
	}
	return level
}

func detect() Level {
	switch {
	case avx512ICLDetected():
		return AVX512ICL
	case avx512Detected():
		return AVX512
	case xcpu.X86.HasAVX2:
		return AVX2
	case xcpu.X86.HasSSE41:
		return SSE41
	case xcpu.X86.HasSSSE3:
		return SSSE3
	case xcpu.X86.HasSSE2:
		return SSE2
	default:
		return Scalar
	}
}

func avx512Detected() bool {
	return xcpu.X86.HasAVX512F &&
		xcpu.X86.HasAVX512BW &&
		xcpu.X86.HasAVX512CD &&
		xcpu.X86.HasAVX512DQ &&
		xcpu.X86.HasAVX512VL
}

func avx512ICLDetected() bool {
	// Per dav1d, these are the flags needed.
	return avx512Detected() &&
		xcpu.X86.HasAVX512VNNI &&
		xcpu.X86.HasAVX512IFMA &&
		xcpu.X86.HasAVX512VBMI &&
		xcpu.X86.HasAVX512VBMI2 &&
		xcpu.X86.HasAVX512VPOPCNTDQ &&
		xcpu.X86.HasAVX512BITALG &&
		xcpu.X86.HasAVX512GFNI &&
		xcpu.X86.HasAVX512VAES &&
		xcpu.X86.HasAVX512VPCLMULQDQ
}
