package dither

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
)

// DefaultBits is the number of effective bits per channel used by the live display
const DefaultBits = 2

// Levels returns the highest quantization level for the given bit depth (2^bits - 1)
func Levels(bits int) float32 {
	return float32(int(1)<<bits - 1)
}

// QuantizeNBit rounds each channel to one of 2^bits levels and re-expands it to 0..255
func QuantizeNBit(c mathpkg.Color, bits int) (r, g, b uint8) {
	levels := Levels(bits)
	return expand(c.X*levels, levels), expand(c.Y*levels, levels), expand(c.Z*levels, levels)
}

// QuantizeOrdered is QuantizeNBit with the Bayer threshold for pixel (x, y) added before rounding
func QuantizeOrdered(c mathpkg.Color, bits int, x, y int) (r, g, b uint8) {
	levels := Levels(bits)
	bias := Threshold(x, y) - 0.5
	return expand(c.X*levels+bias, levels), expand(c.Y*levels+bias, levels), expand(c.Z*levels+bias, levels)
}

// expand maps a scaled channel value back to 0..255
func expand(scaled, levels float32) uint8 {
	v := math32.Round(scaled) / levels * 255
	v = math32.Max(0, math32.Min(v, 255))
	return uint8(math32.Round(v))
}

// Mode selects how colors are reduced to bytes
type Mode int

const (
	// ModeOrdered quantizes with the 4x4 ordered dither matrix
	ModeOrdered Mode = iota
	// ModePlain quantizes without dithering
	ModePlain
	// ModeTrueColor uses the full 8 bits per channel
	ModeTrueColor
)

var modeNames = map[Mode]string{
	ModeOrdered:   "ordered",
	ModePlain:     "plain",
	ModeTrueColor: "none",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the defined modes
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode returns the mode with the given name ("ordered", "plain" or "none")
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for mode, modeName := range modeNames {
		if modeName == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown dither mode %q (want ordered, plain or none)", name)
}

// Quantizer converts the color of pixel (x, y) into three channel bytes
type Quantizer interface {
	Quantize(c mathpkg.Color, x, y int) (r, g, b uint8)
}

// Ordered dithers with the Bayer matrix before quantizing to Bits per channel
type Ordered struct {
	Bits int
}

func (q Ordered) Quantize(c mathpkg.Color, x, y int) (r, g, b uint8) {
	return QuantizeOrdered(c, q.Bits, x, y)
}

// Plain quantizes to Bits per channel with no dithering
type Plain struct {
	Bits int
}

func (q Plain) Quantize(c mathpkg.Color, _, _ int) (r, g, b uint8) {
	return QuantizeNBit(c, q.Bits)
}

// TrueColor writes full 8-bit channels
type TrueColor struct{}

func (TrueColor) Quantize(c mathpkg.Color, _, _ int) (r, g, b uint8) {
	return c.ToRGB()
}

// New returns the quantizer for a mode and bit depth
func New(mode Mode, bits int) Quantizer {
	switch mode {
	case ModePlain:
		return Plain{Bits: bits}
	case ModeTrueColor:
		return TrueColor{}
	default:
		return Ordered{Bits: bits}
	}
}
