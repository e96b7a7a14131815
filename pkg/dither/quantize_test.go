package dither

import (
	"testing"

	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
)

func TestBayer4_IsPermutationOfSixteenths(t *testing.T) {
	seen := make(map[float32]bool)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := Bayer4[y][x]
			if v < 0 || v >= 1 {
				t.Errorf("Bayer4[%d][%d] = %f is outside [0,1)", y, x, v)
			}
			k := v * 16
			if k != float32(int(k)) {
				t.Errorf("Bayer4[%d][%d] = %f is not a multiple of 1/16", y, x, v)
			}
			if seen[v] {
				t.Errorf("Bayer4[%d][%d] = %f appears twice", y, x, v)
			}
			seen[v] = true
		}
	}
}

func TestThreshold_Wraps(t *testing.T) {
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			if Threshold(x, y) != Bayer4[y%4][x%4] {
				t.Errorf("Threshold(%d, %d) does not match Bayer4[%d][%d]", x, y, y%4, x%4)
			}
		}
	}
}

func TestQuantize_Endpoints(t *testing.T) {
	white := mathpkg.NewVec3(1, 1, 1)
	black := mathpkg.NewVec3(0, 0, 0)

	for bits := 1; bits <= 8; bits++ {
		if r, g, b := QuantizeNBit(white, bits); r != 255 || g != 255 || b != 255 {
			t.Errorf("bits=%d: white quantized to (%d, %d, %d)", bits, r, g, b)
		}
		if r, g, b := QuantizeNBit(black, bits); r != 0 || g != 0 || b != 0 {
			t.Errorf("bits=%d: black quantized to (%d, %d, %d)", bits, r, g, b)
		}
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if r, g, b := QuantizeOrdered(white, bits, x, y); r != 255 || g != 255 || b != 255 {
					t.Errorf("bits=%d pixel (%d,%d): dithered white gave (%d, %d, %d)", bits, x, y, r, g, b)
				}
				if r, g, b := QuantizeOrdered(black, bits, x, y); r != 0 || g != 0 || b != 0 {
					t.Errorf("bits=%d pixel (%d,%d): dithered black gave (%d, %d, %d)", bits, x, y, r, g, b)
				}
			}
		}
	}
}

func TestQuantize_TwoBitLevels(t *testing.T) {
	tests := []struct {
		value    float32
		expected uint8
	}{
		{0.0, 0},
		{0.1, 0},
		{0.2, 85},
		{0.5, 170}, // 1.5 rounds away from zero
		{0.6, 170},
		{0.9, 255},
		{1.0, 255},
		{-0.4, 0},
		{1.7, 255},
	}

	for _, tt := range tests {
		r, _, _ := QuantizeNBit(mathpkg.NewVec3(tt.value, 0, 0), 2)
		if r != tt.expected {
			t.Errorf("QuantizeNBit(%f, 2) = %d, expected %d", tt.value, r, tt.expected)
		}
	}
}

func TestQuantize_Monotonic(t *testing.T) {
	const steps = 1000
	for bits := 1; bits <= 8; bits++ {
		var prevPlain uint8
		prevOrdered := make([]uint8, 16)
		for i := 0; i <= steps; i++ {
			v := float32(i) / steps
			c := mathpkg.NewVec3(v, v, v)

			r, g, b := QuantizeNBit(c, bits)
			if r != g || g != b {
				t.Fatalf("bits=%d v=%f: channels differ (%d, %d, %d)", bits, v, r, g, b)
			}
			if r < prevPlain {
				t.Fatalf("bits=%d: plain output decreased at v=%f (%d -> %d)", bits, v, prevPlain, r)
			}
			prevPlain = r

			for p := 0; p < 16; p++ {
				o, _, _ := QuantizeOrdered(c, bits, p%4, p/4)
				if o < prevOrdered[p] {
					t.Fatalf("bits=%d pixel %d: ordered output decreased at v=%f (%d -> %d)", bits, p, v, prevOrdered[p], o)
				}
				prevOrdered[p] = o
			}
		}
	}
}

func TestQuantizeOrdered_BreaksBanding(t *testing.T) {
	// 0.5 sits halfway between the 2-bit levels 1/3 and 2/3
	c := mathpkg.NewVec3(0.5, 0.5, 0.5)

	plain := make(map[uint8]int)
	ordered := make(map[uint8]int)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, _, _ := QuantizeNBit(c, 2)
			plain[r]++
			r, _, _ = QuantizeOrdered(c, 2, x, y)
			ordered[r]++
		}
	}

	if len(plain) != 1 {
		t.Errorf("Expected plain quantizer to band to a single level, got %v", plain)
	}
	if len(ordered) < 2 {
		t.Errorf("Expected dithered tile to use at least two levels, got %v", ordered)
	}
	if ordered[85]+ordered[170] != 16 {
		t.Errorf("Expected only the two neighboring levels 85 and 170, got %v", ordered)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name      string
		expected  Mode
		expectErr bool
	}{
		{"ordered", ModeOrdered, false},
		{" Plain ", ModePlain, false},
		{"none", ModeTrueColor, false},
		{"floyd", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := ParseMode(tt.name)
			if tt.expectErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, mode)
			}
			if parsed, _ := ParseMode(mode.String()); parsed != mode {
				t.Errorf("String() of %v does not parse back", mode)
			}
		})
	}
}

func TestNew_SelectsQuantizer(t *testing.T) {
	c := mathpkg.NewVec3(0.5, 0.25, 1)

	if _, ok := New(ModeOrdered, 2).(Ordered); !ok {
		t.Error("Expected Ordered quantizer")
	}
	if _, ok := New(ModePlain, 2).(Plain); !ok {
		t.Error("Expected Plain quantizer")
	}

	r, g, b := New(ModeTrueColor, 2).Quantize(c, 0, 0)
	er, eg, eb := c.ToRGB()
	if r != er || g != eg || b != eb {
		t.Errorf("Expected true color (%d, %d, %d), got (%d, %d, %d)", er, eg, eb, r, g, b)
	}
}
