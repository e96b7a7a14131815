// Package dither maps linear float colors onto a few bits per channel,
// optionally spreading the rounding error with a 4x4 ordered (Bayer) matrix.
package dither

// Bayer4 holds the threshold offsets of the 4x4 ordered dither matrix,
// indexed as Bayer4[y%4][x%4]. Every entry is k/16 for a distinct k in 0..15.
var Bayer4 = [4][4]float32{
	{0.0000, 0.5000, 0.1250, 0.6250},
	{0.7500, 0.2500, 0.8750, 0.3750},
	{0.1875, 0.6875, 0.0625, 0.5625},
	{0.9375, 0.4375, 0.8125, 0.3125},
}

// Threshold returns the matrix offset for pixel (x, y)
func Threshold(x, y int) float32 {
	return Bayer4[y&3][x&3]
}
