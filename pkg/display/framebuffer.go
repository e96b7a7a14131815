package display

import (
	"image"
	"sync"

	"github.com/df07/go-live-raytracer/pkg/renderer"
)

// Framebuffer is an RGB24 frame whose rows are padded to a 4-byte pitch,
// the layout of a locked streaming texture.
type Framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

// NewFramebuffer allocates a zeroed frame
func NewFramebuffer(width, height int) *Framebuffer {
	stride := (width*renderer.BytesPerPixel + 3) &^ 3
	return &Framebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }
func (f *Framebuffer) Stride() int { return f.stride }

// WithLock runs fn with exclusive access to the pixel bytes
func (f *Framebuffer) WithLock(fn func(buf []byte, stride int)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.buf, f.stride)
}

// SnapshotRGBA converts the frame into dst as tightly packed RGBA with opaque alpha.
// dst must hold at least Width*Height*4 bytes.
func (f *Framebuffer) SnapshotRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for y := 0; y < f.height; y++ {
		src := f.buf[y*f.stride : y*f.stride+f.width*renderer.BytesPerPixel]
		row := dst[y*f.width*4 : (y+1)*f.width*4]
		for x := 0; x < f.width; x++ {
			row[x*4+0] = src[x*3+0]
			row[x*4+1] = src[x*3+1]
			row[x*4+2] = src[x*3+2]
			row[x*4+3] = 0xFF
		}
	}
}

// Image returns a copy of the frame as an RGBA image
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.SnapshotRGBA(img.Pix)
	return img
}
