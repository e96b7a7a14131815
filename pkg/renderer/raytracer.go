package renderer

import (
	"math/rand"

	"github.com/df07/go-live-raytracer/pkg/dither"
	"github.com/df07/go-live-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-live-raytracer/pkg/math"
)

// BytesPerPixel is the size of one RGB24 pixel in the frame buffer
const BytesPerPixel = 3

// FrameRenderer fills a frame buffer of camera.Height rows, stride bytes apart.
// RenderFrame returns only after every pixel of the frame has been written.
type FrameRenderer interface {
	RenderFrame(buf []byte, stride int)
	Stop()
}

// Raytracer renders frames on the calling goroutine.
// Its camera, world, shader and quantizer are read-only, so row rendering
// may be shared by several goroutines as long as each brings its own random source.
type Raytracer struct {
	camera    *Camera
	world     geometry.Hittable
	shader    Shader
	quantizer dither.Quantizer
	config    Config
	random    *rand.Rand
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, world geometry.Hittable, config Config) *Raytracer {
	return &Raytracer{
		camera:    camera,
		world:     world,
		shader:    DefaultShader(),
		quantizer: config.Quantizer(),
		config:    config,
		random:    rand.New(rand.NewSource(config.seed())),
	}
}

// SetShader replaces the shader, e.g. to change the background gradient
func (rt *Raytracer) SetShader(shader Shader) {
	rt.shader = shader
}

// Camera returns the camera the raytracer renders from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// RenderFrame renders every row sequentially into buf.
// Requires len(buf) >= Height*stride and stride >= Width*3; bytes past Width*3 in a row are not touched.
func (rt *Raytracer) RenderFrame(buf []byte, stride int) {
	for y := 0; y < rt.camera.Height; y++ {
		rt.renderRow(y, rowSlice(buf, y, stride), rt.random)
	}
}

// Stop is a no-op; a sequential raytracer holds no goroutines.
func (rt *Raytracer) Stop() {}

// RenderFrame renders one frame sequentially with the default shader and 2-bit ordered dithering
func RenderFrame(camera *Camera, world geometry.Hittable, buf []byte, stride int) {
	NewRaytracer(camera, world, DefaultConfig()).RenderFrame(buf, stride)
}

// NewFrameRenderer returns a sequential raytracer for one worker, otherwise a started worker pool
func NewFrameRenderer(camera *Camera, world geometry.Hittable, config Config) FrameRenderer {
	return WithWorkers(NewRaytracer(camera, world, config))
}

// WithWorkers returns rt itself when its config asks for one worker,
// otherwise a started worker pool sharing rt's scene and shader
func WithWorkers(rt *Raytracer) FrameRenderer {
	workers := rt.config.NumWorkers()
	if workers == 1 {
		return rt
	}
	pool := NewWorkerPool(rt, workers)
	pool.Start()
	return pool
}

// rowSlice returns the stride-long region of row y
func rowSlice(buf []byte, y, stride int) []byte {
	start := y * stride
	return buf[start : start+stride : start+stride]
}

// renderRow writes the pixels of row y into row, which starts at the row's first byte
func (rt *Raytracer) renderRow(y int, row []byte, random *rand.Rand) {
	pixels := row[:rt.camera.Width*BytesPerPixel]
	for x := 0; x < rt.camera.Width; x++ {
		color := rt.pixelColor(x, y, random)
		r, g, b := rt.quantizer.Quantize(color, x, y)
		offset := x * BytesPerPixel
		pixels[offset+0] = r
		pixels[offset+1] = g
		pixels[offset+2] = b
	}
}

// pixelColor returns the color of pixel (x, y), averaging jittered samples when enabled
func (rt *Raytracer) pixelColor(x, y int, random *rand.Rand) mathpkg.Color {
	samples := rt.camera.SamplesPerPixel
	if !rt.config.Jitter || samples <= 1 {
		return rt.shader.Shade(rt.camera.GetRay(x, y), rt.world)
	}

	colorAccum := mathpkg.NewVec3(0, 0, 0)
	for sample := 0; sample < samples; sample++ {
		ray := rt.camera.GetRayJittered(x, y, random)
		colorAccum = colorAccum.Add(rt.shader.Shade(ray, rt.world))
	}
	return colorAccum.Divide(float32(samples))
}
