package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-live-raytracer/pkg/core"
	"github.com/df07/go-live-raytracer/pkg/display"
	"github.com/df07/go-live-raytracer/pkg/renderer"
	"github.com/df07/go-live-raytracer/pkg/scene"
)

// FrameUpdate represents a single rendered frame sent via SSE
type FrameUpdate struct {
	Frame       int    `json:"frame"`
	TotalFrames int    `json:"totalFrames"`
	ImageData   string `json:"imageData"` // Base64 encoded image
	Format      string `json:"format"`
	RenderMs    int64  `json:"renderMs"`
	LoopMs      int64  `json:"loopMs"`
}

// CompleteUpdate summarizes a finished stream
type CompleteUpdate struct {
	Frames    int     `json:"frames"`
	AverageMs int64   `json:"averageMs"`
	MinMs     int64   `json:"minMs"`
	MaxMs     int64   `json:"maxMs"`
	FPS       float64 `json:"fps"`
}

// RenderingPipeline contains the configured scene, frame and loop
type RenderingPipeline struct {
	Scene       *scene.Scene
	Framebuffer *display.Framebuffer
	Loop        *display.Loop
	Start       time.Time
}

// setupRenderingPipeline creates the scene and a loop that renders it
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	start := time.Now()
	sceneObj, err := scene.New(req.Scene, scene.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
	})
	if err != nil {
		return nil, err
	}

	camera := sceneObj.NewCamera()
	rt := renderer.NewRaytracer(camera, sceneObj.World, req.Config)
	rt.SetShader(sceneObj.Shader)

	fb := display.NewFramebuffer(camera.Width, camera.Height)
	return &RenderingPipeline{
		Scene:       sceneObj,
		Framebuffer: fb,
		Loop:        display.NewLoop(renderer.WithWorkers(rt), fb, logger, req.Frames),
		Start:       start,
	}, nil
}

// handleStream renders a run of frames and streams each one via SSE as soon as it is ready
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err == nil {
		req.Frames, err = parseIntParam(r.URL.Query(), "frames", defaultFrame, 1, maxFrames)
	}
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}
	defer pipeline.Loop.Close()

	for !pipeline.Loop.Done() {
		if ctx.Err() != nil {
			// Client disconnected
			return
		}

		stats, rendered := pipeline.Loop.Step(time.Now())
		s.flushConsole(w, consoleChan)
		if !rendered {
			break
		}

		imageData, err := imageToBase64(pipeline.Framebuffer.Image(), req.Format)
		if err != nil {
			s.sendSSEError(w, err.Error())
			return
		}
		update := FrameUpdate{
			Frame:       stats.Frame,
			TotalFrames: req.Frames,
			ImageData:   imageData,
			Format:      req.Format,
			RenderMs:    stats.RenderTime.Milliseconds(),
			LoopMs:      stats.LoopTime.Milliseconds(),
		}
		if err := s.sendSSEJSON(w, "frame", update); err != nil {
			return
		}
	}

	timer := pipeline.Loop.Timer()
	pipeline.Loop.Close()
	s.flushConsole(w, consoleChan)

	s.sendSSEJSON(w, "complete", CompleteUpdate{
		Frames:    timer.Frames,
		AverageMs: timer.AverageRender().Milliseconds(),
		MinMs:     timer.MinRender.Milliseconds(),
		MaxMs:     timer.MaxRender.Milliseconds(),
		FPS:       timer.FramesPerSecond(),
	})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a stream
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("stream-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// flushConsole sends every pending console message as a "console" event
func (s *Server) flushConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := s.sendSSEJSON(w, "console", msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (s *Server) sendSSEJSON(w http.ResponseWriter, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event, err)
		return err
	}
	return s.sendSSEEvent(w, event, string(data))
}

func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEJSON(w, "error", map[string]string{"error": message})
}

func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64 encodes an image and returns it base64 encoded
func imageToBase64(img image.Image, format string) (string, error) {
	var buf bytes.Buffer
	if err := display.Encode(&buf, img, format); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
