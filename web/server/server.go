package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-live-raytracer/internal/buildinfo"
	"github.com/df07/go-live-raytracer/pkg/display"
	"github.com/df07/go-live-raytracer/pkg/dither"
	"github.com/df07/go-live-raytracer/pkg/renderer"
	"github.com/df07/go-live-raytracer/pkg/scene"
)

// Request limits
const (
	minSize      = 16
	maxSize      = 2000
	maxSamples   = 256
	maxFrames    = 120
	defaultFrame = 10
)

// Server handles web requests for the live raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	for _, e := range s.endpoints() {
		s.mux.HandleFunc(e.Path, e.handler)
	}
	return s
}

// Endpoint describes one API route
type Endpoint struct {
	Path        string
	Description string
	handler     http.HandlerFunc
}

func (s *Server) endpoints() []Endpoint {
	return []Endpoint{
		{"/api/health", "health check and version", s.handleHealth},
		{"/api/scenes", "built-in scenes", s.handleScenes},
		{"/api/scene-config", "scene defaults and request limits", s.handleSceneConfig},
		{"/api/frame", "one rendered frame (png, bmp or tiff)", s.handleFrame},
		{"/api/stream", "frames and console output as server-sent events", s.handleStream},
	}
}

// Endpoints lists the API routes served by NewServer
func (s *Server) Endpoints() []Endpoint {
	return s.endpoints()
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string          `json:"scene"`   // Scene name (e.g., "spheres")
	Width   int             `json:"width"`   // Image width, 0 = scene default
	Height  int             `json:"height"`  // Image height, 0 = scene default
	Samples int             `json:"samples"` // Samples per pixel with jitter, 0 = scene default
	Frames  int             `json:"frames"`  // Frames to stream
	Format  string          `json:"format"`  // Encoded image format
	Config  renderer.Config `json:"-"`       // Quantization and sampling
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s (%s)", addr, buildinfo.Short())
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Short()})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ScenesResponse{Scenes: scene.List()})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	sceneObj, err := scene.New(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	defaults := renderer.DefaultConfig()
	response := map[string]interface{}{
		"scene": sceneObj.Name,
		"defaults": map[string]interface{}{
			"width":           sceneObj.SamplingConfig.Width,
			"height":          sceneObj.SamplingConfig.Height,
			"samplesPerPixel": sceneObj.SamplingConfig.SamplesPerPixel,
			"bits":            defaults.Bits,
			"dither":          defaults.Dither.String(),
			"frames":          defaultFrame,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minSize, "max": maxSize},
			"height":  map[string]int{"min": minSize, "max": maxSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"bits":    map[string]int{"min": 1, "max": 8},
			"frames":  map[string]int{"min": 1, "max": maxFrames},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// handleFrame renders a single frame and returns it as an encoded image
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	req.Frames = 1

	pipeline, err := s.setupRenderingPipeline(req, renderer.NewDefaultLogger())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	defer pipeline.Loop.Close()

	pipeline.Loop.Step(pipeline.Start)

	w.Header().Set("Content-Type", display.ContentType(req.Format))
	w.Header().Set("Cache-Control", "no-cache")
	if err := display.Encode(w, pipeline.Framebuffer.Image(), req.Format); err != nil {
		log.Printf("Error encoding frame: %v", err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:  query.Get("scene"),
		Config: renderer.DefaultConfig(),
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minSize, maxSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Config.Bits, err = parseIntParam(query, "bits", req.Config.Bits, 1, 8); err != nil {
		return nil, err
	}
	if value := query.Get("dither"); value != "" {
		if req.Config.Dither, err = dither.ParseMode(value); err != nil {
			return nil, err
		}
	}
	if value := query.Get("jitter"); value != "" {
		if req.Config.Jitter, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid jitter: %s", value)
		}
	}

	req.Format = display.FormatPNG
	if value := query.Get("format"); value != "" {
		if req.Format, err = display.ParseFormat(value); err != nil {
			return nil, err
		}
	}

	if err := req.Config.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
