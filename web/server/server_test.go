package server

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/df07/go-live-raytracer/pkg/scene"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(0).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("Unexpected health response %d %v", resp.StatusCode, body)
	}
}

func TestHandleScenes(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/scenes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body scene.ScenesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Scenes) != len(scene.Names()) {
		t.Fatalf("Expected %d scenes, got %d", len(scene.Names()), len(body.Scenes))
	}
	if body.Scenes[0].ID != "default" || body.Scenes[0].Primitives != 1 {
		t.Errorf("Unexpected first scene %+v", body.Scenes[0])
	}
}

func TestHandleSceneConfig(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/scene-config?scene=spheres")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Scene    string                 `json:"scene"`
		Defaults map[string]interface{} `json:"defaults"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Scene != "spheres" || body.Defaults["width"] != float64(640) || body.Defaults["dither"] != "ordered" {
		t.Errorf("Unexpected scene config %+v", body)
	}

	resp2, err := http.Get(ts.URL + "/api/scene-config?scene=nope")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", resp2.StatusCode)
	}
}

func TestHandleFrame_PNG(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/frame?scene=default&width=64&height=48")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("Failed to decode frame: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Errorf("Expected 64x48, got %v", img.Bounds())
	}
	r, g, b, _ := img.At(32, 24).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("Expected red center, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestHandleFrame_BMPTrueColor(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/frame?scene=spheres&width=40&height=30&format=bmp&dither=none")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "image/bmp" {
		t.Errorf("Expected image/bmp, got %q", ct)
	}
	img, err := bmp.Decode(resp.Body)
	if err != nil {
		t.Fatalf("Failed to decode frame: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("Expected 40x30, got %v", img.Bounds())
	}
}

func TestHandleFrame_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	queries := []string{
		"scene=nope",
		"width=5",
		"width=abc",
		"bits=0",
		"dither=floyd",
		"format=gif",
		"jitter=maybe",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/frame?" + q)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			var body map[string]string
			json.NewDecoder(resp.Body).Decode(&body)
			if resp.StatusCode != http.StatusBadRequest || body["error"] == "" {
				t.Errorf("Expected 400 with an error message, got %d %v", resp.StatusCode, body)
			}
		})
	}
}

func TestHandleStream(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/stream?scene=default&width=32&height=24&frames=3")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	events := map[string][]string{}
	var current string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			events[current] = append(events[current], strings.TrimPrefix(line, "data: "))
		}
	}

	if len(events["frame"]) != 3 {
		t.Fatalf("Expected 3 frame events, got %d", len(events["frame"]))
	}
	if len(events["complete"]) != 1 {
		t.Fatalf("Expected a complete event, got %d", len(events["complete"]))
	}

	var timing int
	for _, data := range events["console"] {
		if strings.Contains(data, "ms to render the frame") {
			timing++
		}
	}
	if timing != 3 {
		t.Errorf("Expected 3 render timing console messages, got %d", timing)
	}

	var last FrameUpdate
	if err := json.Unmarshal([]byte(events["frame"][2]), &last); err != nil {
		t.Fatal(err)
	}
	if last.Frame != 2 || last.TotalFrames != 3 || last.Format != "png" {
		t.Errorf("Unexpected frame update %+v", last)
	}
	raw, err := base64.StdEncoding.DecodeString(last.ImageData)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Errorf("Frame image is not a PNG: %v", err)
	}

	var complete CompleteUpdate
	if err := json.Unmarshal([]byte(events["complete"][0]), &complete); err != nil {
		t.Fatal(err)
	}
	if complete.Frames != 3 {
		t.Errorf("Expected 3 frames in summary, got %d", complete.Frames)
	}
}

func TestHandleStream_InvalidRequest(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/stream?frames=0")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), "event: error") {
		t.Errorf("Expected an error event, got %q", buf.String())
	}
}

func TestIndexPage_DitherOptionsAccepted(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("..", "static", "index.html"))
	if err != nil {
		t.Fatal(err)
	}

	selectTag := regexp.MustCompile(`(?s)<select id="dither">(.*?)</select>`).FindSubmatch(page)
	if selectTag == nil {
		t.Fatal("Expected a dither select on the index page")
	}
	options := regexp.MustCompile(`<option>([^<]+)</option>`).FindAllSubmatch(selectTag[1], -1)
	if len(options) == 0 {
		t.Fatal("Expected dither options on the index page")
	}

	ts := newTestServer(t)
	for _, option := range options {
		mode := string(option[1])
		t.Run(mode, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/frame?width=16&height=16&dither=" + mode)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("Expected dither mode %q to be accepted, got %d", mode, resp.StatusCode)
			}
		})
	}
}

func TestHandleFrame_IgnoresFrames(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/frame?width=16&height=16&frames=500")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected frames to be ignored by the frame endpoint, got %d", resp.StatusCode)
	}
}

func TestHandleStream_FramesOutOfRange(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/stream?width=16&height=16&frames=500")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), "event: error") || !strings.Contains(buf.String(), "frames must be between") {
		t.Errorf("Expected a frames range error event, got %q", buf.String())
	}
}

func TestServer_EndpointsAreRouted(t *testing.T) {
	srv := NewServer(0)
	endpoints := srv.Endpoints()
	if len(endpoints) != 5 {
		t.Fatalf("Expected 5 API endpoints, got %d", len(endpoints))
	}

	for _, e := range endpoints {
		t.Run(e.Path, func(t *testing.T) {
			if e.Description == "" {
				t.Error("Expected a description")
			}
			req := httptest.NewRequest(http.MethodGet, e.Path+"?width=16&height=16&frames=1", nil)
			_, pattern := srv.mux.Handler(req)
			if pattern != e.Path {
				t.Errorf("Expected %s to be routed to its own handler, got pattern %q", e.Path, pattern)
			}
		})
	}
}
