package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by New
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Primitives  int    `json:"primitives"`  // Number of spheres
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Scenes []SceneInfo `json:"scenes"`
}

type sceneEntry struct {
	id          string
	description string
	build       func(overrides ...SamplingConfig) *Scene
}

// Registration order is the listing order
var builtInScenes = []sceneEntry{
	{"default", "Single red sphere on a sky gradient", NewDefaultScene},
	{"spheres", "Three spheres on a large ground sphere", NewSpheresScene},
	{"sphere-grid", "Wall of rainbow-colored spheres", NewSphereGridScene},
}

// New builds the named scene, applying the positive fields of an optional sampling override
func New(name string, overrides ...SamplingConfig) (*Scene, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	if id == "" {
		id = "default"
	}
	for _, entry := range builtInScenes {
		if entry.id == id {
			return entry.build(overrides...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// Names returns the IDs of all built-in scenes
func Names() []string {
	names := make([]string, 0, len(builtInScenes))
	for _, entry := range builtInScenes {
		names = append(names, entry.id)
	}
	return names
}

// List returns metadata for all built-in scenes
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for _, entry := range builtInScenes {
		scenes = append(scenes, SceneInfo{
			ID:          entry.id,
			DisplayName: titleCase(entry.id),
			Description: entry.description,
			Primitives:  entry.build().GetPrimitiveCount(),
		})
	}
	return scenes
}

// titleCase converts a filename-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
