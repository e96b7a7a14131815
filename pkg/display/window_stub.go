//go:build !cgo

package display

import (
	"context"
	"errors"
)

// RunWindow is unavailable without cgo; use headless mode instead.
func RunWindow(_ context.Context, _ Config, _ *Loop) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1, or pass -headless)")
}
