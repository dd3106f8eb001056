// Package scripting runs JavaScript color routines. Its Converter lets a
// script supply the device conversion behind the cmm.Converter seam, the
// way a document host supplies convertSampleColor.
package scripting

import (
	"context"
)

// Engine represents a scripting engine (e.g., JavaScript).
type Engine interface {
	// Execute runs a script and returns its completion value.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterHost exposes the host callbacks as the global "app" object.
	RegisterHost(host Host) error
}

// Host receives calls a script makes back into the application.
type Host interface {
	// Alert reports a message the script wants a user to see.
	Alert(message string)
}
