// Package cli provides CLI commands for the fb application.
package cli

import (
	gocontext "context"
	"os"

	"github.com/example/formbuilder/internal/ctxutil"
	"github.com/example/formbuilder/internal/wire"
)

// globalActorID stores the detected actor ID for the current CLI invocation.
// Set once at startup by DetectAndStoreActor().
var globalActorID string

// DetectAndStoreActor detects the current actor identity and stores it globally.
// The configured actor wins over $USER.
func DetectAndStoreActor() {
	if cfg, err := wire.Config(); err == nil && cfg.Actor != "" {
		globalActorID = cfg.Actor
		return
	}
	globalActorID = os.Getenv("USER")
}

// GetActorID returns the stored actor ID from CLI startup.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context.Background() with the current actor ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	return ctxutil.WithActorID(gocontext.Background(), globalActorID)
}
