// Package provisioning holds the shared context and state record threaded
// through the provisioning phases.
package provisioning

import (
	"context"
	"log"

	"github.com/testkitchen/kitchen-linode/internal/config"
	"github.com/testkitchen/kitchen-linode/internal/platform/linode"
)

// Logger is the minimal logging surface the phases need. Tests substitute it
// to capture output.
type Logger interface {
	Printf(format string, v ...any)
}

// Context wraps the dependencies a provisioning phase needs. It carries no
// mutable state of its own: everything mutable lives in the caller-owned
// State record.
type Context struct {
	context.Context
	Config *config.Config
	Cloud  linode.InstanceManager
	Log    Logger
}

// NewContext creates a provisioning context. A nil logger falls back to the
// standard logger.
func NewContext(ctx context.Context, cfg *config.Config, cloud linode.InstanceManager, logger Logger) *Context {
	if logger == nil {
		logger = log.Default()
	}
	return &Context{
		Context: ctx,
		Config:  cfg,
		Cloud:   cloud,
		Log:     logger,
	}
}
