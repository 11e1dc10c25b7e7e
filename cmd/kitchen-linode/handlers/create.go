// Package handlers implements the command logic behind the CLI. Handlers load
// configuration and state, wire up the provider client and driver, and keep
// the state file in sync with what actually happened.
package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/testkitchen/kitchen-linode/internal/config"
	"github.com/testkitchen/kitchen-linode/internal/driver"
	"github.com/testkitchen/kitchen-linode/internal/platform/linode"
	"github.com/testkitchen/kitchen-linode/internal/provisioning"
)

// Lifecycle interface for testing - matches driver.Driver.
type Lifecycle interface {
	Create(ctx *provisioning.Context, st *provisioning.State) error
	Destroy(ctx *provisioning.Context, st *provisioning.State) error
}

// Factory function variables - can be replaced in tests.
var (
	// loadConfigFile loads the driver configuration.
	loadConfigFile = config.LoadFile

	// newCloudClient creates the Linode API client.
	newCloudClient = func(token string) linode.InstanceManager {
		return linode.NewRealClient(token)
	}

	// newDriver creates the lifecycle driver.
	newDriver = func(cfg *config.Config, cloud linode.InstanceManager) Lifecycle {
		return driver.New(cfg, cloud)
	}
)

// Create handles the create command.
//
// It provisions an instance per the configuration and records it in the state
// file. The state file is written even when provisioning fails partway, so a
// half-created instance can still be destroyed.
func Create(ctx context.Context, configPath, statePath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}
	st, err := loadState(statePath)
	if err != nil {
		return err
	}

	cloud := newCloudClient(cfg.Token)
	pCtx := provisioning.NewContext(ctx, cfg, cloud, nil)

	createErr := newDriver(cfg, cloud).Create(pCtx, st)
	if err := saveState(statePath, st); err != nil {
		return errors.Join(createErr, err)
	}
	if createErr != nil {
		return createErr
	}

	log.Printf("Instance <%d> ready at %s", st.InstanceID, st.Hostname)
	return nil
}
