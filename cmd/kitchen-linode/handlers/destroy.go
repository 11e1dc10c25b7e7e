package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/testkitchen/kitchen-linode/internal/provisioning"
)

// Destroy handles the destroy command.
//
// It deletes the instance recorded in the state file and clears the record.
// A record without an instance is a no-op, and an instance already gone at
// the provider counts as destroyed.
func Destroy(ctx context.Context, configPath, statePath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}
	st, err := loadState(statePath)
	if err != nil {
		return err
	}
	if !st.Provisioned() {
		log.Printf("No instance recorded in %s, nothing to destroy", statePath)
		return nil
	}

	cloud := newCloudClient(cfg.Token)
	pCtx := provisioning.NewContext(ctx, cfg, cloud, nil)

	destroyErr := newDriver(cfg, cloud).Destroy(pCtx, st)
	if err := saveState(statePath, st); err != nil {
		return errors.Join(destroyErr, err)
	}
	return destroyErr
}
