// Package driver implements the instance lifecycle: create resolves
// resources, provisions an instance, waits for it to boot and bootstraps it
// over SSH; destroy tears the instance down. Both operations are idempotent
// against a caller-owned state record.
package driver

import (
	"fmt"
	"os"

	"github.com/testkitchen/kitchen-linode/internal/config"
	"github.com/testkitchen/kitchen-linode/internal/platform/linode"
	"github.com/testkitchen/kitchen-linode/internal/platform/ssh"
	"github.com/testkitchen/kitchen-linode/internal/provisioning"
	"github.com/testkitchen/kitchen-linode/internal/provisioning/compute"
	"github.com/testkitchen/kitchen-linode/internal/provisioning/destroy"
)

// ProvisionError wraps failures that happen while standing an instance up,
// after configuration has already been validated.
type ProvisionError struct {
	Err error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provisioning failed: %v", e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// Driver runs lifecycle operations against one configured instance.
type Driver struct {
	cfg   *config.Config
	cloud linode.InstanceManager

	// bootstrap is swapped out in tests.
	bootstrap func(ctx *provisioning.Context, host string) error
}

// New returns a driver for the given configuration and provider client.
func New(cfg *config.Config, cloud linode.InstanceManager) *Driver {
	return &Driver{
		cfg:       cfg,
		cloud:     cloud,
		bootstrap: bootstrapOverSSH,
	}
}

// Create provisions an instance and records it in st. A record that already
// holds an instance ID is trusted as-is and nothing is re-verified, so a
// crashed earlier run can be resumed by clearing the record. On failure the
// fields written so far stay in st so destroy can clean up the partial
// instance.
func (d *Driver) Create(ctx *provisioning.Context, st *provisioning.State) error {
	if st.Provisioned() {
		ctx.Log.Printf("[Driver] Instance <%d> already created, skipping", st.InstanceID)
		return nil
	}

	if err := d.cfg.Normalize(); err != nil {
		return err
	}

	result, err := compute.NewProvisioner().Provision(ctx)
	if err != nil {
		return &ProvisionError{Err: err}
	}
	st.InstanceID = result.ID
	st.InstanceLabel = result.Label
	st.Hostname = result.PublicIPv4
	st.SSHKeyPath = d.cfg.PrivateKeyPath
	ctx.Log.Printf("[Driver] Instance <%d> created with label %s at %s", result.ID, result.Label, result.PublicIPv4)

	if _, err := ctx.Cloud.WaitForBoot(ctx, result.ID); err != nil {
		return &ProvisionError{Err: fmt.Errorf("waiting for instance %d to boot: %w", result.ID, err)}
	}
	ctx.Log.Printf("[Driver] Instance <%d> is running", result.ID)

	if !d.cfg.PosixShell() {
		ctx.Log.Printf("[Driver] Shell %q is not POSIX, skipping SSH bootstrap", d.cfg.Shell)
		return nil
	}
	if err := d.bootstrap(ctx, result.PublicIPv4); err != nil {
		return &ProvisionError{Err: err}
	}
	return nil
}

// Destroy removes the instance recorded in st and clears the record.
func (d *Driver) Destroy(ctx *provisioning.Context, st *provisioning.State) error {
	return destroy.NewProvisioner().Destroy(ctx, st)
}

func bootstrapOverSSH(ctx *provisioning.Context, host string) error {
	cfg := ctx.Config
	key, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return fmt.Errorf("reading public key: %w", err)
	}

	b, err := ssh.NewBootstrapper(&ssh.Config{
		Host:     host,
		User:     cfg.Username,
		Password: cfg.Password,
		Timeout:  cfg.SSHTimeout(),
	}, ctx.Log.Printf)
	if err != nil {
		return err
	}
	return b.Bootstrap(ctx, ssh.BootstrapCommands(cfg.Hostname, cfg.Username, string(key)))
}
