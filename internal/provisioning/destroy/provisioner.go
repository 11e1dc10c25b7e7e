// Package destroy tears down provisioned instances and clears their state
// records. A state record that never held an instance ID is a no-op, and an
// instance missing at the provider counts as already destroyed.
package destroy

import (
	"fmt"

	"github.com/testkitchen/kitchen-linode/internal/platform/linode"
	"github.com/testkitchen/kitchen-linode/internal/provisioning"
	"github.com/testkitchen/kitchen-linode/internal/util/retry"
)

// Provisioner removes instances created by the compute provisioner.
type Provisioner struct{}

// NewProvisioner returns a destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Destroy deletes the instance recorded in st, if any, and clears the record.
// Only the instance ID decides whether anything is attempted: a record without
// one is left untouched. An instance the provider no longer knows about is
// treated as successfully destroyed. Any other provider failure leaves the
// record intact so a later call can retry.
func (p *Provisioner) Destroy(ctx *provisioning.Context, st *provisioning.State) error {
	if !st.Provisioned() {
		return nil
	}

	policy := linode.TransientPolicy(ctx.Config.APIRetries, ctx.Log.Printf)

	err := retry.Do(ctx, policy, func() error {
		_, err := ctx.Cloud.GetInstance(ctx, st.InstanceID)
		return err
	})
	if err != nil {
		if linode.IsNotFound(err) {
			ctx.Log.Printf("[Destroy] Instance <%d> not found, nothing to do", st.InstanceID)
			st.Clear()
			return nil
		}
		return fmt.Errorf("looking up instance %d: %w", st.InstanceID, err)
	}

	err = retry.Do(ctx, policy, func() error {
		return ctx.Cloud.DeleteInstance(ctx, st.InstanceID)
	})
	if err != nil && !linode.IsNotFound(err) {
		return fmt.Errorf("deleting instance %d: %w", st.InstanceID, err)
	}

	ctx.Log.Printf("[Destroy] Instance <%d> destroyed", st.InstanceID)
	st.Clear()
	return nil
}
