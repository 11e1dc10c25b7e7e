// Package compute provisions the Linode instance: it resolves provider
// resource IDs, generates a collision-free label and submits the create call
// under a nested retry discipline.
//
// The nesting separates two failure modes. The inner loop retries transient
// API failures with exponential backoff. The outer loop reacts to exactly one
// condition, the duplicate-label bad request: it regenerates the label and
// resubmits immediately, without sleeping, because the conflict is a naming
// race rather than a provider hiccup. Every other bad request is a genuine
// configuration problem and aborts.
package compute

import (
	"fmt"

	"github.com/linode/linodego"

	"github.com/testkitchen/kitchen-linode/internal/platform/linode"
	"github.com/testkitchen/kitchen-linode/internal/provisioning"
	"github.com/testkitchen/kitchen-linode/internal/util/retry"
)

// Result is the identity of a freshly created instance.
type Result struct {
	ID         int
	Label      string
	PublicIPv4 string
}

// Provisioner creates the instance.
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Provision resolves resources and creates the instance, regenerating the
// label on naming conflicts. The attempt budget is Config.APIRetries; if it
// is spent while still conflicting, the last conflict error propagates.
func (p *Provisioner) Provision(ctx *provisioning.Context) (*Result, error) {
	cfg := ctx.Config

	res, err := resolveResources(ctx)
	if err != nil {
		return nil, err
	}

	conflictPolicy := retry.Policy{
		MaxAttempts: cfg.APIRetries,
		Classify: func(err error) retry.Decision {
			if linode.IsDuplicateLabel(err) {
				ctx.Log.Printf("[Compute] Label already in use, regenerating...")
				return retry.RetryNow
			}
			return retry.Abort
		},
	}

	instance, err := retry.DoValue(ctx, conflictPolicy, func() (*linodego.Instance, error) {
		label, err := uniqueLabel(ctx, cfg.Label)
		if err != nil {
			return nil, err
		}

		ctx.Log.Printf("[Compute] Creating instance %s (%s / %s in %s)...", label, res.Type, res.Image, res.Region)
		return retry.DoValue(ctx, linode.TransientPolicy(cfg.APIRetries, ctx.Log.Printf),
			func() (*linodego.Instance, error) {
				return ctx.Cloud.CreateInstance(ctx, linode.InstanceCreateOpts{
					Label:    label,
					Region:   res.Region,
					Type:     res.Type,
					Image:    res.Image,
					Kernel:   res.Kernel,
					RootPass: cfg.Password,
				})
			})
	})
	if err != nil {
		return nil, err
	}

	ip, err := firstIPv4(instance)
	if err != nil {
		return nil, err
	}

	ctx.Log.Printf("[Compute] Instance %d (%s) created at %s", instance.ID, instance.Label, ip)
	return &Result{ID: instance.ID, Label: instance.Label, PublicIPv4: ip}, nil
}

func firstIPv4(instance *linodego.Instance) (string, error) {
	if len(instance.IPv4) == 0 || instance.IPv4[0] == nil {
		return "", fmt.Errorf("instance %d has no IPv4 address", instance.ID)
	}
	return instance.IPv4[0].String(), nil
}
