// Package linode wraps the Linode API behind the capability surface the
// driver needs: resource listings, instance create/get/delete and the boot
// wait. Error classification lives here too, so the provisioning layer can
// reason about timeouts, rate limits and label conflicts without touching
// provider error types.
package linode

import (
	"context"

	"github.com/linode/linodego"
)

// InstanceCreateOpts holds all parameters for creating a Linode instance.
type InstanceCreateOpts struct {
	Label    string
	Region   string
	Type     string
	Image    string
	Kernel   string
	RootPass string
}

// InstanceManager defines the interface to the Linode API.
type InstanceManager interface {
	ListRegions(ctx context.Context) ([]linodego.Region, error)
	ListTypes(ctx context.Context) ([]linodego.LinodeType, error)
	ListImages(ctx context.Context) ([]linodego.Image, error)
	ListKernels(ctx context.Context) ([]linodego.LinodeKernel, error)

	// ListInstancesByLabel returns the account's instances carrying exactly
	// the given label (zero or one entry; labels are unique per account).
	ListInstancesByLabel(ctx context.Context, label string) ([]linodego.Instance, error)

	CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*linodego.Instance, error)
	GetInstance(ctx context.Context, id int) (*linodego.Instance, error)
	DeleteInstance(ctx context.Context, id int) error

	// WaitForBoot blocks until the instance reports the running status.
	// Polling cadence and timeout are configured on the client.
	WaitForBoot(ctx context.Context, id int) (*linodego.Instance, error)
}
