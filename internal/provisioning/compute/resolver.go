package compute

import (
	"context"
	"errors"
	"fmt"

	"github.com/linode/linodego"

	"github.com/testkitchen/kitchen-linode/internal/platform/linode"
	"github.com/testkitchen/kitchen-linode/internal/provisioning"
	"github.com/testkitchen/kitchen-linode/internal/util/retry"
)

// ErrResourceNotFound indicates a configured symbolic name matched nothing in
// the provider catalog. Terminal: retrying cannot make the resource appear.
var ErrResourceNotFound = errors.New("resource not found")

// resources holds the provider-side identifiers resolved for one create.
type resources struct {
	Region string
	Type   string
	Image  string
	Kernel string
}

// resolveResources looks up the provider IDs for the configured region, type,
// image and kernel. Each listing runs under the default transient-retry
// policy; a successful listing with no match is terminal.
func resolveResources(ctx *provisioning.Context) (*resources, error) {
	cfg := ctx.Config

	region, err := lookup(ctx, "region", cfg.Region, ctx.Cloud.ListRegions,
		func(r linodego.Region) string { return r.ID })
	if err != nil {
		return nil, err
	}

	instanceType, err := lookup(ctx, "type", cfg.Type, ctx.Cloud.ListTypes,
		func(t linodego.LinodeType) string { return t.ID })
	if err != nil {
		return nil, err
	}

	image, err := lookup(ctx, "image", cfg.Image, ctx.Cloud.ListImages,
		func(i linodego.Image) string { return i.ID })
	if err != nil {
		return nil, err
	}

	kernel, err := lookup(ctx, "kernel", cfg.Kernel, ctx.Cloud.ListKernels,
		func(k linodego.LinodeKernel) string { return k.ID })
	if err != nil {
		return nil, err
	}

	return &resources{Region: region, Type: instanceType, Image: image, Kernel: kernel}, nil
}

// lookup lists one resource kind and scans for an exact ID match.
func lookup[T any](ctx *provisioning.Context, kind, want string, list func(context.Context) ([]T, error), id func(T) string) (string, error) {
	items, err := retry.DoValue(ctx, linode.TransientPolicy(ctx.Config.APIRetries, ctx.Log.Printf),
		func() ([]T, error) { return list(ctx) })
	if err != nil {
		return "", fmt.Errorf("failed to list %ss: %w", kind, err)
	}

	for _, item := range items {
		if id(item) == want {
			return want, nil
		}
	}
	return "", fmt.Errorf("%w: no %s with ID %q", ErrResourceNotFound, kind, want)
}
