package linode

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/linode/linodego"
	"golang.org/x/oauth2"
)

const defaultBootTimeout = 600 * time.Second

// RealClient implements InstanceManager using the Linode API.
type RealClient struct {
	client      linodego.Client
	bootTimeout time.Duration
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithBootTimeout sets how long WaitForBoot polls before giving up.
func WithBootTimeout(d time.Duration) ClientOption {
	return func(c *RealClient) {
		if d > 0 {
			c.bootTimeout = d
		}
	}
}

// WithLinodeClient sets a custom linodego client (useful for testing).
func WithLinodeClient(lc linodego.Client) ClientOption {
	return func(c *RealClient) {
		c.client = lc
	}
}

// NewRealClient creates a new RealClient authenticating with the given token.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	oauthClient := &http.Client{
		Transport: &oauth2.Transport{Source: tokenSource},
	}

	c := &RealClient{
		client:      linodego.NewClient(oauthClient),
		bootTimeout: defaultBootTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRegions returns all available regions.
func (c *RealClient) ListRegions(ctx context.Context) ([]linodego.Region, error) {
	return c.client.ListRegions(ctx, nil)
}

// ListTypes returns all available instance types.
func (c *RealClient) ListTypes(ctx context.Context) ([]linodego.LinodeType, error) {
	return c.client.ListTypes(ctx, nil)
}

// ListImages returns all images visible to the account.
func (c *RealClient) ListImages(ctx context.Context) ([]linodego.Image, error) {
	return c.client.ListImages(ctx, nil)
}

// ListKernels returns all available boot kernels.
func (c *RealClient) ListKernels(ctx context.Context) ([]linodego.LinodeKernel, error) {
	return c.client.ListKernels(ctx, nil)
}

// ListInstancesByLabel returns the account's instances with the given label.
func (c *RealClient) ListInstancesByLabel(ctx context.Context, label string) ([]linodego.Instance, error) {
	filter := fmt.Sprintf(`{"label": %q}`, label)
	return c.client.ListInstances(ctx, linodego.NewListOptions(0, filter))
}

// CreateInstance creates a new instance. The kernel, when set, is applied to
// the boot configuration profile the API generated for the instance; the
// create call itself only accepts region, type, image and credentials.
func (c *RealClient) CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*linodego.Instance, error) {
	booted := true
	instance, err := c.client.CreateInstance(ctx, linodego.InstanceCreateOptions{
		Label:    opts.Label,
		Region:   opts.Region,
		Type:     opts.Type,
		Image:    opts.Image,
		RootPass: opts.RootPass,
		Booted:   &booted,
	})
	if err != nil {
		return nil, err
	}

	if opts.Kernel != "" {
		if err := c.setBootKernel(ctx, instance.ID, opts.Kernel); err != nil {
			return nil, fmt.Errorf("failed to set boot kernel on instance %d: %w", instance.ID, err)
		}
	}

	return instance, nil
}

// setBootKernel updates the instance's configuration profile to boot the
// requested kernel.
func (c *RealClient) setBootKernel(ctx context.Context, id int, kernel string) error {
	configs, err := c.client.ListInstanceConfigs(ctx, id, nil)
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		return nil
	}
	_, err = c.client.UpdateInstanceConfig(ctx, id, configs[0].ID, linodego.InstanceConfigUpdateOptions{
		Kernel: kernel,
	})
	return err
}

// GetInstance returns the instance with the given ID.
func (c *RealClient) GetInstance(ctx context.Context, id int) (*linodego.Instance, error) {
	return c.client.GetInstance(ctx, id)
}

// DeleteInstance deletes the instance with the given ID.
func (c *RealClient) DeleteInstance(ctx context.Context, id int) error {
	return c.client.DeleteInstance(ctx, id)
}

// WaitForBoot polls the instance until its status is running.
func (c *RealClient) WaitForBoot(ctx context.Context, id int) (*linodego.Instance, error) {
	return c.client.WaitForInstanceStatus(ctx, id, linodego.InstanceRunning, int(c.bootTimeout.Seconds()))
}

// Ensure interface compliance.
var _ InstanceManager = (*RealClient)(nil)
