package driver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/linode/linodego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testkitchen/kitchen-linode/internal/config"
	"github.com/testkitchen/kitchen-linode/internal/platform/linode"
	"github.com/testkitchen/kitchen-linode/internal/provisioning"
)

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

func testConfig() *config.Config {
	cfg := &config.Config{
		Token:          "tok",
		Image:          "linode/ubuntu22.04",
		Password:       "hunter2hunter22",
		PrivateKeyPath: "/home/u/.ssh/id_ed25519",
		InstanceName:   "default",
	}
	cfg.ApplyDefaults()
	return cfg
}

func catalogMock() *linode.MockClient {
	return &linode.MockClient{
		ListRegionsFunc: func(context.Context) ([]linodego.Region, error) {
			return []linodego.Region{{ID: "us-east"}}, nil
		},
		ListTypesFunc: func(context.Context) ([]linodego.LinodeType, error) {
			return []linodego.LinodeType{{ID: "g6-nanode-1"}}, nil
		},
		ListImagesFunc: func(context.Context) ([]linodego.Image, error) {
			return []linodego.Image{{ID: "linode/ubuntu22.04"}}, nil
		},
		ListKernelsFunc: func(context.Context) ([]linodego.LinodeKernel, error) {
			return []linodego.LinodeKernel{{ID: "linode/grub2"}}, nil
		},
		CreateInstanceFunc: func(_ context.Context, opts linode.InstanceCreateOpts) (*linodego.Instance, error) {
			ip := net.ParseIP("203.0.113.10")
			return &linodego.Instance{ID: 42, Label: opts.Label, IPv4: []*net.IP{&ip}}, nil
		},
	}
}

func newTestDriver(cfg *config.Config, cloud *linode.MockClient) (*Driver, *provisioning.Context) {
	d := New(cfg, cloud)
	return d, provisioning.NewContext(context.Background(), cfg, cloud, nopLogger{})
}

func TestCreateSkipsWhenAlreadyProvisioned(t *testing.T) {
	t.Parallel()

	cloud := catalogMock()
	d, ctx := newTestDriver(testConfig(), cloud)
	d.bootstrap = func(*provisioning.Context, string) error {
		t.Fatal("bootstrap must not run for a provisioned record")
		return nil
	}

	st := &provisioning.State{InstanceID: 42, Hostname: "203.0.113.10"}
	require.NoError(t, d.Create(ctx, st))

	assert.Empty(t, cloud.Calls)
	assert.Equal(t, 42, st.InstanceID)
	assert.Equal(t, "203.0.113.10", st.Hostname)
}

func TestCreateProvisionsBootsAndBootstraps(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cloud := catalogMock()
	d, ctx := newTestDriver(cfg, cloud)

	var bootstrappedHost string
	d.bootstrap = func(_ *provisioning.Context, host string) error {
		bootstrappedHost = host
		return nil
	}

	st := &provisioning.State{}
	require.NoError(t, d.Create(ctx, st))

	assert.Equal(t, 42, st.InstanceID)
	assert.Equal(t, "203.0.113.10", st.Hostname)
	assert.Equal(t, cfg.PrivateKeyPath, st.SSHKeyPath)
	assert.NotEmpty(t, st.InstanceLabel)
	assert.Equal(t, "203.0.113.10", bootstrappedHost)
	assert.Equal(t, 1, cloud.Calls["WaitForBoot"])
}

func TestCreateTwiceProvisionsOnce(t *testing.T) {
	t.Parallel()

	cloud := catalogMock()
	d, ctx := newTestDriver(testConfig(), cloud)
	d.bootstrap = func(*provisioning.Context, string) error { return nil }

	st := &provisioning.State{}
	require.NoError(t, d.Create(ctx, st))
	require.NoError(t, d.Create(ctx, st))

	assert.Equal(t, 1, cloud.Calls["CreateInstance"])
}

func TestCreateMissingTokenFailsFast(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Token = ""
	cloud := catalogMock()
	d, ctx := newTestDriver(cfg, cloud)

	err := d.Create(ctx, &provisioning.State{})
	require.Error(t, err)

	// Configuration problems are the caller's to fix, not provisioning failures.
	var pe *ProvisionError
	assert.False(t, errors.As(err, &pe))
	assert.Empty(t, cloud.Calls)
}

func TestCreateWrapsProvisionFailure(t *testing.T) {
	t.Parallel()

	cloud := catalogMock()
	boom := &linodego.Error{Code: http.StatusInternalServerError, Message: "provider exploded"}
	cloud.CreateInstanceFunc = func(context.Context, linode.InstanceCreateOpts) (*linodego.Instance, error) {
		return nil, boom
	}
	d, ctx := newTestDriver(testConfig(), cloud)

	st := &provisioning.State{}
	err := d.Create(ctx, st)

	var pe *ProvisionError
	require.ErrorAs(t, err, &pe)
	assert.False(t, st.Provisioned())
}

func TestCreateBootFailureKeepsPartialState(t *testing.T) {
	t.Parallel()

	cloud := catalogMock()
	cloud.WaitForBootFunc = func(context.Context, int) (*linodego.Instance, error) {
		return nil, errors.New("boot watchdog fired")
	}
	d, ctx := newTestDriver(testConfig(), cloud)

	st := &provisioning.State{}
	err := d.Create(ctx, st)

	var pe *ProvisionError
	require.ErrorAs(t, err, &pe)
	// The record keeps the instance so a later destroy can clean it up.
	assert.Equal(t, 42, st.InstanceID)
	assert.Equal(t, "203.0.113.10", st.Hostname)
}

func TestCreateSkipsBootstrapForNonPosixShell(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Shell = "powershell"
	cloud := catalogMock()
	d, ctx := newTestDriver(cfg, cloud)
	d.bootstrap = func(*provisioning.Context, string) error {
		t.Fatal("bootstrap must not run for a non-POSIX shell")
		return nil
	}

	st := &provisioning.State{}
	require.NoError(t, d.Create(ctx, st))
	assert.Equal(t, 42, st.InstanceID)
}

func TestDestroyClearsState(t *testing.T) {
	t.Parallel()

	cloud := catalogMock()
	d, ctx := newTestDriver(testConfig(), cloud)

	st := &provisioning.State{InstanceID: 42, Hostname: "203.0.113.10"}
	require.NoError(t, d.Destroy(ctx, st))

	assert.Equal(t, 1, cloud.Calls["DeleteInstance"])
	assert.False(t, st.Provisioned())
}
