package destroy

import (
	"context"
	"errors"
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

func testContext(cloud *linode.MockClient) *provisioning.Context {
	cfg := &config.Config{Token: "tok"}
	cfg.ApplyDefaults()
	return provisioning.NewContext(context.Background(), cfg, cloud, nopLogger{})
}

func notFoundErr() error {
	return &linodego.Error{Code: http.StatusNotFound, Message: "Not found"}
}

func TestDestroyDeletesAndClearsState(t *testing.T) {
	t.Parallel()

	cloud := &linode.MockClient{}
	st := &provisioning.State{
		InstanceID:    42,
		InstanceLabel: "kitchen-job-default-170000000000",
		Hostname:      "203.0.113.10",
		SSHKeyPath:    "/home/u/.ssh/id_ed25519",
	}

	require.NoError(t, NewProvisioner().Destroy(testContext(cloud), st))

	assert.Equal(t, 1, cloud.Calls["DeleteInstance"])
	assert.False(t, st.Provisioned())
	assert.Empty(t, st.InstanceLabel)
	assert.Empty(t, st.Hostname)
	assert.Empty(t, st.SSHKeyPath)
}

func TestDestroyWithoutInstanceIDIsNoop(t *testing.T) {
	t.Parallel()

	cloud := &linode.MockClient{}
	st := &provisioning.State{InstanceLabel: "stale-label"}

	require.NoError(t, NewProvisioner().Destroy(testContext(cloud), st))

	assert.Empty(t, cloud.Calls)
	// A record without an instance ID is not touched.
	assert.Equal(t, "stale-label", st.InstanceLabel)
}

func TestDestroyMissingInstanceCountsAsDestroyed(t *testing.T) {
	t.Parallel()

	cloud := &linode.MockClient{
		GetInstanceFunc: func(context.Context, int) (*linodego.Instance, error) {
			return nil, notFoundErr()
		},
	}
	st := &provisioning.State{InstanceID: 42, Hostname: "203.0.113.10"}

	require.NoError(t, NewProvisioner().Destroy(testContext(cloud), st))

	assert.Zero(t, cloud.Calls["DeleteInstance"])
	assert.False(t, st.Provisioned())
	assert.Empty(t, st.Hostname)
}

func TestDestroyRacingDeleteCountsAsDestroyed(t *testing.T) {
	t.Parallel()

	cloud := &linode.MockClient{
		DeleteInstanceFunc: func(context.Context, int) error {
			return notFoundErr()
		},
	}
	st := &provisioning.State{InstanceID: 42}

	require.NoError(t, NewProvisioner().Destroy(testContext(cloud), st))
	assert.False(t, st.Provisioned())
}

func TestDestroyKeepsStateOnFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	cloud := &linode.MockClient{
		DeleteInstanceFunc: func(context.Context, int) error { return boom },
	}
	st := &provisioning.State{InstanceID: 42, Hostname: "203.0.113.10"}

	err := NewProvisioner().Destroy(testContext(cloud), st)
	require.ErrorIs(t, err, boom)

	assert.True(t, st.Provisioned())
	assert.Equal(t, "203.0.113.10", st.Hostname)
}
