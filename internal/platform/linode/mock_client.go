package linode

import (
	"context"

	"github.com/linode/linodego"
)

// MockClient is a mock implementation of InstanceManager. Unset function
// fields fall back to empty successful responses.
type MockClient struct {
	ListRegionsFunc          func(ctx context.Context) ([]linodego.Region, error)
	ListTypesFunc            func(ctx context.Context) ([]linodego.LinodeType, error)
	ListImagesFunc           func(ctx context.Context) ([]linodego.Image, error)
	ListKernelsFunc          func(ctx context.Context) ([]linodego.LinodeKernel, error)
	ListInstancesByLabelFunc func(ctx context.Context, label string) ([]linodego.Instance, error)
	CreateInstanceFunc       func(ctx context.Context, opts InstanceCreateOpts) (*linodego.Instance, error)
	GetInstanceFunc          func(ctx context.Context, id int) (*linodego.Instance, error)
	DeleteInstanceFunc       func(ctx context.Context, id int) error
	WaitForBootFunc          func(ctx context.Context, id int) (*linodego.Instance, error)

	// Calls counts invocations by method name.
	Calls map[string]int
}

// Ensure interface compliance.
var _ InstanceManager = (*MockClient)(nil)

func (m *MockClient) record(method string) {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[method]++
}

// ListRegions mocks region listing.
func (m *MockClient) ListRegions(ctx context.Context) ([]linodego.Region, error) {
	m.record("ListRegions")
	if m.ListRegionsFunc != nil {
		return m.ListRegionsFunc(ctx)
	}
	return nil, nil
}

// ListTypes mocks instance type listing.
func (m *MockClient) ListTypes(ctx context.Context) ([]linodego.LinodeType, error) {
	m.record("ListTypes")
	if m.ListTypesFunc != nil {
		return m.ListTypesFunc(ctx)
	}
	return nil, nil
}

// ListImages mocks image listing.
func (m *MockClient) ListImages(ctx context.Context) ([]linodego.Image, error) {
	m.record("ListImages")
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(ctx)
	}
	return nil, nil
}

// ListKernels mocks kernel listing.
func (m *MockClient) ListKernels(ctx context.Context) ([]linodego.LinodeKernel, error) {
	m.record("ListKernels")
	if m.ListKernelsFunc != nil {
		return m.ListKernelsFunc(ctx)
	}
	return nil, nil
}

// ListInstancesByLabel mocks the label existence query.
func (m *MockClient) ListInstancesByLabel(ctx context.Context, label string) ([]linodego.Instance, error) {
	m.record("ListInstancesByLabel")
	if m.ListInstancesByLabelFunc != nil {
		return m.ListInstancesByLabelFunc(ctx, label)
	}
	return nil, nil
}

// CreateInstance mocks instance creation.
func (m *MockClient) CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*linodego.Instance, error) {
	m.record("CreateInstance")
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, opts)
	}
	return &linodego.Instance{ID: 1, Label: opts.Label}, nil
}

// GetInstance mocks instance retrieval.
func (m *MockClient) GetInstance(ctx context.Context, id int) (*linodego.Instance, error) {
	m.record("GetInstance")
	if m.GetInstanceFunc != nil {
		return m.GetInstanceFunc(ctx, id)
	}
	return &linodego.Instance{ID: id}, nil
}

// DeleteInstance mocks instance deletion.
func (m *MockClient) DeleteInstance(ctx context.Context, id int) error {
	m.record("DeleteInstance")
	if m.DeleteInstanceFunc != nil {
		return m.DeleteInstanceFunc(ctx, id)
	}
	return nil
}

// WaitForBoot mocks the boot wait.
func (m *MockClient) WaitForBoot(ctx context.Context, id int) (*linodego.Instance, error) {
	m.record("WaitForBoot")
	if m.WaitForBootFunc != nil {
		return m.WaitForBootFunc(ctx, id)
	}
	return &linodego.Instance{ID: id, Status: linodego.InstanceRunning}, nil
}
