package contract

import (
	"context"
	"io"

	"github.com/shieldstats/shieldstats/schema"
	"github.com/stretchr/testify/mock"
)

// MockLoader is a mock implementation of Loader for testing.
type MockLoader struct {
	mock.Mock
}

var _ Loader = &MockLoader{} // Compile-time check

// Load implements the Loader interface.
func (m *MockLoader) Load(ctx context.Context, url string) ([]schema.RawSample, error) {
	args := m.Called(ctx, url)
	samples, _ := args.Get(0).([]schema.RawSample)
	return samples, args.Error(1)
}

// MockRenderer is a mock implementation of Renderer for testing.
type MockRenderer struct {
	mock.Mock
}

var _ Renderer = &MockRenderer{} // Compile-time check

// Render implements the Renderer interface.
func (m *MockRenderer) Render(data schema.ChartData) (ChartInstance, error) {
	args := m.Called(data)
	inst, _ := args.Get(0).(ChartInstance)
	return inst, args.Error(1)
}

// MockChartInstance is a mock implementation of ChartInstance for testing.
type MockChartInstance struct {
	mock.Mock
}

var _ ChartInstance = &MockChartInstance{} // Compile-time check

// WriteTo implements the ChartInstance interface.
func (m *MockChartInstance) WriteTo(w io.Writer, format schema.ChartFormat) error {
	args := m.Called(w, format)
	return args.Error(0)
}

// Destroy implements the ChartInstance interface.
func (m *MockChartInstance) Destroy() {
	m.Called()
}
