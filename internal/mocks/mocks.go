// File: internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/boxflow/internal/config"
	"github.com/xkilldash9x/boxflow/internal/engine"
)

// -- Config Mock --

// MockConfig mocks the config.Interface.
type MockConfig struct {
	mock.Mock
}

// --- Getters ---

func (m *MockConfig) Logger() config.LoggerConfig {
	args := m.Called()
	return args.Get(0).(config.LoggerConfig)
}

func (m *MockConfig) Render() config.RenderConfig {
	args := m.Called()
	return args.Get(0).(config.RenderConfig)
}

// --- Setters ---

func (m *MockConfig) SetViewport(width, height int) {
	m.Called(width, height)
}

func (m *MockConfig) SetOutput(path string) {
	m.Called(path)
}

func (m *MockConfig) SetFormat(format string) {
	m.Called(format)
}

func (m *MockConfig) SetConcurrency(n int) {
	m.Called(n)
}

// -- Renderer Mock --

// MockRenderer mocks the rendering pipeline used by the CLI commands.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, in engine.Input) (*engine.Result, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*engine.Result)
	return result, args.Error(1)
}

func (m *MockRenderer) RenderAll(ctx context.Context, inputs []engine.Input) []engine.Outcome {
	args := m.Called(ctx, inputs)
	outcomes, _ := args.Get(0).([]engine.Outcome)
	return outcomes
}
