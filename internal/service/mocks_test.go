package service_test

import (
	"context"
	"time"

	"nexuscore-backend/internal/session"

	"github.com/stretchr/testify/mock"
)

// MockSessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, ctrl *session.Controller) error {
	args := m.Called(ctx, ctrl)
	return args.Error(0)
}
func (m *MockSessionRepo) Get(ctx context.Context, id string) (*session.Controller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Controller), args.Error(1)
}
func (m *MockSessionRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockSessionRepo) List(ctx context.Context) ([]*session.Controller, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*session.Controller), args.Error(1)
}
func (m *MockSessionRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockSessionRepo) DeleteIdle(ctx context.Context, cutoff time.Time) ([]string, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
