// filepath: internal/services/mocks/preview_mock.go
package mocks

import (
	"context"

	"github.com/knkgun/gallery/internal/models"
	"github.com/knkgun/gallery/internal/preview"
	"github.com/knkgun/gallery/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockPreviewService is a mock implementation of services.PreviewService
type MockPreviewService struct {
	mock.Mock
}

var _ services.PreviewService = (*MockPreviewService)(nil)

func (m *MockPreviewService) GetPreview(ctx context.Context, owner, path string, req preview.Request) (*preview.Result, error) {
	args := m.Called(ctx, owner, path, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*preview.Result), args.Error(1)
}

func (m *MockPreviewService) GetThumbnails(ctx context.Context, owner string, paths []string, req preview.Request) []models.PreviewPayload {
	args := m.Called(ctx, owner, paths, req)
	return args.Get(0).([]models.PreviewPayload)
}
