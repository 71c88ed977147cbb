package handlers

import (
	"context"

	"github.com/fleetscore/server/pkg/platform/aggregates"
)

type PlatformService interface {
	RegisterService(ctx context.Context, service *aggregates.Service) error
	GetServiceByName(ctx context.Context, name string) (*aggregates.Service, error)
	ListServices(ctx context.Context) ([]*aggregates.Service, error)
	DeleteService(ctx context.Context, name string) error
	CountServices(ctx context.Context) (int, error)
	GenerateReport(ctx context.Context) (*aggregates.Report, error)
}

type Builder struct {
	platform PlatformService
}

func NewBuilder(platform PlatformService) *Builder {
	return &Builder{
		platform: platform,
	}
}
