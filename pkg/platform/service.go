package platform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fleetscore/server/internal/util"
	"github.com/fleetscore/server/pkg/platform/aggregates"
	er "github.com/mcorbin/corbierror"
	"github.com/prometheus/client_golang/prometheus"
)

type Store interface {
	CreateOrReplaceService(ctx context.Context, service *aggregates.Service) error
	GetServiceByName(ctx context.Context, name string) (*aggregates.Service, error)
	ListServices(ctx context.Context) ([]*aggregates.Service, error)
	DeleteService(ctx context.Context, name string) error
	CountServices(ctx context.Context) (int, error)
}

// Service is the store-backed scorecard service: it persists service
// records and generates fleet reports by replaying the stored fleet
// through a fresh Toolkit. Fleet-level gauges are refreshed on every
// report generation.
type Service struct {
	logger           *slog.Logger
	store            Store
	healthyGauge     prometheus.Gauge
	degradedGauge    prometheus.Gauge
	criticalGauge    prometheus.Gauge
	monthlyCostGauge prometheus.Gauge
}

func New(logger *slog.Logger, store Store, registry *prometheus.Registry) (*Service, error) {
	healthyGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_healthy_services",
		Help: "Number of services currently classified healthy.",
	})
	degradedGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_degraded_services",
		Help: "Number of services currently classified degraded.",
	})
	criticalGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_critical_services",
		Help: "Number of services currently classified critical.",
	})
	monthlyCostGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_total_monthly_cost",
		Help: "Sum of the latest monthly cost of every service.",
	})
	for _, gauge := range []prometheus.Gauge{healthyGauge, degradedGauge, criticalGauge, monthlyCostGauge} {
		if err := registry.Register(gauge); err != nil {
			return nil, err
		}
	}
	return &Service{
		logger:           logger,
		store:            store,
		healthyGauge:     healthyGauge,
		degradedGauge:    degradedGauge,
		criticalGauge:    criticalGauge,
		monthlyCostGauge: monthlyCostGauge,
	}, nil
}

// RegisterService persists a service record, replacing any existing
// record with the same name.
func (s *Service) RegisterService(ctx context.Context, service *aggregates.Service) error {
	if service.Name == "" {
		return er.New("the service name is mandatory", er.BadRequest, true)
	}
	s.logger.Info(fmt.Sprintf("registering service %s", service.Name))
	if service.ID == "" {
		service.ID = util.NewUUID()
	}
	if service.CreatedAt.IsZero() {
		service.CreatedAt = time.Now().UTC()
	}
	return s.store.CreateOrReplaceService(ctx, service)
}

func (s *Service) GetServiceByName(ctx context.Context, name string) (*aggregates.Service, error) {
	return s.store.GetServiceByName(ctx, name)
}

func (s *Service) ListServices(ctx context.Context) ([]*aggregates.Service, error) {
	return s.store.ListServices(ctx)
}

func (s *Service) DeleteService(ctx context.Context, name string) error {
	s.logger.Info(fmt.Sprintf("deleting service %s", name))
	return s.store.DeleteService(ctx, name)
}

func (s *Service) CountServices(ctx context.Context) (int, error) {
	return s.store.CountServices(ctx)
}

// GenerateReport loads the stored fleet and computes a fresh report.
func (s *Service) GenerateReport(ctx context.Context) (*aggregates.Report, error) {
	services, err := s.store.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	toolkit := NewToolkit()
	for _, service := range services {
		toolkit.RegisterService(*service)
	}
	report := toolkit.GenerateReport()
	s.healthyGauge.Set(float64(report.HealthyCount))
	s.degradedGauge.Set(float64(report.DegradedCount))
	s.criticalGauge.Set(float64(report.CriticalCount))
	s.monthlyCostGauge.Set(report.TotalMonthlyCost)
	return &report, nil
}
