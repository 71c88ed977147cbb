package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	costaggregates "github.com/fleetscore/server/pkg/cost/aggregates"
	"github.com/fleetscore/server/pkg/platform/aggregates"
	relaggregates "github.com/fleetscore/server/pkg/reliability/aggregates"
	er "github.com/mcorbin/corbierror"
	"github.com/pkg/errors"
)

type dbService struct {
	ID                   string
	Name                 string
	Team                 string
	SLOs                 *string   `db:"slos"`
	CostEntries          *string   `db:"cost_entries"`
	BudgetMonthly        *float64  `db:"budget_monthly"`
	UptimePct            float64   `db:"uptime_pct"`
	MTTRMinutes          float64   `db:"mttr_minutes"`
	Incidents30d         int       `db:"incidents_30d"`
	ChangeFailureRatePct float64   `db:"change_failure_rate_pct"`
	GovernanceChecks     *string   `db:"governance_checks"`
	CreatedAt            time.Time `db:"created_at"`
}

const serviceColumns = "service.id, service.name, service.team, service.slos, service.cost_entries, service.budget_monthly, service.uptime_pct, service.mttr_minutes, service.incidents_30d, service.change_failure_rate_pct, service.governance_checks, service.created_at"

func toService(service *dbService) (*aggregates.Service, error) {
	slos, err := stringToSLOs(service.SLOs)
	if err != nil {
		return nil, err
	}
	entries, err := stringToCostEntries(service.CostEntries)
	if err != nil {
		return nil, err
	}
	checks, err := stringToChecks(service.GovernanceChecks)
	if err != nil {
		return nil, err
	}
	return &aggregates.Service{
		ID:   service.ID,
		Name: service.Name,
		Team: service.Team,
		SLOs: slos,
		Cost: costaggregates.CostProfile{
			Entries:       entries,
			BudgetMonthly: service.BudgetMonthly,
		},
		Reliability: relaggregates.Metrics{
			UptimePct:            service.UptimePct,
			MTTRMinutes:          service.MTTRMinutes,
			Incidents30d:         service.Incidents30d,
			ChangeFailureRatePct: service.ChangeFailureRatePct,
		},
		GovernanceChecks: checks,
		CreatedAt:        service.CreatedAt,
	}, nil
}

func toDBService(service *aggregates.Service) (*dbService, error) {
	slos, err := slosToString(service.SLOs)
	if err != nil {
		return nil, err
	}
	entries, err := costEntriesToString(service.Cost.Entries)
	if err != nil {
		return nil, err
	}
	checks, err := checksToString(service.GovernanceChecks)
	if err != nil {
		return nil, err
	}
	return &dbService{
		ID:                   service.ID,
		Name:                 service.Name,
		Team:                 service.Team,
		SLOs:                 slos,
		CostEntries:          entries,
		BudgetMonthly:        service.Cost.BudgetMonthly,
		UptimePct:            service.Reliability.UptimePct,
		MTTRMinutes:          service.Reliability.MTTRMinutes,
		Incidents30d:         service.Reliability.Incidents30d,
		ChangeFailureRatePct: service.Reliability.ChangeFailureRatePct,
		GovernanceChecks:     checks,
		CreatedAt:            service.CreatedAt,
	}, nil
}

// CreateOrReplaceService upserts a service record by name. The whole
// record is replaced, registering is never a partial update.
func (c *Database) CreateOrReplaceService(ctx context.Context, service *aggregates.Service) error {
	data, err := toDBService(service)
	if err != nil {
		return err
	}
	tx := c.db.MustBegin()
	shouldRollback := true
	defer func() {
		if shouldRollback {
			err := tx.Rollback()
			if err != nil {
				c.Logger.Error(err.Error())
			}
		}
	}()
	lock := fmt.Sprintf("service-%s", service.Name)
	_, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", lock)
	if err != nil {
		return err
	}
	existing := dbService{}
	err = tx.GetContext(ctx, &existing, "SELECT service.id, service.name FROM service WHERE name=$1", service.Name)
	if err != nil {
		if err != sql.ErrNoRows {
			return errors.Wrapf(err, "fail to get service %s", service.Name)
		}
		result, err := tx.NamedExecContext(ctx, "INSERT INTO service (id, name, team, slos, cost_entries, budget_monthly, uptime_pct, mttr_minutes, incidents_30d, change_failure_rate_pct, governance_checks, created_at) VALUES (:id, :name, :team, :slos, :cost_entries, :budget_monthly, :uptime_pct, :mttr_minutes, :incidents_30d, :change_failure_rate_pct, :governance_checks, :created_at)", data)
		if err != nil {
			return errors.Wrapf(err, "fail to create service %s", service.Name)
		}
		if err := checkResult(result, 1); err != nil {
			return err
		}
	} else {
		// keep the original identity, replace everything else
		data.ID = existing.ID
		result, err := tx.NamedExecContext(ctx, "UPDATE service SET team=:team, slos=:slos, cost_entries=:cost_entries, budget_monthly=:budget_monthly, uptime_pct=:uptime_pct, mttr_minutes=:mttr_minutes, incidents_30d=:incidents_30d, change_failure_rate_pct=:change_failure_rate_pct, governance_checks=:governance_checks, created_at=:created_at WHERE name=:name", data)
		if err != nil {
			return errors.Wrapf(err, "fail to replace service %s", service.Name)
		}
		if err := checkResult(result, 1); err != nil {
			return err
		}
		service.ID = existing.ID
	}
	err = tx.Commit()
	if err != nil {
		return err
	}
	shouldRollback = false
	return nil
}

func (c *Database) GetServiceByName(ctx context.Context, name string) (*aggregates.Service, error) {
	service := dbService{}
	err := c.db.GetContext(ctx, &service, fmt.Sprintf("SELECT %s FROM service WHERE name=$1", serviceColumns), name)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, errors.Wrapf(err, "fail to get service %s", name)
		}
		return nil, er.New("service not found", er.NotFound, true)
	}
	return toService(&service)
}

func (c *Database) ListServices(ctx context.Context) ([]*aggregates.Service, error) {
	dbServices := []dbService{}
	err := c.db.SelectContext(ctx, &dbServices, fmt.Sprintf("SELECT %s FROM service ORDER BY name", serviceColumns))
	if err != nil {
		return nil, errors.Wrap(err, "fail to list services")
	}
	result := make([]*aggregates.Service, 0, len(dbServices))
	for i := range dbServices {
		service, err := toService(&dbServices[i])
		if err != nil {
			return nil, err
		}
		result = append(result, service)
	}
	return result, nil
}

func (c *Database) DeleteService(ctx context.Context, name string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM service WHERE name=$1", name)
	if err != nil {
		return errors.Wrapf(err, "fail to delete service %s", name)
	}
	return checkResult(result, 1)
}

func (c *Database) CountServices(ctx context.Context) (int, error) {
	var count int
	err := c.db.GetContext(ctx, &count, "SELECT count(*) FROM service")
	if err != nil {
		return 0, errors.Wrap(err, "fail to count services")
	}
	return count, nil
}
