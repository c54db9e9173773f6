package stats

import (
	"context"
	"encoding/json"
	"time"

	"hr-platform/internal/department"
	"hr-platform/internal/employee"
	"hr-platform/internal/leave"
	"hr-platform/internal/shared/cache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dashboardCacheTTL = 2 * time.Minute
	activityCacheTTL  = 30 * time.Second
)

// Narrow read-side slices of the domain repositories. The engine only
// ever reads full sets; it never mutates.
type EmployeeSource interface {
	FindAll(ctx context.Context) ([]employee.Employee, error)
}

type LeaveSource interface {
	FindByFilter(ctx context.Context, f leave.Filter) ([]leave.Leave, error)
}

type DepartmentSource interface {
	FindAll(ctx context.Context) ([]department.Department, error)
}

type Service interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
	RecentActivity(ctx context.Context) ([]ActivityItem, error)
}

type service struct {
	employees   EmployeeSource
	leaves      LeaveSource
	departments DepartmentSource
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	employees EmployeeSource,
	leaves LeaveSource,
	departments DepartmentSource,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	return &service{
		employees:   employees,
		leaves:      leaves,
		departments: departments,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (s *service) Dashboard(ctx context.Context) (DashboardStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cache.DashboardStatsKey).Result(); err == nil {
			var res DashboardStats
			if json.Unmarshal([]byte(cached), &res) == nil {
				return res, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cache.DashboardStatsKey, func() (interface{}, error) {
		empls, err := s.employees.FindAll(ctx)
		if err != nil {
			return DashboardStats{}, err
		}

		res := ComputeDashboardStats(empls, time.Now())

		if s.rdb != nil {
			if jsonData, err := json.Marshal(res); err == nil {
				s.rdb.Set(ctx, cache.DashboardStatsKey, jsonData, dashboardCacheTTL)
			}
		}
		return res, nil
	})
	if err != nil {
		return DashboardStats{}, err
	}
	return v.(DashboardStats), nil
}

func (s *service) RecentActivity(ctx context.Context) ([]ActivityItem, error) {
	// TTL pendek: label umur ("5 min ago") basi lebih cepat dari datanya
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cache.RecentActivityKey).Result(); err == nil {
			var res []ActivityItem
			if json.Unmarshal([]byte(cached), &res) == nil {
				return res, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cache.RecentActivityKey, func() (interface{}, error) {
		empls, err := s.employees.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		leaves, err := s.leaves.FindByFilter(ctx, leave.Filter{})
		if err != nil {
			return nil, err
		}
		depts, err := s.departments.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		res := BuildRecentActivity(empls, leaves, depts, time.Now())

		if s.rdb != nil {
			if jsonData, err := json.Marshal(res); err == nil {
				s.rdb.Set(ctx, cache.RecentActivityKey, jsonData, activityCacheTTL)
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ActivityItem), nil
}
