package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tanush-em/QWERTY/internal/models"
)

type collectionCounter interface {
	Count(ctx context.Context, collection string) (int64, error)
}

const dashboardCacheKey = "dashboard:summary"

// DashboardService aggregates headline counts across the record store.
type DashboardService struct {
	store    collectionCounter
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(store collectionCounter, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &DashboardService{store: store, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// Summary counts every core collection. The result is all or nothing: a
// single failed count discards the whole summary rather than serving
// partial numbers. The boolean reports whether the summary came from
// cache.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, bool, error) {
	if s.cache.Enabled() {
		var cached models.DashboardSummary
		if hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	var summary models.DashboardSummary
	counts := []struct {
		collection string
		dest       *int64
	}{
		{"students", &summary.TotalStudents},
		{"faculties", &summary.TotalFaculties},
		{"courses", &summary.TotalCourses},
		{"leaverequests", &summary.TotalLeaves},
		{"timetables", &summary.TotalTimetableDays},
	}
	for _, c := range counts {
		n, err := s.store.Count(ctx, c.collection)
		if err != nil {
			s.logger.Error("dashboard count failed", zap.String("collection", c.collection), zap.Error(err))
			return nil, false, storeError(err)
		}
		*c.dest = n
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, dashboardCacheKey, summary, s.cacheTTL)
	}
	return &summary, false, nil
}
