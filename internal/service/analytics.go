package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"portfolioapi/internal/apperror"
	"portfolioapi/internal/metrics"
	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"
)

const (
	analyticsStoreName = "postgres"

	DefaultPopularLimit = 10
	MaxPopularLimit     = 100
)

// AnalyticsService records page views and aggregates them.
type AnalyticsService interface {
	// RecordPageView synchronously appends one page view. Callers that must
	// not be slowed down use a PageViewDispatcher instead.
	RecordPageView(ctx context.Context, path, userAgent, ip string) (*model.PageView, error)

	// PopularPages returns at most limit paths ordered by view count.
	PopularPages(ctx context.Context, limit int) ([]model.PageCount, error)
}

type analyticsService struct {
	store repository.AnalyticsStore
	now   func() time.Time
}

// NewAnalyticsService constructs a new AnalyticsService.
func NewAnalyticsService(store repository.AnalyticsStore) AnalyticsService {
	return &analyticsService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *analyticsService) RecordPageView(ctx context.Context, path, userAgent, ip string) (*model.PageView, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, apperror.NewValidation("Path is required")
	}
	pv, err := s.store.RecordPageView(ctx, &model.PageView{
		Path:      path,
		UserAgent: userAgent,
		IPAddress: ip,
		ViewedAt:  s.now(),
	})
	if err != nil {
		return nil, apperror.NewStoreUnavailable(analyticsStoreName, err)
	}
	metrics.PageViewsRecorded.Inc()
	return pv, nil
}

func (s *analyticsService) PopularPages(ctx context.Context, limit int) ([]model.PageCount, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	if limit > MaxPopularLimit {
		limit = MaxPopularLimit
	}
	out, err := s.store.PopularPages(ctx, limit)
	if err != nil {
		return nil, apperror.NewStoreUnavailable(analyticsStoreName, err)
	}
	if out == nil {
		out = []model.PageCount{}
	}
	return out, nil
}

// ParseLimit converts a raw query value into a popular-pages limit.
// Missing, non-numeric or non-positive input yields the default.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultPopularLimit
	}
	if n > MaxPopularLimit {
		return MaxPopularLimit
	}
	return n
}
