package repository

import (
	"context"

	"portfolioapi/internal/model"
)

// AnalyticsStore appends to and aggregates the page view log.
type AnalyticsStore interface {
	Pinger

	// RecordPageView appends one page view and returns the stored row.
	RecordPageView(ctx context.Context, pv *model.PageView) (*model.PageView, error)

	// PopularPages groups views by path, ordered by count descending then path
	// ascending, truncated to limit.
	PopularPages(ctx context.Context, limit int) ([]model.PageCount, error)
}
