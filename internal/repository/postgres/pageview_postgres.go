package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"
)

// PageViewPostgres is a PostgreSQL implementation of repository.AnalyticsStore.
// It uses database/sql with parameterized queries and contains no business logic.
type PageViewPostgres struct {
	db *sql.DB
}

// NewPageViewPostgres creates a new PageViewPostgres repository.
func NewPageViewPostgres(db *sql.DB) *PageViewPostgres {
	return &PageViewPostgres{db: db}
}

var _ repository.AnalyticsStore = (*PageViewPostgres)(nil)

// RecordPageView appends a page view row and returns the stored record.
func (r *PageViewPostgres) RecordPageView(ctx context.Context, pv *model.PageView) (*model.PageView, error) {
	const q = `
		INSERT INTO page_views (path, user_agent, ip_address, viewed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, path, COALESCE(user_agent, ''), COALESCE(ip_address, ''), viewed_at
	`
	row := r.db.QueryRowContext(ctx, q,
		pv.Path,
		nullString(pv.UserAgent),
		nullString(pv.IPAddress),
		pv.ViewedAt,
	)
	var out model.PageView
	if err := row.Scan(
		&out.ID,
		&out.Path,
		&out.UserAgent,
		&out.IPAddress,
		&out.ViewedAt,
	); err != nil {
		return nil, fmt.Errorf("insert page view: %w", err)
	}
	return &out, nil
}

// PopularPages aggregates the log by path at query time.
func (r *PageViewPostgres) PopularPages(ctx context.Context, limit int) ([]model.PageCount, error) {
	const q = `
		SELECT path, COUNT(*) AS views
		FROM page_views
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular pages (limit=%d): %w", limit, err)
	}
	defer rows.Close()

	items := make([]model.PageCount, 0, limit)
	for rows.Next() {
		var pc model.PageCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return nil, fmt.Errorf("scan popular page: %w", err)
		}
		items = append(items, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular pages: %w", err)
	}
	return items, nil
}

// Ping checks connectivity to the analytics database.
func (r *PageViewPostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
