package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"portfolioapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageViewPostgres_RecordPageView(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPageViewPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("with user agent and ip", func(t *testing.T) {
		pv := &model.PageView{Path: "/blog/hello", UserAgent: "curl/8", IPAddress: "10.0.0.1", ViewedAt: now}

		rows := sqlmock.NewRows([]string{"id", "path", "user_agent", "ip_address", "viewed_at"}).
			AddRow(7, pv.Path, pv.UserAgent, pv.IPAddress, now)
		mock.ExpectQuery("INSERT INTO page_views").
			WithArgs(pv.Path,
				sql.NullString{String: "curl/8", Valid: true},
				sql.NullString{String: "10.0.0.1", Valid: true},
				now).
			WillReturnRows(rows)

		got, err := repo.RecordPageView(ctx, pv)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "/blog/hello", got.Path)
		assert.Equal(t, "curl/8", got.UserAgent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("optional fields stored as NULL", func(t *testing.T) {
		pv := &model.PageView{Path: "/", ViewedAt: now}

		rows := sqlmock.NewRows([]string{"id", "path", "user_agent", "ip_address", "viewed_at"}).
			AddRow(8, "/", "", "", now)
		mock.ExpectQuery("INSERT INTO page_views").
			WithArgs("/", sql.NullString{}, sql.NullString{}, now).
			WillReturnRows(rows)

		got, err := repo.RecordPageView(ctx, pv)
		require.NoError(t, err)
		assert.Empty(t, got.UserAgent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO page_views").
			WillReturnError(errors.New("connection reset"))

		got, err := repo.RecordPageView(ctx, &model.PageView{Path: "/x", ViewedAt: now})
		assert.Nil(t, got)
		assert.ErrorContains(t, err, "insert page view: connection reset")
	})
}

func TestPageViewPostgres_PopularPages(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPageViewPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"path", "views"}).
			AddRow("/", 12).
			AddRow("/about", 4).
			AddRow("/blog", 4)
		mock.ExpectQuery("SELECT path, COUNT\\(\\*\\) AS views FROM page_views GROUP BY path ORDER BY views DESC, path ASC LIMIT").
			WithArgs(3).
			WillReturnRows(rows)

		got, err := repo.PopularPages(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, []model.PageCount{
			{Path: "/", Views: 12},
			{Path: "/about", Views: 4},
			{Path: "/blog", Views: 4},
		}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty log", func(t *testing.T) {
		mock.ExpectQuery("SELECT path").
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"path", "views"}))

		got, err := repo.PopularPages(ctx, 10)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT path").
			WithArgs(10).
			WillReturnError(errors.New("boom"))

		_, err := repo.PopularPages(ctx, 10)
		assert.ErrorContains(t, err, "query popular pages")
	})
}

func TestPageViewPostgres_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	repo := NewPageViewPostgres(db)

	mock.ExpectPing()
	assert.NoError(t, repo.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, repo.Ping(context.Background()))
}
