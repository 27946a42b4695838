package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// CommentSQLite is an embedded SQLite implementation of repository.CommentStore.
type CommentSQLite struct {
	db *sql.DB
}

// NewCommentSQLite creates a new CommentSQLite repository over a migrated database.
func NewCommentSQLite(db *sql.DB) *CommentSQLite {
	return &CommentSQLite{db: db}
}

var _ repository.CommentStore = (*CommentSQLite)(nil)

// ListByPost returns the flat comment rows of one post in chronological order.
func (r *CommentSQLite) ListByPost(ctx context.Context, postSlug string, approvedOnly bool) ([]model.Comment, error) {
	q := `
		SELECT id, post_slug, author_name, COALESCE(author_email, ''), comment_text,
		       parent_id, COALESCE(ip_address, ''), is_approved, created_at, updated_at
		FROM blog_comments
		WHERE post_slug = ?`
	if approvedOnly {
		q += ` AND is_approved = 1`
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, postSlug)
	if err != nil {
		return nil, fmt.Errorf("query comments (post=%s): %w", postSlug, err)
	}
	defer rows.Close()

	out := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

// Create inserts a comment. The parent check and the insert are one statement,
// so a reply can never reference a parent from another post or a missing row.
func (r *CommentSQLite) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO blog_comments
			(post_slug, author_name, author_email, comment_text, parent_id, ip_address, is_approved, created_at, updated_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE ? IS NULL OR EXISTS (SELECT 1 FROM blog_comments WHERE id = ? AND post_slug = ?)
		RETURNING id`

	now := c.CreatedAt.UTC()
	if now.IsZero() {
		now = time.Now().UTC()
	}
	ts := now.Format(timeLayout)

	var parent sql.NullInt64
	if c.ParentID != nil {
		parent = sql.NullInt64{Int64: *c.ParentID, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, q,
		c.PostSlug,
		c.AuthorName,
		nullString(c.AuthorEmail),
		c.CommentText,
		parent,
		nullString(c.IPAddress),
		c.IsApproved,
		ts,
		ts,
		parent,
		parent,
		c.PostSlug,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrParentNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	out := *c
	out.ID = id
	out.CreatedAt, _ = time.Parse(timeLayout, ts)
	out.UpdatedAt = out.CreatedAt
	out.Replies = nil
	return &out, nil
}

// SetApproved updates the moderation flag of one comment.
func (r *CommentSQLite) SetApproved(ctx context.Context, id int64, approved bool) error {
	const q = `UPDATE blog_comments SET is_approved = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, approved, time.Now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("update comment %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update comment %d: %w", id, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Ping checks that the comments database answers queries.
func (r *CommentSQLite) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

func scanComment(rows *sql.Rows) (model.Comment, error) {
	var (
		c                model.Comment
		parent           sql.NullInt64
		created, updated string
	)
	if err := rows.Scan(
		&c.ID,
		&c.PostSlug,
		&c.AuthorName,
		&c.AuthorEmail,
		&c.CommentText,
		&parent,
		&c.IPAddress,
		&c.IsApproved,
		&created,
		&updated,
	); err != nil {
		return model.Comment{}, fmt.Errorf("scan comment: %w", err)
	}
	if parent.Valid {
		p := parent.Int64
		c.ParentID = &p
	}
	var err error
	if c.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return model.Comment{}, fmt.Errorf("parse created_at of comment %d: %w", c.ID, err)
	}
	if c.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return model.Comment{}, fmt.Errorf("parse updated_at of comment %d: %w", c.ID, err)
	}
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
