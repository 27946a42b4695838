package repository

import (
	"context"

	"portfolioapi/internal/model"
)

// CommentStore persists blog comment rows. Rows come back flat; threading is
// done by the caller.
type CommentStore interface {
	Pinger

	// ListByPost returns comments for postSlug ordered by creation time then id.
	ListByPost(ctx context.Context, postSlug string, approvedOnly bool) ([]model.Comment, error)

	// Create inserts a comment and assigns its id and timestamps. When ParentID
	// is set the parent must exist under the same post, otherwise
	// ErrParentNotFound is returned and nothing is written.
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)

	// SetApproved changes the moderation flag of one comment.
	SetApproved(ctx context.Context, id int64, approved bool) error
}
