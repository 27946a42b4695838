package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"portfolioapi/internal/apperror"
	"portfolioapi/internal/metrics"
	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"
)

const (
	commentStoreName = "sqlite"

	maxAuthorNameLen  = 100
	maxCommentTextLen = 5000
)

// CommentPolicy controls how new comments are moderated.
type CommentPolicy struct {
	// AutoApprove publishes new comments immediately. When false a comment
	// stays hidden until approved.
	AutoApprove bool
}

// CommentService defines the use cases for threaded blog comments.
type CommentService interface {
	// GetByPost returns the approved comments of a post arranged as threads.
	GetByPost(ctx context.Context, postSlug string) ([]model.Comment, error)

	// Create validates in and stores a new comment moderated per policy.
	Create(ctx context.Context, in model.CommentInput) (*model.Comment, error)

	// Approve publishes or hides a comment.
	Approve(ctx context.Context, id int64, approved bool) error
}

type commentService struct {
	store    repository.CommentStore
	policy   CommentPolicy
	validate *validator.Validate
	now      func() time.Time
}

// NewCommentService constructs a new CommentService.
func NewCommentService(store repository.CommentStore, policy CommentPolicy) CommentService {
	return &commentService{
		store:    store,
		policy:   policy,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *commentService) GetByPost(ctx context.Context, postSlug string) ([]model.Comment, error) {
	postSlug = strings.TrimSpace(postSlug)
	if postSlug == "" {
		return nil, apperror.NewValidation("postSlug is required")
	}
	rows, err := s.store.ListByPost(ctx, postSlug, true)
	if err != nil {
		return nil, apperror.NewStoreUnavailable(commentStoreName, err)
	}
	return BuildThreads(rows), nil
}

func (s *commentService) Create(ctx context.Context, in model.CommentInput) (*model.Comment, error) {
	postSlug := strings.TrimSpace(in.PostSlug)
	authorName := strings.TrimSpace(in.AuthorName)
	text := strings.TrimSpace(in.CommentText)
	email := strings.TrimSpace(in.AuthorEmail)

	var missing []string
	if postSlug == "" {
		missing = append(missing, "postSlug")
	}
	if authorName == "" {
		missing = append(missing, "authorName")
	}
	if text == "" {
		missing = append(missing, "commentText")
	}
	if len(missing) > 0 {
		return nil, apperror.NewMissingFields(missing...)
	}

	if utf8.RuneCountInString(authorName) > maxAuthorNameLen {
		return nil, apperror.NewValidation("authorName must be at most %d characters", maxAuthorNameLen)
	}
	if utf8.RuneCountInString(text) > maxCommentTextLen {
		return nil, apperror.NewValidation("commentText must be at most %d characters", maxCommentTextLen)
	}
	if err := s.validate.Var(email, "omitempty,email"); err != nil {
		return nil, apperror.NewValidation("Invalid authorEmail")
	}
	if in.ParentID != nil && *in.ParentID <= 0 {
		return nil, apperror.NewValidation("Invalid parentId")
	}

	now := s.now()
	stored, err := s.store.Create(ctx, &model.Comment{
		PostSlug:    postSlug,
		AuthorName:  authorName,
		AuthorEmail: email,
		CommentText: text,
		ParentID:    in.ParentID,
		IPAddress:   strings.TrimSpace(in.IPAddress),
		IsApproved:  s.policy.AutoApprove,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrParentNotFound) {
			return nil, apperror.NewValidation("Parent comment %d not found for post %q", *in.ParentID, postSlug)
		}
		return nil, apperror.NewStoreUnavailable(commentStoreName, err)
	}
	metrics.CommentsCreated.WithLabelValues(strconv.FormatBool(stored.IsApproved)).Inc()
	if stored.Replies == nil {
		stored.Replies = []model.Comment{}
	}
	return stored, nil
}

func (s *commentService) Approve(ctx context.Context, id int64, approved bool) error {
	if err := s.store.SetApproved(ctx, id, approved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewNotFound("comment", strconv.FormatInt(id, 10))
		}
		return apperror.NewStoreUnavailable(commentStoreName, err)
	}
	return nil
}
