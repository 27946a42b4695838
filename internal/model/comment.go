package model

import "time"

// Comment is a blog comment. Comments form a tree through ParentID;
// Replies is populated only when threads are assembled for reading.
type Comment struct {
	ID          int64     `json:"id"`
	PostSlug    string    `json:"postSlug"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	CommentText string    `json:"commentText"`
	ParentID    *int64    `json:"parentId"`
	IPAddress   string    `json:"-"`
	IsApproved  bool      `json:"isApproved"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Replies     []Comment `json:"replies"`
}

// CommentInput carries caller-supplied fields for comment creation.
type CommentInput struct {
	PostSlug    string `json:"postSlug"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	CommentText string `json:"commentText"`
	ParentID    *int64 `json:"parentId"`
	IPAddress   string `json:"-"`
}
