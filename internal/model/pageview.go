package model

import "time"

// PageView is one entry of the append-only page view log.
type PageView struct {
	ID        int64     `json:"id"`
	Path      string    `json:"path"`
	UserAgent string    `json:"userAgent,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// PageCount is an aggregated view count for one path.
type PageCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}
