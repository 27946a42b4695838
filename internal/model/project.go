package model

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	StatusCompleted  ProjectStatus = "completed"
	StatusInProgress ProjectStatus = "in-progress"
	StatusPlanned    ProjectStatus = "planned"
)

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusPlanned:
		return true
	}
	return false
}

// Project is a dynamic project record owned by the project store.
// ViewCount only ever grows, through the increment operation.
type Project struct {
	ID           string        `json:"id"`
	Slug         string        `json:"slug"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Technologies []string      `json:"technologies"`
	Status       ProjectStatus `json:"status"`
	Year         int           `json:"year"`
	Featured     bool          `json:"featured"`
	GithubURL    string        `json:"githubUrl,omitempty"`
	LiveURL      string        `json:"liveUrl,omitempty"`
	ViewCount    int64         `json:"viewCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// ProjectInput carries caller-supplied fields for project creation.
// Pointers distinguish "absent" from zero values.
type ProjectInput struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Status       string   `json:"status"`
	Year         *int     `json:"year"`
	Featured     bool     `json:"featured"`
	GithubURL    string   `json:"githubUrl"`
	LiveURL      string   `json:"liveUrl"`
}

// ProjectPatch is a partial update. Nil fields are left unchanged.
type ProjectPatch struct {
	Featured *bool
}
