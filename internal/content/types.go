package content

// Profile is the site owner's profile (profile.yaml).
type Profile struct {
	Name     string       `yaml:"name" json:"name" validate:"required"`
	Title    string       `yaml:"title" json:"title" validate:"required"`
	Bio      string       `yaml:"bio" json:"bio" validate:"required"`
	Email    string       `yaml:"email" json:"email" validate:"required,email"`
	Location string       `yaml:"location,omitempty" json:"location,omitempty"`
	Website  string       `yaml:"website,omitempty" json:"website,omitempty" validate:"omitempty,http_url"`
	Avatar   string       `yaml:"avatar,omitempty" json:"avatar,omitempty"`
	Social   []SocialLink `yaml:"social,omitempty" json:"social,omitempty" validate:"dive"`
}

type SocialLink struct {
	Platform string `yaml:"platform" json:"platform" validate:"required"`
	URL      string `yaml:"url" json:"url" validate:"required,http_url"`
}

// StaticProject is a hand-curated project entry (projects.yaml).
type StaticProject struct {
	Slug         string   `yaml:"slug" json:"slug" validate:"required"`
	Title        string   `yaml:"title" json:"title" validate:"required"`
	Description  string   `yaml:"description" json:"description" validate:"required"`
	Technologies []string `yaml:"technologies" json:"technologies" validate:"required,min=1,dive,required"`
	Status       string   `yaml:"status" json:"status" validate:"required,oneof=completed in-progress planned"`
	Year         int      `yaml:"year" json:"year" validate:"required,min=1970,max=2100"`
	Featured     bool     `yaml:"featured,omitempty" json:"featured"`
	GithubURL    string   `yaml:"githubUrl,omitempty" json:"githubUrl,omitempty" validate:"omitempty,http_url"`
	LiveURL      string   `yaml:"liveUrl,omitempty" json:"liveUrl,omitempty" validate:"omitempty,http_url"`
	Image        string   `yaml:"image,omitempty" json:"image,omitempty"`
}

// TimelineEntry is one career or education milestone (timeline.yaml).
type TimelineEntry struct {
	Year         int    `yaml:"year" json:"year" validate:"required,min=1970,max=2100"`
	Title        string `yaml:"title" json:"title" validate:"required"`
	Organization string `yaml:"organization" json:"organization" validate:"required"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
	Kind         string `yaml:"kind" json:"kind" validate:"required,oneof=work education achievement"`
}

// Skill is one entry of skills.yaml. Level runs from 1 (basic) to 5 (expert).
type Skill struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	Category string `yaml:"category" json:"category" validate:"required"`
	Level    int    `yaml:"level" json:"level" validate:"required,min=1,max=5"`
}

// Certification is one entry of certifications.yaml.
type Certification struct {
	Name         string `yaml:"name" json:"name" validate:"required"`
	Issuer       string `yaml:"issuer" json:"issuer" validate:"required"`
	Date         string `yaml:"date" json:"date" validate:"required,datetime=2006-01"`
	URL          string `yaml:"url,omitempty" json:"url,omitempty" validate:"omitempty,http_url"`
	CredentialID string `yaml:"credentialId,omitempty" json:"credentialId,omitempty"`
}

// Files holding lists carry the list under a single top-level key.
type projectsFile struct {
	Projects []StaticProject `yaml:"projects" validate:"required,dive"`
}

type timelineFile struct {
	Timeline []TimelineEntry `yaml:"timeline" validate:"required,dive"`
}

type skillsFile struct {
	Skills []Skill `yaml:"skills" validate:"required,dive"`
}

type certificationsFile struct {
	Certifications []Certification `yaml:"certifications" validate:"dive"`
}
