// Package content loads the static site content (profile, projects, timeline,
// skills, certifications) from YAML files, validates it against a fixed
// schema and memoizes it for the life of the process.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"portfolioapi/internal/apperror"
)

// Names of the content files, without extension.
const (
	NameProfile        = "profile"
	NameProjects       = "projects"
	NameTimeline       = "timeline"
	NameSkills         = "skills"
	NameCertifications = "certifications"
)

// Names lists every known content name in load order.
var Names = []string{NameProfile, NameProjects, NameTimeline, NameSkills, NameCertifications}

// ErrUnknownContent is returned for a name outside Names.
var ErrUnknownContent = errors.New("unknown content")

// FileName returns the file a content name is read from.
func FileName(name string) string { return name + ".yaml" }

// Loader reads and validates content files from a Source.
type Loader struct {
	src      Source
	validate *validator.Validate
}

// NewLoader returns a Loader reading from src.
func NewLoader(src Source) *Loader {
	v := validator.New()
	// Report fields by their YAML key rather than the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Loader{src: src, validate: v}
}

// Load reads, decodes and validates the named content. The concrete type of
// the result is *Profile, []StaticProject, []TimelineEntry, []Skill or
// []Certification. Any schema violation yields a *apperror.ContentValidationError.
func (l *Loader) Load(ctx context.Context, name string) (any, error) {
	switch name {
	case NameProfile:
		var p Profile
		if err := l.decode(ctx, name, &p); err != nil {
			return nil, err
		}
		return &p, nil
	case NameProjects:
		var f projectsFile
		if err := l.decode(ctx, name, &f); err != nil {
			return nil, err
		}
		return nonNil(f.Projects), nil
	case NameTimeline:
		var f timelineFile
		if err := l.decode(ctx, name, &f); err != nil {
			return nil, err
		}
		return nonNil(f.Timeline), nil
	case NameSkills:
		var f skillsFile
		if err := l.decode(ctx, name, &f); err != nil {
			return nil, err
		}
		return nonNil(f.Skills), nil
	case NameCertifications:
		var f certificationsFile
		if err := l.decode(ctx, name, &f); err != nil {
			return nil, err
		}
		return nonNil(f.Certifications), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContent, name)
}

func (l *Loader) decode(ctx context.Context, name string, out any) error {
	file := FileName(name)
	rc, err := l.src.Open(ctx, file)
	if err != nil {
		return &apperror.ContentValidationError{Source: file, Err: err}
	}
	defer rc.Close()

	dec := yaml.NewDecoder(rc)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("file is empty")
		}
		return &apperror.ContentValidationError{Source: file, Err: err}
	}

	if err := l.validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &apperror.ContentValidationError{
				Source:     file,
				Field:      fieldPath(fe.Namespace()),
				Constraint: constraint(fe),
				Err:        err,
			}
		}
		return &apperror.ContentValidationError{Source: file, Err: err}
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
