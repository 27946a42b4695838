package content

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"portfolioapi/internal/apperror"
	"portfolioapi/internal/storage"
	storeMocks "portfolioapi/internal/storage/mocks"
)

const sampleDir = "../../content"

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoader_SampleContent(t *testing.T) {
	l := NewLoader(DirSource{Dir: sampleDir})
	ctx := context.Background()

	for _, name := range Names {
		_, err := l.Load(ctx, name)
		require.NoError(t, err, name)
	}

	v, err := l.Load(ctx, NameProjects)
	require.NoError(t, err)
	projects := v.([]StaticProject)
	require.NotEmpty(t, projects)
	assert.NotEmpty(t, projects[0].Technologies)
}

func TestLoader_ValidationErrors(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		body           string
		wantField      string
		wantConstraint string
		wantErr        string
	}{
		{
			name:           "missing required field",
			content:        NameProfile,
			body:           "name: A\ntitle: B\nemail: a@example.com\n",
			wantField:      "bio",
			wantConstraint: "required",
		},
		{
			name:           "malformed email",
			content:        NameProfile,
			body:           "name: A\ntitle: B\nbio: C\nemail: nope\n",
			wantField:      "email",
			wantConstraint: "email",
		},
		{
			name:           "bad url in nested list",
			content:        NameProfile,
			body:           "name: A\ntitle: B\nbio: C\nemail: a@example.com\nsocial:\n  - platform: x\n    url: not-a-url\n",
			wantField:      "social[0].url",
			wantConstraint: "http_url",
		},
		{
			name:           "year out of range",
			content:        NameProjects,
			body:           "projects:\n  - slug: a\n    title: A\n    description: d\n    technologies: [Go]\n    status: completed\n    year: 1900\n",
			wantField:      "projects[0].year",
			wantConstraint: "min=1970",
		},
		{
			name:           "empty technologies",
			content:        NameProjects,
			body:           "projects:\n  - slug: a\n    title: A\n    description: d\n    technologies: []\n    status: completed\n    year: 2020\n",
			wantField:      "projects[0].technologies",
			wantConstraint: "min=1",
		},
		{
			name:           "unknown status",
			content:        NameProjects,
			body:           "projects:\n  - slug: a\n    title: A\n    description: d\n    technologies: [Go]\n    status: done\n    year: 2020\n",
			wantField:      "projects[0].status",
			wantConstraint: "oneof=completed in-progress planned",
		},
		{
			name:           "skill level range",
			content:        NameSkills,
			body:           "skills:\n  - name: Go\n    category: languages\n    level: 9\n",
			wantField:      "skills[0].level",
			wantConstraint: "max=5",
		},
		{
			name:    "unknown field is rejected",
			content: NameSkills,
			body:    "skills:\n  - name: Go\n    category: languages\n    level: 3\n    stars: 5\n",
			wantErr: "field stars not found",
		},
		{
			name:    "wrong type",
			content: NameTimeline,
			body:    "timeline:\n  - year: soon\n    title: t\n    organization: o\n    kind: work\n",
			wantErr: "cannot unmarshal",
		},
		{
			name:    "empty file",
			content: NameCertifications,
			body:    "",
			wantErr: "file is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName(tt.content), tt.body)

			_, err := NewLoader(DirSource{Dir: dir}).Load(context.Background(), tt.content)
			require.Error(t, err)

			var cve *apperror.ContentValidationError
			require.ErrorAs(t, err, &cve)
			assert.Equal(t, FileName(tt.content), cve.Source)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.Equal(t, tt.wantField, cve.Field)
			assert.Equal(t, tt.wantConstraint, cve.Constraint)
		})
	}
}

func TestLoader_MissingFileAndUnknownName(t *testing.T) {
	l := NewLoader(DirSource{Dir: t.TempDir()})

	_, err := l.Load(context.Background(), NameProfile)
	var cve *apperror.ContentValidationError
	require.ErrorAs(t, err, &cve)
	assert.ErrorIs(t, err, ErrSourceNotFound)

	_, err = l.Load(context.Background(), "secrets")
	assert.ErrorIs(t, err, ErrUnknownContent)
}

func TestLoader_RoundTrip(t *testing.T) {
	ctx := context.Background()
	first := NewLoader(DirSource{Dir: sampleDir})
	dir := t.TempDir()

	wrap := map[string]func(any) any{
		NameProfile:        func(v any) any { return v },
		NameProjects:       func(v any) any { return projectsFile{Projects: v.([]StaticProject)} },
		NameTimeline:       func(v any) any { return timelineFile{Timeline: v.([]TimelineEntry)} },
		NameSkills:         func(v any) any { return skillsFile{Skills: v.([]Skill)} },
		NameCertifications: func(v any) any { return certificationsFile{Certifications: v.([]Certification)} },
	}

	loaded := make(map[string]any, len(Names))
	for _, name := range Names {
		v, err := first.Load(ctx, name)
		require.NoError(t, err)
		loaded[name] = v

		out, err := yaml.Marshal(wrap[name](v))
		require.NoError(t, err)
		writeFile(t, dir, FileName(name), string(out))
	}

	second := NewLoader(DirSource{Dir: dir})
	for _, name := range Names {
		v, err := second.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, loaded[name], v, name)
	}
}

func TestObjectSource(t *testing.T) {
	ctx := context.Background()
	m := new(storeMocks.MockStorage)
	m.On("Get", ctx, "skills.yaml").Return(
		io.NopCloser(strings.NewReader("skills:\n  - name: Go\n    category: languages\n    level: 4\n")),
		storage.ObjectInfo{Key: "content/skills.yaml"}, nil)
	m.On("Get", ctx, "profile.yaml").Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)

	l := NewLoader(ObjectSource{Store: m})
	v, err := l.Load(ctx, NameSkills)
	require.NoError(t, err)
	assert.Equal(t, []Skill{{Name: "Go", Category: "languages", Level: 4}}, v)

	_, err = l.Load(ctx, NameProfile)
	assert.ErrorIs(t, err, ErrSourceNotFound)
	m.AssertExpectations(t)
}

type countingSource struct {
	Source
	opens atomic.Int32
}

func (c *countingSource) Open(ctx context.Context, file string) (io.ReadCloser, error) {
	c.opens.Add(1)
	return c.Source.Open(ctx, file)
}

func TestCache_MemoizesAndIsConcurrencySafe(t *testing.T) {
	src := &countingSource{Source: DirSource{Dir: sampleDir}}
	c := NewCache(NewLoader(src))
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*Profile, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := c.Profile(ctx)
			assert.NoError(t, err)
			results[i] = p
		}(i)
	}
	wg.Wait()

	for _, p := range results {
		assert.Same(t, results[0], p, "every caller sees the stored value")
	}

	before := src.opens.Load()
	_, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, src.opens.Load(), "no re-read after first load")
}

func TestCache_Preload(t *testing.T) {
	c := NewCache(NewLoader(DirSource{Dir: sampleDir}))
	require.NoError(t, c.Preload(context.Background()))

	ctx := context.Background()
	skills, err := c.Skills(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, skills)
	projects, err := c.Projects(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, projects)
	timeline, err := c.Timeline(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, timeline)
	certs, err := c.Certifications(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, certs)

	// A typed accessor never hands back another name's payload.
	_, err = get[[]Skill](ctx, c, NameProjects)
	assert.ErrorContains(t, err, "content projects has type")

	broken := t.TempDir()
	writeFile(t, broken, "profile.yaml", "name: only\n")
	err = NewCache(NewLoader(DirSource{Dir: broken})).Preload(context.Background())
	assert.Error(t, err)
}
