package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"
)

// projectDocument is the stored shape of a project. Unknown fields in stored
// documents are ignored on decode; documents that decode but fail validation
// are skipped by listings.
type projectDocument struct {
	ID           string    `bson:"_id"`
	Slug         string    `bson:"slug"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	Technologies []string  `bson:"technologies"`
	Status       string    `bson:"status"`
	Year         int       `bson:"year"`
	Featured     bool      `bson:"featured"`
	GithubURL    string    `bson:"githubUrl,omitempty"`
	LiveURL      string    `bson:"liveUrl,omitempty"`
	ViewCount    int64     `bson:"viewCount"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func fromModel(p *model.Project) projectDocument {
	return projectDocument{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: p.Technologies,
		Status:       string(p.Status),
		Year:         p.Year,
		Featured:     p.Featured,
		GithubURL:    p.GithubURL,
		LiveURL:      p.LiveURL,
		ViewCount:    p.ViewCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d projectDocument) toModel() (model.Project, error) {
	status := model.ProjectStatus(d.Status)
	switch {
	case d.ID == "" || d.Slug == "":
		return model.Project{}, fmt.Errorf("project document missing id or slug")
	case d.Title == "":
		return model.Project{}, fmt.Errorf("project %s: missing title", d.Slug)
	case !status.Valid():
		return model.Project{}, fmt.Errorf("project %s: unknown status %q", d.Slug, d.Status)
	}
	techs := d.Technologies
	if techs == nil {
		techs = []string{}
	}
	viewCount := d.ViewCount
	if viewCount < 0 {
		viewCount = 0
	}
	return model.Project{
		ID:           d.ID,
		Slug:         d.Slug,
		Title:        d.Title,
		Description:  d.Description,
		Technologies: techs,
		Status:       status,
		Year:         d.Year,
		Featured:     d.Featured,
		GithubURL:    d.GithubURL,
		LiveURL:      d.LiveURL,
		ViewCount:    viewCount,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}, nil
}

// ProjectMongo implements repository.ProjectStore on a MongoDB collection.
type ProjectMongo struct {
	col *mongo.Collection
	log *zap.Logger
}

// NewProjectMongo creates a project repository over col.
func NewProjectMongo(col *mongo.Collection, log *zap.Logger) *ProjectMongo {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectMongo{col: col, log: log}
}

var _ repository.ProjectStore = (*ProjectMongo)(nil)

// EnsureIndexes creates the unique slug index and the listing indexes.
func (m *ProjectMongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create project indexes: %w", err)
	}
	return nil
}

// List returns projects in creation order. The featured filter runs server side.
func (m *ProjectMongo) List(ctx context.Context, filter repository.ProjectFilter) ([]model.Project, error) {
	query := bson.M{}
	if filter.FeaturedOnly {
		query["featured"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := m.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]model.Project, 0)
	for cur.Next(ctx) {
		var d projectDocument
		if err := cur.Decode(&d); err != nil {
			m.log.Warn("skipping undecodable project document", zap.Error(err))
			continue
		}
		p, err := d.toModel()
		if err != nil {
			m.log.Warn("skipping invalid project document", zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

// Create inserts a new project document.
func (m *ProjectMongo) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	if _, err := m.col.InsertOne(ctx, fromModel(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}
	out := *p
	return &out, nil
}

// IncrementViews uses a single findAndModify with $inc, so concurrent
// increments are applied by the server without lost updates.
func (m *ProjectMongo) IncrementViews(ctx context.Context, slug string) (*model.Project, error) {
	update := bson.M{
		"$inc": bson.M{"viewCount": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	return m.findOneAndUpdate(ctx, slug, update)
}

// Update applies the non-nil fields of patch.
func (m *ProjectMongo) Update(ctx context.Context, slug string, patch model.ProjectPatch) (*model.Project, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	return m.findOneAndUpdate(ctx, slug, bson.M{"$set": set})
}

func (m *ProjectMongo) findOneAndUpdate(ctx context.Context, slug string, update bson.M) (*model.Project, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d projectDocument
	err := m.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update project %s: %w", slug, err)
	}
	p, err := d.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Ping checks connectivity to the primary.
func (m *ProjectMongo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, readpref.Primary())
}
