package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/byteverse/platform-api/internal/core/domain"
	"github.com/byteverse/platform-api/internal/core/ports"
)

const collectionProjects = "projects"
const collectionPendingProjects = "pending_projects"

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if project.ID == "" {
		project.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return project, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepository) FindByAuthorName(ctx context.Context, name string, limit int) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{"contributors": name}, opts)
	if err != nil {
		return nil, fmt.Errorf("find projects by author: %w", err)
	}
	var projects []domain.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var projects []domain.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

type PendingProjectRepository struct {
	col *mongo.Collection
}

func NewPendingProjectRepository(db *mongo.Database) *PendingProjectRepository {
	return &PendingProjectRepository{col: db.Collection(collectionPendingProjects)}
}

func (r *PendingProjectRepository) Create(ctx context.Context, p *domain.PendingProject) (*domain.PendingProject, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert pending project: %w", err)
	}
	return p, nil
}

func (r *PendingProjectRepository) FindByID(ctx context.Context, id string) (*domain.PendingProject, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.PendingProject
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find pending project: %w", err)
	}
	return &p, nil
}

func (r *PendingProjectRepository) ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.PendingProject, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"status": string(status)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list pending projects: %w", err)
	}
	var projects []domain.PendingProject
	if err := cur.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode pending projects: %w", err)
	}
	return projects, nil
}

func (r *PendingProjectRepository) Update(ctx context.Context, p *domain.PendingProject) (*domain.PendingProject, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, fmt.Errorf("update pending project: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSubmissionNotFound
	}
	return p, nil
}

func (r *PendingProjectRepository) CountByStatus(ctx context.Context) (ports.SubmissionCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var counts ports.SubmissionCounts
	var err error
	if counts.Pending, err = r.col.CountDocuments(ctx, bson.M{"status": string(domain.SubmissionPending)}); err != nil {
		return counts, fmt.Errorf("count pending: %w", err)
	}
	if counts.Approved, err = r.col.CountDocuments(ctx, bson.M{"status": string(domain.SubmissionApproved)}); err != nil {
		return counts, fmt.Errorf("count approved: %w", err)
	}
	if counts.Rejected, err = r.col.CountDocuments(ctx, bson.M{"status": string(domain.SubmissionRejected)}); err != nil {
		return counts, fmt.Errorf("count rejected: %w", err)
	}
	return counts, nil
}
