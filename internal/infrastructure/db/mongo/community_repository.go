package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/byteverse/platform-api/internal/core/domain"
)

const collectionMembers = "community_members"

type CommunityRepository struct {
	col *mongo.Collection
}

func NewCommunityRepository(db *mongo.Database) *CommunityRepository {
	return &CommunityRepository{col: db.Collection(collectionMembers)}
}

func (r *CommunityRepository) Create(ctx context.Context, member *domain.CommunityMember) (*domain.CommunityMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if member.ID == "" {
		member.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrMemberExists
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return member, nil
}

func (r *CommunityRepository) FindByEmail(ctx context.Context, email string) (*domain.CommunityMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.CommunityMember
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return &m, nil
}

func (r *CommunityRepository) ListActive(ctx context.Context) ([]domain.CommunityMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	var members []domain.CommunityMember
	if err := cur.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return members, nil
}

func (r *CommunityRepository) Update(ctx context.Context, member *domain.CommunityMember) (*domain.CommunityMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": member.ID}, member)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}

// EnsureIndexes enforces unique member emails.
func (r *CommunityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
