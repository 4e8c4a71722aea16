package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yonder/experience-recommender/internal/core/domain"
	"github.com/yonder/experience-recommender/internal/core/ports"
)

const (
	collectionMembers     = "members"
	collectionExperiences = "experiences"
)

// finder is the read side of *mongo.Collection used by Load.
type finder interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// CatalogRepository is a read-only catalog source over the members and
// experiences collections.
type CatalogRepository struct {
	db          *mongo.Database
	members     finder
	experiences finder
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		db:          db,
		members:     db.Collection(collectionMembers),
		experiences: db.Collection(collectionExperiences),
	}
}

func (r *CatalogRepository) Name() string { return "mongo" }

// Load reads both collections, each sorted by identifier so that snapshot
// order is stable between reloads.
func (r *CatalogRepository) Load(ctx context.Context) (*ports.CatalogDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	members := []domain.User{}
	if err := findAll(ctx, r.members, "member_id", &members); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDataLoad, collectionMembers, err)
	}

	experiences := []domain.Experience{}
	if err := findAll(ctx, r.experiences, "experience_id", &experiences); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDataLoad, collectionExperiences, err)
	}

	return &ports.CatalogDocument{Members: members, Experiences: experiences}, nil
}

func findAll(ctx context.Context, col finder, sortKey string, out any) error {
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: 1}})
	cur, err := col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

// EnsureIndexes creates the unique identifier indexes on both collections.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.db.Collection(collectionMembers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "member_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("members index: %w", err)
	}

	if _, err := r.db.Collection(collectionExperiences).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "experience_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("experiences index: %w", err)
	}
	return nil
}
