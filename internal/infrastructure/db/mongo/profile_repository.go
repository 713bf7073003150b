package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/librisys/library-system/internal/core/domain"
)

const collectionProfiles = "profiles"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

// Profiles are keyed by the owning user's ID rather than their own ObjectID,
// so every lookup and update filters on user_id.
type profileDoc struct {
	UserID      string                 `bson:"user_id"`
	Bio         string                 `bson:"bio,omitempty"`
	ActivityLog []domain.ActivityEntry `bson:"activity_log"`
}

func (d *profileDoc) toDomain() *domain.Profile {
	return &domain.Profile{
		UserID:      d.UserID,
		Bio:         d.Bio,
		ActivityLog: d.ActivityLog,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := profileDoc{
		UserID:      p.UserID,
		Bio:         p.Bio,
		ActivityLog: p.ActivityLog,
	}
	if doc.ActivityLog == nil {
		doc.ActivityLog = []domain.ActivityEntry{}
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) UpdateBio(ctx context.Context, userID, bio string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"bio": bio}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) AppendActivity(ctx context.Context, userID string, entry domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"activity_log": entry}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the profiles collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
