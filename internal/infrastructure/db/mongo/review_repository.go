package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/librisys/library-system/internal/core/domain"
)

const collectionReviews = "reviews"

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	BookID    string             `bson:"book_id"`
	UserID    string             `bson:"user_id"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *reviewDoc) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID.Hex(),
		BookID:    d.BookID,
		UserID:    d.UserID,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reviewDoc{
		BookID:    rev.BookID,
		UserID:    rev.UserID,
		Rating:    rev.Rating,
		Comment:   rev.Comment,
		CreatedAt: rev.CreatedAt,
	}

	ins, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *rev
	created.ID = ins.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reviewDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) ListByBook(ctx context.Context, bookID string) ([]*domain.Review, error) {
	return r.list(ctx, bson.M{"book_id": bookID})
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) list(ctx context.Context, filter bson.M) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reviews []*domain.Review
	for cur.Next(ctx) {
		var doc reviewDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, doc.toDomain())
	}
	return reviews, cur.Err()
}

// EnsureIndexes creates necessary indexes on the reviews collection.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "book_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
