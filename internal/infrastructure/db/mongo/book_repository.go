package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/librisys/library-system/internal/core/domain"
	"github.com/librisys/library-system/internal/core/ports"
)

const collectionBooks = "books"

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

type bookDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author"`
	Category  string             `bson:"category"`
	AddedBy   string             `bson:"added_by"`
	Available bool               `bson:"available"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *bookDoc) toDomain() *domain.Book {
	return &domain.Book{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Author:    d.Author,
		Category:  d.Category,
		AddedBy:   d.AddedBy,
		Available: d.Available,
		CreatedAt: d.CreatedAt,
	}
}

func (r *BookRepository) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bookDoc{
		Title:     b.Title,
		Author:    b.Author,
		Category:  b.Category,
		AddedBy:   b.AddedBy,
		Available: b.Available,
		CreatedAt: b.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bookDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *BookRepository) List(ctx context.Context, filter ports.ListBooksFilter) ([]*domain.Book, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(filter.Category) + "$", Options: "i"}
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"author": pattern},
		}
	}
	if filter.AvailableOnly {
		query["available"] = true
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
		if filter.Page > 1 {
			opts.SetSkip(int64((filter.Page - 1) * filter.Limit))
		}
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var books []*domain.Book
	for cur.Next(ctx) {
		var doc bookDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		books = append(books, doc.toDomain())
	}
	return books, total, cur.Err()
}

func (r *BookRepository) Update(ctx context.Context, id string, upd ports.BookUpdate) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bookDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// MarkUnavailable claims the availability flag with a single conditional
// update: the filter matches only while available is still true, so exactly
// one of two interleaved borrows wins.
func (r *BookRepository) MarkUnavailable(ctx context.Context, id string) error {
	return r.setAvailability(ctx, id, false)
}

// MarkAvailable releases the flag on loan return.
func (r *BookRepository) MarkAvailable(ctx context.Context, id string) error {
	return r.setAvailability(ctx, id, true)
}

func (r *BookRepository) setAvailability(ctx context.Context, id string, available bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": oid, "available": !available},
		bson.M{"$set": bson.M{"available": available}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a lost race from a missing book.
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrBookNotFound
		}
		if !available {
			return domain.ErrBookUnavailable
		}
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the books collection.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "available", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
