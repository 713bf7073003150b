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

const collectionReservations = "reservations"

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

type reservationDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BookID     string             `bson:"book_id"`
	UserID     string             `bson:"user_id"`
	ReservedAt time.Time          `bson:"reserved_at"`
	ExpiresAt  time.Time          `bson:"expires_at"`
	Status     string             `bson:"status"`
}

func (d *reservationDoc) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:         d.ID.Hex(),
		BookID:     d.BookID,
		UserID:     d.UserID,
		ReservedAt: d.ReservedAt,
		ExpiresAt:  d.ExpiresAt,
		Status:     domain.ReservationStatus(d.Status),
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reservationDoc{
		BookID:     res.BookID,
		UserID:     res.UserID,
		ReservedAt: res.ReservedAt,
		ExpiresAt:  res.ExpiresAt,
		Status:     string(res.Status),
	}

	ins, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *res
	created.ID = ins.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reservationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *ReservationRepository) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	return r.list(ctx, bson.M{})
}

// Cancel moves a reservation from ACTIVE to CANCELLED with the same
// conditional-update shape as the loan return.
func (r *ReservationRepository) Cancel(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReservationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": oid, "status": string(domain.ReservationActive)},
		bson.M{"$set": bson.M{"status": string(domain.ReservationCancelled)}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, cntErr := r.col.CountDocuments(ctx, bson.M{"_id": oid})
		if cntErr != nil {
			return cntErr
		}
		if n == 0 {
			return domain.ErrReservationNotFound
		}
		return domain.ErrReservationNotActive
	}
	return nil
}

func (r *ReservationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "reserved_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reservations []*domain.Reservation
	for cur.Next(ctx) {
		var doc reservationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		reservations = append(reservations, doc.toDomain())
	}
	return reservations, cur.Err()
}

// EnsureIndexes creates necessary indexes on the reservations collection.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "book_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
