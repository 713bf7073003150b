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

const collectionLoans = "loans"

type LoanRepository struct {
	col *mongo.Collection
}

func NewLoanRepository(db *mongo.Database) *LoanRepository {
	return &LoanRepository{col: db.Collection(collectionLoans)}
}

type loanDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BookID     string             `bson:"book_id"`
	UserID     string             `bson:"user_id"`
	LoanedAt   time.Time          `bson:"loaned_at"`
	DueDate    time.Time          `bson:"due_date"`
	ReturnedAt *time.Time         `bson:"returned_at,omitempty"`
	Status     string             `bson:"status"`
	FineCents  int64              `bson:"fine_cents"`
}

func (d *loanDoc) toDomain() *domain.Loan {
	return &domain.Loan{
		ID:         d.ID.Hex(),
		BookID:     d.BookID,
		UserID:     d.UserID,
		LoanedAt:   d.LoanedAt,
		DueDate:    d.DueDate,
		ReturnedAt: d.ReturnedAt,
		Status:     domain.LoanStatus(d.Status),
		FineCents:  d.FineCents,
	}
}

func (r *LoanRepository) Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := loanDoc{
		BookID:    l.BookID,
		UserID:    l.UserID,
		LoanedAt:  l.LoanedAt,
		DueDate:   l.DueDate,
		Status:    string(l.Status),
		FineCents: l.FineCents,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *l
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*domain.Loan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLoanNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc loanDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.Loan, error) {
	filter := bson.M{"user_id": userID}
	if activeOnly {
		filter["status"] = string(domain.LoanActive)
	}
	return r.list(ctx, filter)
}

func (r *LoanRepository) ListAll(ctx context.Context, activeOnly bool) ([]*domain.Loan, error) {
	filter := bson.M{}
	if activeOnly {
		filter["status"] = string(domain.LoanActive)
	}
	return r.list(ctx, filter)
}

// MarkReturned moves a loan from ACTIVE to RETURNED in one conditional
// update. The filter is the compare half of the compare-and-set: a loan that
// is no longer ACTIVE matches nothing and the loser of a double return gets
// ErrLoanAlreadyReturned.
func (r *LoanRepository) MarkReturned(ctx context.Context, id string, returnedAt time.Time, fineCents int64) (*domain.Loan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLoanNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc loanDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "status": string(domain.LoanActive)},
		bson.M{"$set": bson.M{
			"status":      string(domain.LoanReturned),
			"returned_at": returnedAt,
			"fine_cents":  fineCents,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the loan does not exist or it already transitioned.
			n, cntErr := r.col.CountDocuments(ctx, bson.M{"_id": oid})
			if cntErr != nil {
				return nil, cntErr
			}
			if n == 0 {
				return nil, domain.ErrLoanNotFound
			}
			return nil, domain.ErrLoanAlreadyReturned
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *LoanRepository) HasActiveForBook(ctx context.Context, bookID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"book_id": bookID, "status": string(domain.LoanActive)})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LoanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	return r.list(ctx, bson.M{
		"status":   string(domain.LoanActive),
		"due_date": bson.M{"$lt": asOf},
	})
}

func (r *LoanRepository) list(ctx context.Context, filter bson.M) ([]*domain.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "loaned_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var loans []*domain.Loan
	for cur.Next(ctx) {
		var doc loanDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		loans = append(loans, doc.toDomain())
	}
	return loans, cur.Err()
}

// EnsureIndexes creates necessary indexes on the loans collection.
func (r *LoanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "book_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
