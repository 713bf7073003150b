package cmd

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	mongorepo "github.com/librisys/library-system/internal/infrastructure/db/mongo"
)

// ensureIndexes creates the indexes every collection relies on. Index
// creation is idempotent, so this runs on every startup.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}

	for _, r := range []indexer{
		mongorepo.NewBookRepository(db),
		mongorepo.NewLoanRepository(db),
		mongorepo.NewReservationRepository(db),
		mongorepo.NewReviewRepository(db),
		mongorepo.NewUserRepository(db),
		mongorepo.NewProfileRepository(db),
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}
