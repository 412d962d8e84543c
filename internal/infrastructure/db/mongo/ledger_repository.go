package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

const ledgersCollection = "ledgers"

// LedgerRepository stores each owner's ledger as a single document
// holding the ordered investment array. Reading gives one consistent
// snapshot; replacing the array is one atomic write, which is what keeps
// indices dense and a reconciliation merge all-or-nothing.
type LedgerRepository struct {
	coll *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{coll: db.Collection(ledgersCollection)}
}

type mongoLedger struct {
	Owner       string              `bson:"_id"`
	Investments []domain.Investment `bson:"investments"`
	UpdatedAt   int64               `bson:"updated_at"`
}

// List returns the owner's ordered sequence. A missing document is an
// empty ledger, not an error.
func (r *LedgerRepository) List(ctx context.Context, owner string) ([]domain.Investment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLedger
	if err := r.coll.FindOne(ctx, bson.M{"_id": owner}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []domain.Investment{}, nil
		}
		return nil, fmt.Errorf("find ledger: %w", err)
	}
	if ml.Investments == nil {
		return []domain.Investment{}, nil
	}
	return ml.Investments, nil
}

// Replace overwrites the owner's whole sequence in one write.
func (r *LedgerRepository) Replace(ctx context.Context, owner string, investments []domain.Investment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLedger{
		Owner:       owner,
		Investments: investments,
		UpdatedAt:   time.Now().UTC().Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": owner},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
