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

const nomineesCollection = "nominees"

// NomineeRepository stores at most one grant per owner, keyed by _id.
type NomineeRepository struct {
	coll *mongo.Collection
}

func NewNomineeRepository(db *mongo.Database) *NomineeRepository {
	return &NomineeRepository{coll: db.Collection(nomineesCollection)}
}

type mongoNominee struct {
	Owner       string `bson:"_id"`
	Principal   string `bson:"principal"`
	Name        string `bson:"name"`
	ContactInfo string `bson:"contact_info"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (r *NomineeRepository) Get(ctx context.Context, owner string) (*domain.Nominee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mn mongoNominee
	if err := r.coll.FindOne(ctx, bson.M{"_id": owner}).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNomineeNotFound
		}
		return nil, fmt.Errorf("find nominee: %w", err)
	}

	return &domain.Nominee{
		Principal:   mn.Principal,
		Name:        mn.Name,
		ContactInfo: mn.ContactInfo,
	}, nil
}

func (r *NomineeRepository) Upsert(ctx context.Context, owner string, nominee domain.Nominee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoNominee{
		Owner:       owner,
		Principal:   nominee.Principal,
		Name:        nominee.Name,
		ContactInfo: nominee.ContactInfo,
		UpdatedAt:   time.Now().UTC().Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": owner},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert nominee: %w", err)
	}
	return nil
}

// Delete removes the grant. Deleting an absent grant is not an error;
// the post-state is the same either way.
func (r *NomineeRepository) Delete(ctx context.Context, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": owner}); err != nil {
		return fmt.Errorf("delete nominee: %w", err)
	}
	return nil
}
