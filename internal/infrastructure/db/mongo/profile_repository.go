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

const profilesCollection = "profiles"

// ProfileRepository stores one profile document per owner principal,
// keyed by _id, so "never saved" and "saved empty" stay distinguishable.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

type mongoProfile struct {
	Owner            string   `bson:"_id"`
	PermanentAddress string   `bson:"permanent_address"`
	TemporaryAddress string   `bson:"temporary_address"`
	ContactNumbers   []string `bson:"contact_numbers"`
	AadhaarNumber    string   `bson:"aadhaar_number,omitempty"`
	PANNumber        string   `bson:"pan_number,omitempty"`
	UpdatedAt        int64    `bson:"updated_at"`
}

func (r *ProfileRepository) Get(ctx context.Context, owner string) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"_id": owner}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	return &domain.UserProfile{
		PermanentAddress: mp.PermanentAddress,
		TemporaryAddress: mp.TemporaryAddress,
		ContactNumbers:   mp.ContactNumbers,
		AadhaarNumber:    mp.AadhaarNumber,
		PANNumber:        mp.PANNumber,
	}, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, owner string, profile domain.UserProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProfile{
		Owner:            owner,
		PermanentAddress: profile.PermanentAddress,
		TemporaryAddress: profile.TemporaryAddress,
		ContactNumbers:   profile.ContactNumbers,
		AadhaarNumber:    profile.AadhaarNumber,
		PANNumber:        profile.PANNumber,
		UpdatedAt:        time.Now().UTC().Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": owner},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
