package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"gamey/internal/domain/user"
	errs "gamey/internal/errors"
)

const usersCollection = "users"

type MongoUserStorage struct {
	db  *mongo.Database
	log *zap.SugaredLogger
}

func NewMongoUserStorage(db *mongo.Database, log *zap.SugaredLogger) *MongoUserStorage {
	return &MongoUserStorage{db: db, log: log}
}

// EnsureIndexes makes usernames unique so concurrent sign-ups cannot both win.
func (m *MongoUserStorage) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	return nil
}

func (m *MongoUserStorage) CreateUser(ctx context.Context, u user.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.db.Collection(usersCollection)

	err := collection.FindOne(ctx, bson.M{"username": u.Username}).Err()
	if err == nil {
		return fmt.Errorf("%w: %s", errs.ErrUserExists, u.Username)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		m.log.Errorf("failed to look up user %s: %v", u.Username, err)
		return errs.ErrInternal
	}

	if _, err = collection.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", errs.ErrUserExists, u.Username)
		}
		m.log.Errorf("failed to insert user %s: %v", u.Username, err)
		return errs.ErrInternal
	}
	return nil
}
