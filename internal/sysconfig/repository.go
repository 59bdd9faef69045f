package sysconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "system_configs"

type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Upsert(ctx context.Context, key, value string, at time.Time) (*Entry, error)
	List(ctx context.Context) ([]*Entry, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection(collectionName)}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create system config indexes failed: %w", err)
	}
	return nil
}

type entryDocument struct {
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d entryDocument) toEntry() *Entry {
	return &Entry{Key: d.Key, Value: d.Value, UpdatedAt: d.UpdatedAt.UTC()}
}

func (r *mongoRepository) Get(ctx context.Context, key string) (*Entry, error) {
	var doc entryDocument
	if err := r.col.FindOne(ctx, bson.M{"key": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find system config failed: %w", err)
	}
	return doc.toEntry(), nil
}

func (r *mongoRepository) Upsert(ctx context.Context, key, value string, at time.Time) (*Entry, error) {
	update := bson.M{"$set": bson.M{"value": value, "updated_at": at}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc entryDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"key": key}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("upsert system config failed: %w", err)
	}
	return doc.toEntry(), nil
}

func (r *mongoRepository) List(ctx context.Context) ([]*Entry, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find system configs failed: %w", err)
	}
	defer cur.Close(ctx)

	var docs []entryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode system configs failed: %w", err)
	}
	entries := make([]*Entry, len(docs))
	for i, d := range docs {
		entries[i] = d.toEntry()
	}
	return entries, nil
}
