package kv

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kylycht/coinboard/storage"
)

type mongoKV struct {
	collection *mongo.Collection
}

type document struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func NewMongo(collection *mongo.Collection) storage.KV {
	return &mongoKV{collection: collection}
}

// Get implements storage.KV.
func (m *mongoKV) Get(ctx context.Context, key string) ([]byte, error) {
	doc := document{}

	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return doc.Value, nil
}

// Set implements storage.KV.
func (m *mongoKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{
			"value":     value,
			"updatedAt": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)

	return err
}

// Close implements storage.KV.
func (m *mongoKV) Close(ctx context.Context) error {
	return m.collection.Database().Client().Disconnect(ctx)
}
