package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store exposes generic read access to the record collections. It never
// writes; administrative tooling owns the documents.
type Store struct {
	db *mongo.Database
}

// NewStore instantiates the store over an established database handle.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Page fetches one page of documents together with the full collection
// count, which is independent of limit and skip. Sorted collections are
// served newest first by creation time.
func (s *Store) Page(ctx context.Context, collection string, limit, skip int64, sorted bool) ([]bson.M, int64, error) {
	coll := s.db.Collection(collection)

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", collection, err)
	}

	opts := options.Find().SetLimit(limit).SetSkip(skip)
	if sorted {
		opts = opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0, limit)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode %s page: %w", collection, err)
	}
	return docs, total, nil
}

// FindByID fetches a single document by its hex id. A missing document
// returns nil with no error.
func (s *Store) FindByID(ctx context.Context, collection, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s by id: %w", collection, err)
	}
	return doc, nil
}

// FindByKeys fetches every document whose key field matches one of the
// given values, in a single round trip. The result is keyed by the string
// form of the key value, so callers can stitch references back in place.
func (s *Store) FindByKeys(ctx context.Context, collection, key string, values []interface{}) (map[string]bson.M, error) {
	if len(values) == 0 {
		return map[string]bson.M{}, nil
	}
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{key: bson.M{"$in": values}})
	if err != nil {
		return nil, fmt.Errorf("find %s by %s: %w", collection, key, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s refs: %w", collection, err)
	}

	out := make(map[string]bson.M, len(docs))
	for _, doc := range docs {
		if k, ok := KeyString(doc[key]); ok {
			out[k] = doc
		}
	}
	return out, nil
}

// FindAll fetches every document matching the filter, optionally sorted.
func (s *Store) FindAll(ctx context.Context, collection string, filter bson.M, sort bson.D) ([]bson.M, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts = opts.SetSort(sort)
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return docs, nil
}

// Count returns the number of documents in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// CollectionNames lists the collections the database currently holds.
func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// Unavailable reports whether an error indicates the store itself is
// unreachable rather than a bad query.
func Unavailable(err error) bool {
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

// KeyString renders a reference key value in its canonical string form.
func KeyString(v interface{}) (string, bool) {
	switch k := v.(type) {
	case primitive.ObjectID:
		return k.Hex(), true
	case string:
		return k, true
	default:
		return "", false
	}
}
