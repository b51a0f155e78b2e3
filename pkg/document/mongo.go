package document

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
)

const (
	mongoCollection  = "documents"
	mongoPingTimeout = 5 * time.Second
)

// MongoStore is a MongoDB-backed document store for server deployments.
// Documents live in one collection keyed by document ID, one BSON document
// per mind map.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
//
//	store, err := document.NewMongoStore(ctx, "mongodb://localhost:27017", "sunwheel")
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, mongoPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(mongoCollection),
	}, nil
}

// Get retrieves a document by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.New(apperrors.ErrCodeDocumentNotFound, "document %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "find document %s", id)
	}
	return &d, nil
}

// Put stores a validated document, replacing any existing revision.
func (s *MongoStore) Put(ctx context.Context, d *Document) error {
	if err := d.Validate(); err != nil {
		return err
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": d.ID}, d, options.Replace().SetUpsert(true))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "store document %s", d.ID)
	}
	return nil
}

// Delete removes a document by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "delete document %s", id)
	}
	if res.DeletedCount == 0 {
		return apperrors.New(apperrors.ErrCodeDocumentNotFound, "document %s not found", id)
	}
	return nil
}

// List returns all documents sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]*Document, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "list documents")
	}
	defer cur.Close(ctx)

	var docs []*Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "decode documents")
	}
	return docs, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoPingTimeout)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "disconnect from mongodb")
	}
	return nil
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
