package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LayoutRepo handles the persistence of generated layout records.
type LayoutRepo struct {
	collection *mongo.Collection
}

// NewLayoutRepo creates a new LayoutRepo with the given MongoDB client, database name, and collection name.
func NewLayoutRepo(client *mongo.Client, dbName, collectionName string) *LayoutRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &LayoutRepo{
		collection: collection,
	}
}

// Save inserts or replaces a layout record.
func (r *LayoutRepo) Save(ctx context.Context, record *dmn.LayoutRecord) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": record.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("saving layout %s: %w", record.ID, err)
	}
	return nil
}

// ByID retrieves a layout record by its ID.
// Returns dmn.ErrLayoutNotFound if no record matches.
func (r *LayoutRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.LayoutRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var record dmn.LayoutRecord
	if err := r.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrLayoutNotFound
		}
		return nil, fmt.Errorf("finding layout %s: %w", id, err)
	}
	return &record, nil
}

// BySession lists the layouts a session walked through, oldest generation first.
func (r *LayoutRepo) BySession(ctx context.Context, sessionID uuid.UUID) ([]*dmn.LayoutRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"sessionId": sessionID}
	opts := options.Find().SetSort(bson.D{{Key: "generation", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing layouts of session %s: %w", sessionID, err)
	}
	defer cursor.Close(ctx)

	records := make([]*dmn.LayoutRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding layouts of session %s: %w", sessionID, err)
	}
	return records, nil
}
