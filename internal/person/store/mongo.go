package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// documentID is the fixed _id under which the whole document is stored; the
// collection holds exactly one record.
const documentID = "persons"

type persistedDocument struct {
	ID        string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoBackend stores the serialized document as a single upserted record, so
// the byte payload stays identical to what the file backend would write.
type MongoBackend struct {
	col *mongo.Collection
}

func NewMongoBackend(col *mongo.Collection) *MongoBackend {
	return &MongoBackend{col: col}
}

func (m *MongoBackend) Load(ctx context.Context) ([]byte, error) {
	var pd persistedDocument
	if err := m.col.FindOne(ctx, bson.M{"_id": documentID}).Decode(&pd); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return pd.Payload, nil
}

func (m *MongoBackend) Save(ctx context.Context, data []byte) error {
	filter := bson.M{"_id": documentID}
	rec := bson.M{"$set": bson.M{"payload": data, "updatedAt": time.Now().UTC()}}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, rec, opts)
	return err
}
