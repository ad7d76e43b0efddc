package services

import (
	"context"
	"fmt"
	"time"

	"checkin/errors"
	"checkin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type checkinDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Date         string             `bson:"date"`
	ClientName   string             `bson:"clientName"`
	Phone        string             `bson:"phone"`
	VehicleModel string             `bson:"vehicleModel"`
	Plate        string             `bson:"plate"`
	Service      string             `bson:"service"`
	PhotoURLs    []string           `bson:"photoUrls"`
	Signature    string             `bson:"signature,omitempty"`
}

func toDocument(r models.CheckinRecord) checkinDocument {
	return checkinDocument{
		Date:         r.Date,
		ClientName:   r.ClientName,
		Phone:        r.Phone,
		VehicleModel: r.VehicleModel,
		Plate:        r.Plate,
		Service:      r.Service,
		PhotoURLs:    append([]string{}, r.PhotoURLs...),
		Signature:    r.Signature,
	}
}

func (d checkinDocument) toRecord() models.CheckinRecord {
	r := models.CheckinRecord{
		ID:           d.ID.Hex(),
		Date:         d.Date,
		ClientName:   d.ClientName,
		Phone:        d.Phone,
		VehicleModel: d.VehicleModel,
		Plate:        d.Plate,
		Service:      d.Service,
		PhotoURLs:    d.PhotoURLs,
		Signature:    d.Signature,
	}
	r.Normalize()
	return r
}

// MongoStore stores check-ins in a MongoDB collection
type MongoStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

func NewMongoStore(db *mongo.Database, timeout time.Duration) *MongoStore {
	return &MongoStore{
		coll:    db.Collection(CollectionName),
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *MongoStore) Create(ctx context.Context, record models.CheckinRecord) (*models.CheckinRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stampDate(&record, s.now)
	doc := toDocument(record)
	doc.ID = primitive.NewObjectID()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, errors.StoreWriteFailed(err)
	}
	out := doc.toRecord()
	return &out, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.CheckinRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, errors.StoreReadFailed(err)
	}
	defer cursor.Close(ctx)

	var docs []checkinDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.StoreReadFailed(err)
	}

	out := make([]models.CheckinRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRecord())
	}
	return out, nil
}

// Delete removes one document by ObjectID. Zero deleted documents is success;
// an id that is not ObjectID hex is a delete failure.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.StoreDeleteFailed(fmt.Errorf("%w %q: %v", errors.ErrInvalidID, id, err))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.StoreDeleteFailed(err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}
