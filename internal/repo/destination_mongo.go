package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

// DestinationCollection is the MongoDB collection holding destinations.
const DestinationCollection = "destinations"

// mongoDestinationRepo is the MongoDB implementation of DestinationRepo.
type mongoDestinationRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoDestinationRepo constructs a DestinationRepo backed by the
// destinations collection of database.
func NewMongoDestinationRepo(database *mongo.Database) DestinationRepo {
	return &mongoDestinationRepo{
		coll: database.Collection(DestinationCollection),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureDestinationIndexes creates the secondary indexes used by List.
// It is idempotent.
func EnsureDestinationIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(DestinationCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "budgetLevel", Value: 1}}},
		{Keys: bson.D{{Key: "climate", Value: 1}}},
		{Keys: bson.D{{Key: "activities", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("repo.EnsureDestinationIndexes: %w", err)
	}
	return nil
}

// destinationDoc is the stored shape. Field names follow the JSON API.
type destinationDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Location        locationDoc        `bson:"location"`
	Description     string             `bson:"description"`
	Images          []string           `bson:"images"`
	Climate         string             `bson:"climate"`
	BudgetLevel     string             `bson:"budgetLevel"`
	Activities      []string           `bson:"activities"`
	BestTimeToVisit []string           `bson:"bestTimeToVisit"`
	Accommodations  []accommodationDoc `bson:"accommodations"`
	Ratings         ratingsDoc         `bson:"ratings"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

type accommodationDoc struct {
	Name       string `bson:"name"`
	Type       string `bson:"type,omitempty"`
	PriceRange string `bson:"priceRange,omitempty"`
	Link       string `bson:"link,omitempty"`
}

type locationDoc struct {
	Country     string          `bson:"country"`
	City        string          `bson:"city,omitempty"`
	Coordinates *coordinatesDoc `bson:"coordinates,omitempty"`
}

type coordinatesDoc struct {
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
}

type ratingsDoc struct {
	Average float64 `bson:"average"`
	Count   int     `bson:"count"`
}

func (r *mongoDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	doc := toDoc(d)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = r.now()
	doc.UpdatedAt = doc.CreatedAt

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Destination{}, fmt.Errorf("repo.MongoDestinationRepo.Create: %w", err)
	}
	return fromDoc(doc), nil
}

func (r *mongoDestinationRepo) GetByID(ctx context.Context, id string) (domain.Destination, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.MongoDestinationRepo.GetByID: %w", domain.ErrNotFound)
	}

	var doc destinationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domain.Destination{}, fmt.Errorf("repo.MongoDestinationRepo.GetByID: %w", mapMongoErr(err))
	}
	return fromDoc(doc), nil
}

func (r *mongoDestinationRepo) List(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, destinationFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("repo.MongoDestinationRepo.List: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []destinationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("repo.MongoDestinationRepo.List: decode: %w", err)
	}

	destinations := make([]domain.Destination, 0, len(docs))
	for _, doc := range docs {
		destinations = append(destinations, fromDoc(doc))
	}
	return destinations, nil
}

func (r *mongoDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	oid, err := primitive.ObjectIDFromHex(d.ID)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.MongoDestinationRepo.Update: %w", domain.ErrNotFound)
	}

	doc := toDoc(d)
	set := bson.M{
		"name":            doc.Name,
		"location":        doc.Location,
		"description":     doc.Description,
		"images":          doc.Images,
		"climate":         doc.Climate,
		"budgetLevel":     doc.BudgetLevel,
		"activities":      doc.Activities,
		"bestTimeToVisit": doc.BestTimeToVisit,
		"accommodations":  doc.Accommodations,
		"ratings":         doc.Ratings,
		"updatedAt":       r.now(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated destinationDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.MongoDestinationRepo.Update: %w", mapMongoErr(err))
	}
	return fromDoc(updated), nil
}

func (r *mongoDestinationRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("repo.MongoDestinationRepo.Delete: %w", domain.ErrNotFound)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("repo.MongoDestinationRepo.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("repo.MongoDestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// destinationFilter builds the query document for f. Each non-empty field
// adds one condition; the keyword becomes a case-insensitive literal regex
// over name and description.
func destinationFilter(f domain.DestinationFilter) bson.M {
	filter := bson.M{}
	if f.Budget != "" {
		filter["budgetLevel"] = string(f.Budget)
	}
	if f.Climate != "" {
		filter["climate"] = string(f.Climate)
	}
	if f.Activity != "" {
		filter["activities"] = bson.M{"$in": bson.A{f.Activity}}
	}
	if f.Keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Keyword), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

func toDoc(d domain.Destination) destinationDoc {
	doc := destinationDoc{
		Name: d.Name,
		Location: locationDoc{
			Country: d.Location.Country,
			City:    d.Location.City,
		},
		Description:     d.Description,
		Images:          nonNil(d.Images),
		Climate:         string(d.Climate),
		BudgetLevel:     string(d.BudgetLevel),
		Activities:      nonNil(d.Activities),
		BestTimeToVisit: seasonsToStrings(d.BestTimeToVisit),
		Accommodations:  make([]accommodationDoc, len(d.Accommodations)),
		Ratings:         ratingsDoc{Average: d.Ratings.Average, Count: d.Ratings.Count},
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	for i, a := range d.Accommodations {
		doc.Accommodations[i] = accommodationDoc(a)
	}
	if c := d.Location.Coordinates; c != nil {
		doc.Location.Coordinates = &coordinatesDoc{Latitude: c.Latitude, Longitude: c.Longitude}
	}
	return doc
}

func fromDoc(doc destinationDoc) domain.Destination {
	d := domain.Destination{
		ID:   doc.ID.Hex(),
		Name: doc.Name,
		Location: domain.Location{
			Country: doc.Location.Country,
			City:    doc.Location.City,
		},
		Description:     doc.Description,
		Images:          nonNil(doc.Images),
		Climate:         domain.Climate(doc.Climate),
		BudgetLevel:     domain.BudgetLevel(doc.BudgetLevel),
		Activities:      nonNil(doc.Activities),
		BestTimeToVisit: make([]domain.Season, len(doc.BestTimeToVisit)),
		Accommodations:  make([]domain.Accommodation, len(doc.Accommodations)),
		Ratings:         domain.Ratings{Average: doc.Ratings.Average, Count: doc.Ratings.Count},
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	for i, s := range doc.BestTimeToVisit {
		d.BestTimeToVisit[i] = domain.Season(s)
	}
	for i, a := range doc.Accommodations {
		d.Accommodations[i] = domain.Accommodation(a)
	}
	if c := doc.Location.Coordinates; c != nil {
		d.Location.Coordinates = &domain.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
	}
	return d
}
