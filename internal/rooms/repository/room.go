package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	roomserrors "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/errors"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/config"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/model"
)

const (
	CollectionName = "Rooms"
)

type mongoRoomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type RoomRepository interface {
	FindAll(ctx context.Context, minPrice, maxPrice *int64) ([]*model.Room, error)
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindByBookedUser(ctx context.Context, email string) ([]*model.Room, error)
	FindFeatured(ctx context.Context, limit int) ([]*model.Room, error)
	Merge(ctx context.Context, id string, fields map[string]any, upsert bool) (*mongo.UpdateResult, error)
	AppendReview(ctx context.Context, id string, review map[string]any) (*mongo.UpdateResult, error)
	SetBookedDate(ctx context.Context, id string, date any) (*mongo.UpdateResult, error)
	ClearBooking(ctx context.Context, id string) (*mongo.UpdateResult, error)
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a single store operation without extending a caller
// deadline that is already tighter.
func (r *mongoRoomRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRoomRepository) FindAll(ctx context.Context, minPrice, maxPrice *int64) ([]*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if minPrice != nil && maxPrice != nil {
		filter["price"] = bson.M{"$gte": *minPrice, "$lte": *maxPrice}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	var room model.Room
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, roomserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return &room, nil
}

func (r *mongoRoomRepository) FindByBookedUser(ctx context.Context, email string) ([]*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"bookedUser": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings for user: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) FindFeatured(ctx context.Context, limit int) ([]*model.Room, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// The _id tiebreak keeps the order of equal-count rooms stable across
	// repeated calls.
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"reviewCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "reviewCount", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{"reviewCount": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to rank featured rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode featured rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoRoomRepository) Merge(ctx context.Context, id string, fields map[string]any, upsert bool) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": fields}
	opts := options.Update().SetUpsert(upsert)

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to merge room fields: %w", err)
	}

	if !upsert && result.MatchedCount == 0 {
		return nil, roomserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoRoomRepository) AppendReview(ctx context.Context, id string, review map[string]any) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	// $addToSet compares documents field-order-sensitively, and Go map
	// iteration order is random. Canonicalizing the field order is what
	// makes "same payload twice" a no-op.
	update := bson.M{"$addToSet": bson.M{"reviews": canonicalDoc(review)}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to append review: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, roomserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoRoomRepository) SetBookedDate(ctx context.Context, id string, date any) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{"bookedDate": date}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to set booked date: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, roomserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoRoomRepository) ClearBooking(ctx context.Context, id string) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	// bookedUser and bookedDate are removed, not nulled, so the document
	// returns to its pre-booking shape.
	update := bson.M{
		"$set":   bson.M{"available": true},
		"$unset": bson.M{"bookedUser": "", "bookedDate": ""},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to clear booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, roomserrors.ErrNotFound
	}

	return result, nil
}

// canonicalDoc converts a decoded JSON object into a bson.D with keys in
// sorted order, recursively, so equal payloads always marshal to identical
// BSON.
func canonicalDoc(doc map[string]any) bson.D {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(bson.D, 0, len(doc))
	for _, k := range keys {
		out = append(out, bson.E{Key: k, Value: canonicalValue(doc[k])})
	}
	return out
}

func canonicalValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return canonicalDoc(val)
	case []any:
		out := make(bson.A, 0, len(val))
		for _, item := range val {
			out = append(out, canonicalValue(item))
		}
		return out
	default:
		return v
	}
}
