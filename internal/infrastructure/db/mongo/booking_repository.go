package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hairbook/booking-api/internal/core/domain"
)

const collectionBookings = "bookings"

// BookingRepository implements ports.BookingRepository using MongoDB.
type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

type bookingDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          primitive.ObjectID `bson:"userId"`
	HairdresserName string             `bson:"hairdresserName"`
	Date            time.Time          `bson:"date"`
	Status          string             `bson:"status"`
	Price           float64            `bson:"price"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func (d bookingDocument) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:              d.ID.Hex(),
		UserID:          d.UserID.Hex(),
		HairdresserName: d.HairdresserName,
		Date:            d.Date.UTC(),
		Status:          domain.BookingStatus(d.Status),
		Price:           d.Price,
		CreatedAt:       d.CreatedAt.UTC(),
	}
}

// Create inserts a new booking document.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	owner, err := primitive.ObjectIDFromHex(b.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid owner id", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, bookingDocument{
		UserID:          owner,
		HairdresserName: b.HairdresserName,
		Date:            b.Date,
		Status:          string(b.Status),
		Price:           b.Price,
		CreatedAt:       b.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *b
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ListByUser returns every booking owned by userID, newest date first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Booking{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	out := make([]*domain.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the bookings collection.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
