package repository

import (
	"context"
	"errors"
	"time"

	"github.com/example/glowmart/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	col *mongo.Collection
}

// StatsFilter narrows the order set fed to reporting. Dates compare as
// RFC 3339 strings against orderDate; Kasir matches the customer name.
type StatsFilter struct {
	StartDate string
	EndDate   string
	Kasir     string
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (string, error) {
	o.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	result, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return "", err
	}
	id := result.InsertedID.(primitive.ObjectID)
	o.ID = id
	return id.Hex(), nil
}

// List returns orders newest-first, optionally only those belonging to
// one customer.
func (r *OrderRepository) List(ctx context.Context, userID string) ([]models.Order, error) {
	filter := bson.M{}
	if userID != "" {
		filter["customerInfo.userId"] = userID
	}
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var order models.Order
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"orderStatus": status,
		"updatedAt":   time.Now().UTC().Format(time.RFC3339),
	}}
	result, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) Range(ctx context.Context, f StatsFilter) ([]models.Order, error) {
	filter := bson.M{}
	if f.StartDate != "" || f.EndDate != "" {
		dateRange := bson.M{}
		if f.StartDate != "" {
			dateRange["$gte"] = f.StartDate
		}
		if f.EndDate != "" {
			dateRange["$lte"] = f.EndDate
		}
		filter["orderDate"] = dateRange
	}
	if f.Kasir != "" {
		filter["customerInfo.name"] = f.Kasir
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *OrderRepository) Recent(ctx context.Context, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}).SetLimit(limit)
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
