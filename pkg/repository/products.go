package repository

import (
	"context"
	"errors"
	"time"

	"github.com/example/glowmart/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	col *mongo.Collection
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ExistsByName backs the unique-name check on product creation.
func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"nama": name}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (string, error) {
	p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	result, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}
	id := result.InsertedID.(primitive.ObjectID)
	p.ID = id
	return id.Hex(), nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	fields["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	result, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
