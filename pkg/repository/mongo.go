package repository

import (
	"context"
	"errors"
	"time"

	"github.com/example/glowmart/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection     = "products"
	transactionsCollection = "transactions"
	usersCollection        = "users"
)

// ErrNotFound reports an update or delete that matched zero documents.
// A no-op mutation is a failure even though no state changed.
var ErrNotFound = errors.New("no matching document")

type MongoRepository struct {
	client   *mongo.Client
	database *mongo.Database
	config   *config.MongoDBConfig
}

func NewMongoRepository(cfg *config.MongoDBConfig) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	return &MongoRepository{
		client:   client,
		database: client.Database(cfg.Database),
		config:   cfg,
	}, nil
}

func (m *MongoRepository) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoRepository) Products() *ProductRepository {
	return &ProductRepository{col: m.database.Collection(productsCollection)}
}

func (m *MongoRepository) Orders() *OrderRepository {
	return &OrderRepository{col: m.database.Collection(transactionsCollection)}
}

func (m *MongoRepository) Users() *UserRepository {
	return &UserRepository{col: m.database.Collection(usersCollection)}
}
