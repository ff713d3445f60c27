package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

const (
	decksCollection  = "decks"
	slidesCollection = "slides"
	usersCollection  = "users"
)

// Store is the MongoDB handle for decks, slides and users. It is opened once
// at process start and closed at shutdown.
type Store struct {
	client   *mongo.Client
	database *mongo.Database
	decks    *mongo.Collection
	slides   *mongo.Collection
	users    *mongo.Collection
}

// extractDBName parses the database name from the URI, defaulting to "slidecraft"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "slidecraft"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:]
	}
	return "slidecraft"
}

// Connect establishes a connection to MongoDB using the provided URI
func Connect(ctx context.Context, uri string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(extractDBName(uri))
	s := &Store{
		client:   client,
		database: database,
		decks:    database.Collection(decksCollection),
		slides:   database.Collection(slidesCollection),
		users:    database.Collection(usersCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) DatabaseName() string { return s.database.Name() }

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}
	if _, err := s.decks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("failed to create decks index: %w", err)
	}
	if _, err := s.slides.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "deck", Value: 1}, {Key: "order", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create slides index: %w", err)
	}
	return nil
}
