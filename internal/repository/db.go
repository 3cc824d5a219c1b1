package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo wraps a connected document store client scoped to one database.
// It is constructed once in main and passed to the repositories.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to the document store at host:port and scopes all
// collection access to database.
func NewMongo(ctx context.Context, host, port, database string) (*Mongo, error) {
	uri := fmt.Sprintf("mongodb://%s:%s/%s", host, port, database)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		slog.Warn("document store ping failed — continuing", "error", err)
	}

	return &Mongo{client: client, db: client.Database(database)}, nil
}

// Close releases the client's connections.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping reports whether the document store is reachable.
func (m *Mongo) Ping(ctx context.Context) bool {
	return m.client.Ping(ctx, readpref.Primary()) == nil
}
