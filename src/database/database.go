package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoClient owns one driver client for the lifetime of the process.
type MongoClient struct {
	client *mongo.Client
	log    *zap.Logger
}

// ConnectMongoDB builds the client and pings the primary. An unreachable
// server is only logged: the driver keeps reconnecting in the background so
// the HTTP server can start before the database is ready. The returned client
// must be closed with Disconnect.
func ConnectMongoDB(ctx context.Context, uri string, timeout time.Duration, log *zap.Logger) (*MongoClient, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	m := &MongoClient{client: client, log: log}
	if err := m.Ping(ctx, timeout); err != nil {
		log.Warn("⚠️ MongoDB not reachable yet", zap.Error(err))
		return m, nil
	}

	log.Info("✅ MongoDB connected successfully")
	return m, nil
}

// Ping checks that the primary is reachable within timeout.
func (m *MongoClient) Ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle on dbName.collectionName.
func (m *MongoClient) Collection(dbName, collectionName string) *mongo.Collection {
	return m.client.Database(dbName).Collection(collectionName)
}

func (m *MongoClient) Disconnect(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	m.log.Info("MongoDB disconnected")
	return nil
}
