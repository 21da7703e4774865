package database

import (
	"context"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/config"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// InitMongo connects to MongoDB and returns the configured database handle.
func InitMongo(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	name := cfg.Database
	if name == "" {
		name = "ashravi"
	}
	logger.Log.Info("MongoDB connection established", zap.String("database", name))
	return client, client.Database(name), nil
}
