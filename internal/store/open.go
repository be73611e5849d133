package store

import (
	"context"
	"fmt"

	"github.com/Madhulr/to-do-Bend/internal/config"
	"github.com/Madhulr/to-do-Bend/internal/database"
)

const mongoConnectAttempts = 5

// Open connects the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryStore(), nil
	case config.BackendMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
		if err != nil {
			return nil, err
		}
		s, err := NewMongoStore(ctx, client, client.Database(cfg.MongoDB.Database))
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return s, nil
	case config.BackendPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		s, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
