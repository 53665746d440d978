package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/guy32807/travel-recommentation/internal/config"
	"github.com/guy32807/travel-recommentation/internal/repo"
)

// connectTimeout bounds the startup ping of either store.
const connectTimeout = 10 * time.Second

var errInvalidDirection = errors.New("invalid migration direction")

// handleError prints err and decides whether usage should follow.
func handleError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err)
	if errors.Is(err, errInvalidDirection) {
		_ = cmd.Usage()
	}
	return err
}

// loadConfig reads the dotenv files and the environment.
func loadConfig(envFiles []string) (config.Config, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return config.Config{}, err
	}
	return config.Load()
}

// newLogger returns a JSON slog logger at level. Unknown levels fall back to
// info; config.Load has already rejected them.
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// store is an open destination backend. Exactly one of pool and mongoDB is set.
type store struct {
	kind         config.Store
	destinations repo.DestinationRepo
	pool         *pgxpool.Pool
	mongoDB      *mongo.Database
	close        func()
}

// openStore connects to the backend selected by cfg and verifies it is
// reachable before anything is served.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (*store, error) {
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if cfg.Store() == config.StoreMongo {
		client, err := mongo.Connect(pingCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("cmd.openStore: connect mongodb: %w", err)
		}
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("cmd.openStore: ping mongodb: %w", err)
		}
		database := client.Database(cfg.MongoDatabase)
		log.Info("database connection established", "store", config.StoreMongo, "database", cfg.MongoDatabase)
		return &store{
			kind:         config.StoreMongo,
			destinations: repo.NewMongoDestinationRepo(database),
			mongoDB:      database,
			close:        func() { _ = client.Disconnect(context.Background()) },
		}, nil
	}

	// New does not open connections; the ping below does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("cmd.openStore: create postgres pool: %w", err)
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cmd.openStore: ping postgres: %w", err)
	}
	log.Info("database connection established", "store", config.StorePostgres)
	return &store{
		kind:         config.StorePostgres,
		destinations: repo.NewDestinationRepo(pool),
		pool:         pool,
		close:        pool.Close,
	}, nil
}
