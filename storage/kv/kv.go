// Package kv holds the key-value backends behind per-user state.
package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kylycht/coinboard/storage"
)

type Driver string

const (
	Memory   Driver = "memory"
	Redis    Driver = "redis"
	Postgres Driver = "postgres"
	MongoDB  Driver = "mongodb"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type (
	PostgresConfig struct {
		DSN   string `mapstructure:"dsn" yaml:"dsn"`
		Table string `mapstructure:"table" yaml:"table"`
	}

	RedisConfig struct {
		Addrs     []string `mapstructure:"addrs" yaml:"addrs"`
		Password  string   `mapstructure:"password" yaml:"password"`
		DB        int      `mapstructure:"db" yaml:"db"`
		Cluster   bool     `mapstructure:"cluster" yaml:"cluster"`
		Namespace string   `mapstructure:"namespace" yaml:"namespace"`
	}

	MongoConfig struct {
		URI        string `mapstructure:"uri" yaml:"uri"`
		Database   string `mapstructure:"database" yaml:"database"`
		Collection string `mapstructure:"collection" yaml:"collection"`
	}

	Config struct {
		Driver   string         `mapstructure:"driver" yaml:"driver"`
		Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
		Redis    RedisConfig    `mapstructure:"redis" yaml:"redis"`
		MongoDB  MongoConfig    `mapstructure:"mongodb" yaml:"mongodb"`
	}
)

// ParseDriver maps a configured driver name onto a Driver.
// Empty selects Memory.
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Memory, nil
	case Memory, Redis, Postgres, MongoDB:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, s)
	}
}

// New connects the backend selected by cfg.Driver.
func New(ctx context.Context, cfg Config) (storage.KV, error) {
	driver, err := ParseDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("driver", string(driver)).Msg("initialize kv storage")

	switch driver {
	case Redis:
		if len(cfg.Redis.Addrs) == 0 {
			return nil, errors.New("redis storage requires at least one address")
		}

		var client redis.UniversalClient
		if cfg.Redis.Cluster && len(cfg.Redis.Addrs) > 1 {
			client = redis.NewClusterClient(&redis.ClusterOptions{
				Addrs:    cfg.Redis.Addrs,
				Password: cfg.Redis.Password,
			})
		} else {
			client = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addrs[0],
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
		}

		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("unable to reach redis: %w", err)
		}

		return NewRedis(client, cfg.Redis.Namespace), nil

	case Postgres:
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to postgres: %w", err)
		}

		pg := NewPostgres(db, cfg.Postgres.Table)
		if err := pg.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}

		return pg, nil

	case MongoDB:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
		if err != nil {
			return nil, fmt.Errorf("unable to connect to mongodb: %w", err)
		}

		return NewMongo(client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)), nil

	default:
		return NewMemory(), nil
	}
}
