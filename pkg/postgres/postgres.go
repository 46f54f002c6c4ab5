package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type DB struct {
	Host     string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     int    `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	Username string `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	NameDB   string `yaml:"dbname" envconfig:"DB_NAME" default:"library"`
	Schema   string `yaml:"schema" envconfig:"DB_SCHEMA" default:"zllibrary"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `yaml:"maxConns" envconfig:"DB_MAX_CONNS" default:"10"`

	// TxTimeout bounds a whole read-check-write transaction.
	TxTimeout time.Duration `yaml:"txTimeout" envconfig:"DB_TX_TIMEOUT" default:"5s"`
	// LockTimeout bounds waiting for a row lock inside a transaction.
	LockTimeout time.Duration `yaml:"lockTimeout" envconfig:"DB_LOCK_TIMEOUT" default:"2s"`
}

func (db *DB) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.Username, db.Password),
		Host:   net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:   db.NameDB,
	}
	q := u.Query()
	q.Set("sslmode", db.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// NewPostgresDB opens a pool and applies migrations from migrationFS when it is not nil.
func NewPostgresDB(ctx context.Context, cfg *DB, migrationFS fs.FS) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.ParseConfig")
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.Schema != "" {
		pcfg.ConnConfig.RuntimeParams["search_path"] = cfg.Schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.NewWithConfig")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping")
	}

	if migrationFS != nil {
		if err = Migrate(ctx, pool, cfg.Schema, migrationFS, "up"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}

// Migrate runs a goose command (up, down, status, ...) against the embedded migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, schema string, migrationFS fs.FS, command string, args ...string) error {
	if schema != "" {
		q := fmt.Sprintf("create schema if not exists %s", pgx.Identifier{schema}.Sanitize())
		if _, err := pool.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "create schema")
		}
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "goose.SetDialect")
	}
	if err := goose.Run(command, db, ".", args...); err != nil {
		return errors.Wrapf(err, "goose %s", command)
	}
	return nil
}
