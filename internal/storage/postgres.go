package storage

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Database - подключение к PostgreSQL поверх пула pgx
type Database struct {
	Pool *pgxpool.Pool
	DSN  string
}

const (
	checkDatabaseExists = `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	createDatabase      = `CREATE DATABASE %s`

	connectTimeout = 5 * time.Second
)

// Создание хранилища
func NewDatabase(ctx context.Context, dsn string) (*Database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return &Database{Pool: pool, DSN: dsn}, nil
}

// Initialize - создание БД (если её нет) и прогон миграций
func (s *Database) Initialize(ctx context.Context) error {
	if err := s.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("error create database: %w", err)
	}
	if err := s.migrate(); err != nil {
		return fmt.Errorf("error migrate database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return s.Pool.Ping(pingCtx)
}

func (s *Database) Close() error {
	s.Pool.Close()
	return nil
}

// migrate - миграции зашиты в бинарь, накатываются на старте
func (s *Database) migrate() error {
	goose.SetBaseFS(embedMigrations)

	db, err := goose.OpenDBWithDriver("pgx", s.DSN)
	if err != nil {
		return fmt.Errorf("open db error: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose run migrations error: %w", err)
	}
	return nil
}

// ensureDatabase - goose не умеет создавать БД, поэтому при недоступности
// целевой базы соединяемся с дефолтной и создаём её сами
func (s *Database) ensureDatabase(ctx context.Context) error {
	cfg, err := pgx.ParseConfig(s.DSN)
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err == nil {
		return conn.Close(ctx)
	}

	target := cfg.Database
	cfg.Database = `postgres`
	conn, err = pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer conn.Close(ctx)

	var exist bool
	if err := conn.QueryRow(ctx, checkDatabaseExists, target).Scan(&exist); err != nil {
		return fmt.Errorf("failed to check database exists: %w", err)
	}
	if !exist {
		if _, err := conn.Exec(ctx, fmt.Sprintf(createDatabase, target)); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
	}
	return nil
}
