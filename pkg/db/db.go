package db

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"stackandsteal-server/internal/config"

	_ "github.com/lib/pq" // needed
)

//go:embed migrations/*.sql
var migrations embed.FS

var instance *sql.DB

// Instance returns a database instance
func Instance() *sql.DB {
	if instance == nil {
		LoadInstance()
	}

	return instance
}

// LoadInstance will load the database instance from the configured DSN
func LoadInstance() {
	db, err := Open(config.Instance().PGDSN)
	if err != nil {
		panic(err)
	}

	instance = db
}

// Open opens and pings a PostgreSQL database
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("pgDsn is not configured")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs the embedded migrations
func Migrate(db *sql.DB) error {
	logrus.Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
