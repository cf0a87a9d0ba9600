package db

import (
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	assert.NoError(t, err)
	assert.Contains(t, files, "migrations/1_matches.up.sql")
	assert.Contains(t, files, "migrations/1_matches.down.sql")
}

func TestOpen_NoDSN(t *testing.T) {
	db, err := Open("")
	assert.Nil(t, db)
	assert.EqualError(t, err, "pgDsn is not configured")
}

func TestMigrate(t *testing.T) {
	dsn := os.Getenv("SAS_PG_DSN")
	if dsn == "" {
		t.Skip("SAS_PG_DSN is not set")
	}

	db, err := Open(dsn)
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	assert.NoError(t, Migrate(db))
	// running twice is not an error
	assert.NoError(t, Migrate(db))
}
