package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"stackandsteal-server/internal/config"
	"stackandsteal-server/pkg/db"
)

func main() {
	dbh := waitForDB(config.Instance().PGDSN)
	if err := db.Migrate(dbh); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func waitForDB(dsn string) *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			dbh, err := db.Open(dsn)
			if err == nil {
				return dbh
			}

			logrus.WithError(err).Debug("waiting for database")
			time.Sleep(time.Millisecond * 500)
		}
	}
}
