package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"stackandsteal-server/internal/config"
	"stackandsteal-server/internal/jwt"
	"stackandsteal-server/internal/mux"
	"stackandsteal-server/internal/rng"
	"stackandsteal-server/pkg/archive"
	"stackandsteal-server/pkg/db"
	"stackandsteal-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

func main() {
	if err := config.Load(); err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}

	cfg := config.Instance()
	setupLogger(cfg.Log)

	// fail fast
	jwt.LoadKey()

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), roomConfig(cfg.Game), rng.Crypto{}, recorder(cfg))
	pitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingHandler(cfg.Log, c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		logrus.Info("shutting down")
		pitBoss.EndShift()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	logrus.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"version": Version,
	}).Info("listening")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func roomConfig(g config.GameConfig) room.Config {
	return room.Config{
		Capacity:            g.Capacity,
		Options:             g.Options(),
		TurnDuration:        g.TurnDuration,
		BotThinkTime:        g.BotThinkTime,
		FinishedGracePeriod: g.FinishedGracePeriod,
		LobbyTTL:            g.LobbyTTL,
	}
}

// recorder returns the match archive, or nil when no database is configured
func recorder(cfg config.Config) archive.Recorder {
	if cfg.PGDSN == "" {
		logrus.Info("pgDsn is not configured, finished matches are not archived")
		return nil
	}

	dbh, err := db.Open(cfg.PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to the database")
	}

	// run the db migrations
	if err := db.Migrate(dbh); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	return archive.NewStore(dbh)
}

func loggingHandler(cfg config.LogConfig, next http.Handler) http.Handler {
	if cfg.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger(cfg config.LogConfig) {
	if cfg.Level != "" {
		level, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(cfg.Format) == "json" || !term.IsTerminal(int(os.Stdout.Fd())) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
