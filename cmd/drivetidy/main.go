package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lzhang-md/drivetidy/internal/api"
	"github.com/lzhang-md/drivetidy/internal/config"
	"github.com/lzhang-md/drivetidy/internal/db"
	"github.com/lzhang-md/drivetidy/internal/jobs"
	"github.com/lzhang-md/drivetidy/internal/junk"
	"github.com/lzhang-md/drivetidy/internal/metadata"
	"github.com/lzhang-md/drivetidy/internal/organizer"
	"github.com/lzhang-md/drivetidy/internal/repository"
	"github.com/lzhang-md/drivetidy/internal/scheduler"
	"github.com/lzhang-md/drivetidy/internal/store"
	"github.com/lzhang-md/drivetidy/internal/store/cmcc"
	"github.com/lzhang-md/drivetidy/internal/version"
)

func main() {
	ver := version.Load()
	log.Printf("DriveTidy %s starting...", ver.Version)

	cfg := config.Load()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	cfg.MergeFromDB(database.DB)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	var driveStore store.DirectoryStore
	var org *organizer.Organizer
	wsHub := api.NewWSHub()
	queue := jobs.NewQueue(cfg.RedisAddr)

	drive, err := cmcc.NewClient(cmcc.Config{
		Authorization: cfg.CMCCAuthorization,
		Cookie:        cfg.CMCCCookie,
		ExtraHeaders:  clientInfoHeaders(cfg.CMCCClientInfo),
	})
	switch {
	case err == nil:
		driveStore = drive

		var provider metadata.Provider
		if cfg.TMDBAPIKey != "" {
			tmdb := metadata.NewTMDBClient(cfg.TMDBAPIKey, cfg.TMDBLanguage)
			provider = metadata.NewCachedProvider(tmdb, rdb, 24*time.Hour)
		} else {
			log.Println("TMDB API key not set, resolving from file names only")
		}

		resolver := metadata.NewResolver(provider)
		classifier := junk.NewClassifier(junk.DefaultRuleset())
		org = organizer.New(driveStore, resolver, classifier,
			organizer.WithNotifier(wsHub),
			organizer.WithCleanLimits(cfg.MaxCleanDepth, 5000),
		)

		runRepo := repository.NewRunRepository(database.DB)
		jobs.RegisterHandlers(queue, org, runRepo, wsHub)
		if err := queue.Start(context.Background()); err != nil {
			log.Fatalf("job queue failed to start: %v", err)
		}
		defer queue.Stop()

		sched := scheduler.New(queue, cfg.CleanSchedule, cfg.CleanFolderList())
		if err := sched.Start(); err != nil {
			log.Fatalf("scheduler failed to start: %v", err)
		}
		defer sched.Stop()

	case errors.Is(err, store.ErrNotConfigured):
		log.Println("drive credentials not configured, organize endpoints disabled")

	default:
		log.Fatalf("drive client failed to initialize: %v", err)
	}

	srv := api.NewServer(cfg, database, driveStore, org, queue, wsHub)

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}

func clientInfoHeaders(clientInfo string) map[string]string {
	if clientInfo == "" {
		return nil
	}
	return map[string]string{"x-yun-client-info": clientInfo}
}
