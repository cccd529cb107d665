package main

import (
	"context"
	"log"

	"github.com/metaview/recordings-ms-go/internal/config"
	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/repository/mariadb"
	"github.com/metaview/recordings-ms-go/internal/task"
	recordingSvc "github.com/metaview/recordings-ms-go/internal/usecase/recording"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(cfg)
	repo := mariadb.NewRecordingRepository(database.DB)

	archiver := recordingSvc.NewBacklogArchiver(repo, dispatcher)
	if err := archiver.ArchiveBacklog(context.Background()); err != nil {
		log.Fatalf("❌  Backlog archiving failed: %v", err)
	}
	log.Println("✅  Backlog archiving completed")
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	dbCfg := db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	database, err := db.NewFromConfig(dbCfg)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
