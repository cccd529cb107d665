package testutil

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
	"github.com/metaview/recordings-ms-go/internal/db"
	workerHandler "github.com/metaview/recordings-ms-go/internal/handler/worker"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/repository/mariadb"
	"github.com/metaview/recordings-ms-go/internal/task"
	recordingSvc "github.com/metaview/recordings-ms-go/internal/usecase/recording"
)

// StartWorker runs an asynq worker processing archive tasks against the
// given database and storage. It returns a function to shut it down.
func StartWorker(dbConn *db.Database, strg port.Storage, redisAddr string) func() {
	repo := mariadb.NewRecordingRepository(dbConn.DB)
	archiveSvc := recordingSvc.NewRecordingArchiver(repo, strg)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeArchiveRecording, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseArchiveRecordingPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ArchiveRecordingHandler(ctx, p, archiveSvc)
	})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 5})
	go func() {
		if err := srv.Run(mux); err != nil {
			log.Printf("worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
