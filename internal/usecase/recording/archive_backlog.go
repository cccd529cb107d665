package recording

import (
	"context"
	"time"

	"github.com/metaview/recordings-ms-go/internal/port"

	"github.com/metaview/recordings-ms-go/internal/logger"
)

type backlogArchiverSrv struct {
	repo  port.RecordingRepository
	tasks port.TaskDispatcher
}

// compile-time check: *backlogArchiverSrv must satisfy port.BacklogArchiver
var _ port.BacklogArchiver = (*backlogArchiverSrv)(nil)

// NewBacklogArchiver constructs a BacklogArchiver implementation.
func NewBacklogArchiver(repo port.RecordingRepository, tasks port.TaskDispatcher) port.BacklogArchiver {
	return &backlogArchiverSrv{repo, tasks}
}

// ArchiveBacklog looks for qualified recordings validated more than an
// hour ago that never made it to the archive bucket and enqueues archive
// tasks for them.
func (s *backlogArchiverSrv) ArchiveBacklog(ctx context.Context) error {
	cutoff := time.Now().Add(-ArchiveAfter)
	ids, err := s.repo.ListQualifiedUnarchivedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no recordings found to archive")
	}

	for _, id := range ids {
		logger.Infof(ctx, "starting archive for recording #%s", id)
		if err := s.tasks.EnqueueArchiveRecording(ctx, id); err != nil {
			logger.Warnf(ctx, "failed to enqueue archive task for recording #%s: %v", id, err)
		}
	}
	return nil
}
