package worker

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/task"
)

// ArchiveRecordingHandler handles an archive-recording task.
// It converts the incoming task payload to the recording ID expected by
// the port.RecordingArchiver service and delegates the call.
func ArchiveRecordingHandler(ctx context.Context, p task.ArchiveRecordingPayload, svc port.RecordingArchiver) error {
	id, err := uuid.Parse(p.RecordingID)
	if err != nil {
		log.Printf("❌  Invalid recording ID %q: %v", p.RecordingID, err)
		return err
	}

	if err := svc.ArchiveRecording(ctx, db.UUID(id)); err != nil {
		log.Printf("❌  Failed to archive recording #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Successfully archived recording #%s", id)
	return nil
}
