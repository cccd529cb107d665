package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeArchiveRecording = "recording:archive"

type ArchiveRecordingPayload struct {
	RecordingID string `json:"recording_id"`
}

// NewArchiveRecordingTask creates an Asynq task for archiving a recording by ID.
func NewArchiveRecordingTask(recordingID string) (*asynq.Task, error) {
	p := ArchiveRecordingPayload{RecordingID: recordingID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal archive-recording payload: %w", err)
	}
	return asynq.NewTask(TypeArchiveRecording, data), nil
}

// ParseArchiveRecordingPayload parses the task payload to ArchiveRecordingPayload.
func ParseArchiveRecordingPayload(t *asynq.Task) (ArchiveRecordingPayload, error) {
	var p ArchiveRecordingPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ArchiveRecordingPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
