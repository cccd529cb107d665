package api

import (
	"errors"
	"net/http"

	"github.com/metaview/recordings-ms-go/internal/api_context"
	"github.com/metaview/recordings-ms-go/internal/logger"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/usecase/recording"
)

// DeleteRecordingHandler deletes a recording by ID.
func DeleteRecordingHandler(svc port.RecordingDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		facultyID, ok := api_context.AuthFacultyIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "faculty authentication is required", nil)
			return
		}

		if err := svc.DeleteRecording(r.Context(), facultyID, id); err != nil {
			if errors.Is(err, recording.ErrObjectNotFound) {
				WriteError(w, http.StatusNotFound, "Recording not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Failed to delete recording", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted recording #%s", id)
	}
}
