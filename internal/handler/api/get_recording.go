package api

import (
	"errors"
	"net/http"

	"github.com/metaview/recordings-ms-go/internal/api_context"
	"github.com/metaview/recordings-ms-go/internal/logger"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/usecase/recording"
)

func GetRecordingHandler(renderer port.HTTPRenderer, svc port.RecordingGetter) http.HandlerFunc {
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

		raw, etag, err := renderer.RenderGetRecording(r.Context(), svc, facultyID, id)
		if err != nil {
			switch {
			case errors.Is(err, recording.ErrObjectNotFound):
				WriteError(w, http.StatusNotFound, "Recording not found", nil)
			case errors.Is(err, recording.ErrNotValidated):
				WriteError(w, http.StatusConflict, "Recording has not been validated yet", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not get recording details", err)
			}
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "private, max-age=300")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached recording #%s", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for recording #%s", id)
	}
}
