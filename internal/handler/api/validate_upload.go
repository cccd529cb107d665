package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/metaview/recordings-ms-go/internal/api_context"
	"github.com/metaview/recordings-ms-go/internal/logger"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/usecase/recording"
	"github.com/metaview/recordings-ms-go/internal/validation"
)

type ValidateUploadRequest struct {
	TargetPeriod *int `json:"target_period" validate:"omitempty,gte=1,lte=12"`
}

// ValidateUploadHandler finalises a staged upload: metadata extraction,
// schedule matching and promotion into the recordings bucket. The body is
// optional and may carry a target period hint.
func ValidateUploadHandler(svc port.UploadValidator) http.HandlerFunc {
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

		var req ValidateUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		in := port.ValidateUploadInput{
			ID:           id,
			FacultyID:    facultyID,
			TargetPeriod: req.TargetPeriod,
		}
		out, err := svc.ValidateUpload(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, recording.ErrObjectNotFound):
				WriteError(w, http.StatusNotFound, "Recording not found", nil)
			case errors.Is(err, recording.ErrNotPending):
				WriteError(w, http.StatusConflict, "Recording is not awaiting validation", nil)
			case errors.Is(err, recording.ErrUploadRejected):
				WriteError(w, http.StatusUnprocessableEntity, err.Error(), nil)
			default:
				WriteError(w, http.StatusInternalServerError, fmt.Sprintf("could not validate upload of recording #%s", in.ID), err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully validated upload of recording #%s", in.ID)
	}
}
