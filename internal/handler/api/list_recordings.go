package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/metaview/recordings-ms-go/internal/api_context"
	"github.com/metaview/recordings-ms-go/internal/logger"
	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

// ListRecordingsHandler returns the upload history of the authenticated
// faculty member, newest first. Supports status, qualified, limit and
// offset query parameters.
func ListRecordingsHandler(svc port.RecordingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facultyID, ok := api_context.AuthFacultyIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "faculty authentication is required", nil)
			return
		}

		in := port.ListRecordingsInput{FacultyID: facultyID}

		if status := r.URL.Query().Get("status"); status != "" {
			switch status {
			case model.RecordingStatusPending, model.RecordingStatusValidated, model.RecordingStatusFailed:
				in.Status = &status
			default:
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("status %q is not valid", status), nil)
				return
			}
		}
		if qualified := r.URL.Query().Get("qualified"); qualified != "" {
			parsed, err := strconv.ParseBool(qualified)
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("qualified %q is not a valid boolean", qualified), nil)
				return
			}
			in.Qualified = &parsed
		}
		if limit := r.URL.Query().Get("limit"); limit != "" {
			parsed, err := strconv.Atoi(limit)
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("limit %q is not a valid integer", limit), nil)
				return
			}
			in.Limit = parsed
		}
		if offset := r.URL.Query().Get("offset"); offset != "" {
			parsed, err := strconv.Atoi(offset)
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("offset %q is not a valid integer", offset), nil)
				return
			}
			in.Offset = parsed
		}

		out, err := svc.ListRecordings(r.Context(), in)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not list recordings", err)
			return
		}
		if out == nil {
			out = []port.RecordingSummaryOutput{}
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully listed %d recordings for faculty #%d", len(out), facultyID)
	}
}
