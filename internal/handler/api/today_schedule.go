package api

import (
	"net/http"

	"github.com/metaview/recordings-ms-go/internal/api_context"
	"github.com/metaview/recordings-ms-go/internal/logger"
	"github.com/metaview/recordings-ms-go/internal/port"
)

// TodayScheduleHandler returns today's classes for the authenticated
// faculty member, each with its upload status.
func TodayScheduleHandler(svc port.TodayScheduleGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facultyID, ok := api_context.AuthFacultyIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "faculty authentication is required", nil)
			return
		}

		out, err := svc.GetTodaySchedule(r.Context(), facultyID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not get today's schedule", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully returned today's schedule for faculty #%d", facultyID)
	}
}
