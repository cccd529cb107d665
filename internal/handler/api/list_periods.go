package api

import (
	"net/http"

	"github.com/metaview/recordings-ms-go/internal/logger"
	"github.com/metaview/recordings-ms-go/internal/port"
)

// ListPeriodsHandler returns the configured bell schedule.
func ListPeriodsHandler(svc port.PeriodsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListPeriods(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not list periods", err)
			return
		}
		if out == nil {
			out = []port.PeriodOutput{}
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully listed %d periods", len(out))
	}
}
