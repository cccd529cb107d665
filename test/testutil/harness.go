package testutil

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/handler/api"
	"github.com/metaview/recordings-ms-go/internal/mediainfo"
	cMiddleware "github.com/metaview/recordings-ms-go/internal/middleware"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/renderer"
	"github.com/metaview/recordings-ms-go/internal/repository/mariadb"
	recordingSvc "github.com/metaview/recordings-ms-go/internal/usecase/recording"
)

// NewAPIRouter wires the full HTTP surface the way cmd/api does, against
// test-owned dependencies. No analyzer mirrors are configured, so every
// validation exercises the native fallback probe.
func NewAPIRouter(database *sql.DB, strg port.Storage, ca port.Cache, dispatcher port.TaskDispatcher) *chi.Mux {
	r := chi.NewRouter()
	r.Use(cMiddleware.WithFacultyAuth(""))
	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	recordingRepo := mariadb.NewRecordingRepository(database)
	scheduleRepo := mariadb.NewScheduleRepository(database)
	extractor := mediainfo.NewExtractor(nil, mediainfo.NewBasicProbe(0), 0)

	r.Post("/recordings/upload-link", api.GenerateUploadLinkHandler(
		recordingSvc.NewUploadLinkGenerator(recordingRepo, strg, db.NewUUID)))
	r.With(cMiddleware.WithRecordingID()).
		Post("/recordings/{id}/validate", api.ValidateUploadHandler(
			recordingSvc.NewUploadValidator(recordingRepo, scheduleRepo, strg, extractor, ca, dispatcher)))
	r.With(cMiddleware.WithRecordingID()).
		Get("/recordings/{id}", api.GetRecordingHandler(
			renderer.NewHTTPRenderer(ca), recordingSvc.NewRecordingGetter(recordingRepo, strg)))
	r.Get("/recordings", api.ListRecordingsHandler(
		recordingSvc.NewRecordingLister(recordingRepo)))
	r.With(cMiddleware.WithRecordingID()).
		Delete("/recordings/{id}", api.DeleteRecordingHandler(
			recordingSvc.NewRecordingDeleter(recordingRepo, ca, strg)))
	r.Get("/schedule/today", api.TodayScheduleHandler(
		recordingSvc.NewTodayScheduleGetter(scheduleRepo, recordingRepo)))
	r.Get("/schedule/periods", api.ListPeriodsHandler(
		recordingSvc.NewPeriodsLister(scheduleRepo)))

	return r
}

// MakeFacultyToken builds a bearer token carrying the faculty_id claim. The
// test router runs without a configured public key, so the signature is
// never checked.
func MakeFacultyToken(t *testing.T, facultyID int64) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":        "portal",
		"aud":        "recordings",
		"faculty_id": facultyID,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// SeedPeriodForNow inserts a bell-schedule slot that opened a minute ago
// and a timetable entry putting the faculty member in it today, so an
// upload made right now falls inside the matching window.
func SeedPeriodForNow(t *testing.T, database *sql.DB, facultyID int64, periodNumber int, length time.Duration) {
	t.Helper()

	start := time.Now().Add(-1 * time.Minute)
	end := start.Add(length)

	const periodQ = `INSERT INTO period_timings (period_number, start_time, end_time) VALUES (?, ?, ?)`
	if _, err := database.Exec(periodQ, periodNumber, start.Format("03:04 PM"), end.Format("03:04 PM")); err != nil {
		t.Fatalf("seed period %d: %v", periodNumber, err)
	}

	const slotQ = `INSERT INTO timetable_entries (faculty_id, weekday, period_number, subject, class_group) VALUES (?, ?, ?, ?, ?)`
	if _, err := database.Exec(slotQ, facultyID, int(time.Now().Weekday()), periodNumber, "Mathematics", "10-A"); err != nil {
		t.Fatalf("seed timetable slot: %v", err)
	}
}

// SeedTimetableEntry links a faculty member to an existing bell-schedule
// period on the given weekday.
func SeedTimetableEntry(t *testing.T, database *sql.DB, facultyID int64, weekday time.Weekday, periodNumber int) {
	t.Helper()
	const q = `INSERT INTO timetable_entries (faculty_id, weekday, period_number, subject, class_group) VALUES (?, ?, ?, ?, ?)`
	if _, err := database.Exec(q, facultyID, int(weekday), periodNumber, "Physics", "12-B"); err != nil {
		t.Fatalf("seed timetable slot: %v", err)
	}
}

// UploadToStaging PUTs a file into the staging bucket under the given key
// the way the presigned-upload client would.
func UploadToStaging(t *testing.T, strg port.Storage, objectKey, contentType string, data []byte) {
	t.Helper()
	err := strg.SaveFile(t.Context(), "staging", objectKey, bytes.NewReader(data), int64(len(data)), map[string]string{
		"Content-Type": contentType,
	})
	if err != nil {
		t.Fatalf("upload %q to staging: %v", objectKey, err)
	}
}
