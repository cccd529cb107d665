package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/metaview/recordings-ms-go/internal/api_context"
	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/mock"
	recordingUC "github.com/metaview/recordings-ms-go/internal/usecase/recording"
)

func TestDeleteRecordingHandler(t *testing.T) {
	validID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	tests := []struct {
		name           string
		ctxID          *db.UUID
		noFaculty      bool
		svcErr         error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:           "missing ID",
			ctxID:          nil,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "ID is required",
		},
		{
			name:           "missing faculty auth",
			ctxID:          &validID,
			noFaculty:      true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "faculty authentication is required",
		},
		{
			name:           "recording not found",
			ctxID:          &validID,
			svcErr:         recordingUC.ErrObjectNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "Recording not found",
		},
		{
			name:           "service error",
			ctxID:          &validID,
			svcErr:         errors.New("boom"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "Failed to delete recording",
		},
		{
			name:       "happy path",
			ctxID:      &validID,
			svcErr:     nil,
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mock.MockRecordingDeleter{Err: tc.svcErr}
			h := DeleteRecordingHandler(mockSvc)

			req := httptest.NewRequest(http.MethodDelete, "/recordings/"+validID.String(), nil)
			if tc.ctxID != nil {
				req = req.WithContext(context.WithValue(req.Context(), api_context.IDKey, *tc.ctxID))
			}
			if !tc.noFaculty {
				req = req.WithContext(context.WithValue(req.Context(), api_context.AuthFacultyIDKey, int64(42)))
			}

			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}

			if tc.wantStatus == http.StatusNoContent {
				if rec.Body.Len() != 0 {
					t.Errorf("expected empty body, got %q", rec.Body.String())
				}
				if mockSvc.ID != validID {
					t.Errorf("service got ID = %s; want %s", mockSvc.ID, validID)
				}
				if mockSvc.FacultyID != 42 {
					t.Errorf("service got faculty = %d; want 42", mockSvc.FacultyID)
				}
			} else {
				if tc.ctxID != nil && !errors.Is(tc.svcErr, recordingUC.ErrObjectNotFound) && tc.svcErr != nil {
					if mockSvc.ID != validID {
						t.Errorf("service got ID = %s; want %s", mockSvc.ID, validID)
					}
				}
				if !contains(rec.Body.String(), tc.wantBodySubstr) {
					t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBodySubstr)
				}
			}
		})
	}
}

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(haystack, needle)
}
