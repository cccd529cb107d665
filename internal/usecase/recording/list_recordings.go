package recording

import (
	"context"

	"github.com/metaview/recordings-ms-go/internal/port"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type recordingListerSrv struct {
	repo port.RecordingRepository
}

// compile-time check: *recordingListerSrv must satisfy port.RecordingLister
var _ port.RecordingLister = (*recordingListerSrv)(nil)

// NewRecordingLister constructs a RecordingLister implementation.
func NewRecordingLister(repo port.RecordingRepository) port.RecordingLister {
	return &recordingListerSrv{repo}
}

// ListRecordings returns the faculty member's upload history, newest
// first. The limit is clamped to a sane page size.
func (s *recordingListerSrv) ListRecordings(ctx context.Context, in port.ListRecordingsInput) ([]port.RecordingSummaryOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	recs, err := s.repo.ListByFaculty(ctx, in.FacultyID, port.ListRecordingsOptions{
		Status:    in.Status,
		Qualified: in.Qualified,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}

	out := make([]port.RecordingSummaryOutput, 0, len(recs))
	for i := range recs {
		rec := &recs[i]
		out = append(out, port.RecordingSummaryOutput{
			ID:                rec.ID,
			Filename:          rec.OriginalFilename,
			Status:            rec.Status,
			IsQualified:       rec.IsQualified,
			MatchedPeriod:     rec.MatchedPeriod,
			ValidationMessage: rec.ValidationMessage,
			Duration:          rec.Metadata.Duration,
			Resolution:        rec.Metadata.Resolution,
			UploadedAt:        rec.CreatedAt,
		})
	}
	return out, nil
}
