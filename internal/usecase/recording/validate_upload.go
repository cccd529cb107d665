package recording

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/metaview/recordings-ms-go/internal/mediainfo"
	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/metaview/recordings-ms-go/internal/schedule"
)

type uploadValidatorSrv struct {
	repo       port.RecordingRepository
	schedules  port.ScheduleRepository
	strg       port.Storage
	extractor  port.MetadataExtractor
	cache      port.Cache
	dispatcher port.TaskDispatcher
}

// compile-time check: *uploadValidatorSrv must satisfy port.UploadValidator
var _ port.UploadValidator = (*uploadValidatorSrv)(nil)

// NewUploadValidator constructs an UploadValidator implementation.
func NewUploadValidator(
	repo port.RecordingRepository,
	schedules port.ScheduleRepository,
	strg port.Storage,
	extractor port.MetadataExtractor,
	cache port.Cache,
	dispatcher port.TaskDispatcher,
) port.UploadValidator {
	return &uploadValidatorSrv{repo, schedules, strg, extractor, cache, dispatcher}
}

// ValidateUpload inspects a staged upload, extracts its metadata, matches
// the recording window against the faculty's schedule for that day and
// moves the file into the recordings bucket. Extraction never fails the
// upload; gate checks (size, mime-type) and storage errors do, marking the
// recording failed and cleaning the staging file.
func (s *uploadValidatorSrv) ValidateUpload(ctx context.Context, in port.ValidateUploadInput) (*port.ValidateUploadOutput, error) {
	rec, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	if rec.FacultyID != in.FacultyID {
		return nil, ErrObjectNotFound
	}
	if rec.Status == model.RecordingStatusValidated {
		return buildValidateOutput(rec), nil
	}
	if rec.Status != model.RecordingStatusPending {
		return nil, ErrNotPending
	}

	// Cleanup function
	var finalErr error
	defer func() {
		if finalErr != nil {
			if err := s.cleanupFile(rec.ObjectKey); err != nil {
				log.Printf("cleanup failed for file %q: %v", rec.ObjectKey, err)
			}
			if markErr := s.markAsFailed(ctx, rec, finalErr.Error()); markErr != nil {
				log.Printf("markAsFailed failed for file %q: %v", rec.ObjectKey, markErr)
			}
		}
	}()

	info, err := s.strg.StatFile(ctx, StagingBucket, rec.ObjectKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			finalErr = fmt.Errorf("%w: staging file %q not found", ErrUploadRejected, rec.ObjectKey)
		} else {
			finalErr = fmt.Errorf("stats for file %q failed: %w", rec.ObjectKey, err)
		}
		return nil, finalErr
	}

	if info.SizeBytes < MinFileSize {
		finalErr = fmt.Errorf("%w: file %q too small: %d bytes (min size: %d bytes)", ErrUploadRejected, rec.ObjectKey, info.SizeBytes, MinFileSize)
		return nil, finalErr
	}
	if info.SizeBytes > MaxFileSize {
		finalErr = fmt.Errorf("%w: file %q too large: %d bytes (max size: %d bytes)", ErrUploadRejected, rec.ObjectKey, info.SizeBytes, MaxFileSize)
		return nil, finalErr
	}
	if !IsMimeTypeAllowed(info.ContentType) {
		finalErr = fmt.Errorf("%w: unsupported mime-type %q for file %q", ErrUploadRejected, info.ContentType, rec.ObjectKey)
		return nil, finalErr
	}

	md := s.extractMetadata(ctx, rec, info)
	window := recordingWindow(md)

	result, err := s.matchSchedule(ctx, in, window)
	if err != nil {
		finalErr = err
		return nil, finalErr
	}

	if err := s.moveFile(ctx, rec, info); err != nil {
		finalErr = fmt.Errorf("move file %q from staging to bucket %q failed: %w", rec.ObjectKey, RecordingsBucket, err)
		return nil, finalErr
	}

	applyValidation(rec, info, md, window, result)
	if err := s.repo.Update(ctx, rec); err != nil {
		finalErr = fmt.Errorf("failed updating recording: %w", err)
		return nil, finalErr
	}

	if err := s.cache.DeleteRecordingDetails(ctx, rec.FacultyID, rec.ID); err != nil {
		log.Printf("failed deleting cache for recording #%s: %v", rec.ID, err)
	}
	if err := s.cache.DeleteEtagRecordingDetails(ctx, rec.FacultyID, rec.ID); err != nil {
		log.Printf("failed deleting etag cache for recording #%s: %v", rec.ID, err)
	}

	if rec.IsQualified {
		if err := s.dispatcher.EnqueueArchiveRecording(ctx, rec.ID); err != nil {
			log.Printf("failed enqueueing archive task for recording #%s: %v", rec.ID, err)
		}
	}

	out := buildValidateOutput(rec)
	if result.Matched != nil {
		out.Validation.MatchedPeriodTime = result.Matched.DisplayTime()
	}
	return out, nil
}

// extractMetadata opens the staged file and runs the extraction pipeline.
// It never fails: an unopenable file yields a record of Unknown sentinels,
// seeded with whatever storage already knows.
func (s *uploadValidatorSrv) extractMetadata(ctx context.Context, rec *model.Recording, info port.FileInfo) mediainfo.VideoMetadata {
	input := mediainfo.ExtractInput{
		Filename:      rec.OriginalFilename,
		FileSizeBytes: info.SizeBytes,
		MimeType:      info.ContentType,
		ModTime:       info.LastModified,
	}

	blob, err := s.strg.OpenFile(ctx, StagingBucket, rec.ObjectKey)
	if err != nil {
		log.Printf("could not open staged file %q for analysis: %v", rec.ObjectKey, err)
		md := mediainfo.NewUnknownMetadata(input.Filename, input.FileSizeBytes, input.MimeType)
		if !input.ModTime.IsZero() {
			mod := input.ModTime
			md.CreationTime = &mod
		}
		md.Source = mediainfo.SourceNone
		return md
	}
	defer func() {
		if err := blob.Close(); err != nil {
			log.Printf("failed to close staged file %q: %v", rec.ObjectKey, err)
		}
	}()

	return s.extractor.Extract(ctx, blob, input)
}

// matchSchedule loads the day's periods and runs the matcher. A target
// period narrows the lookup to that slot alone.
func (s *uploadValidatorSrv) matchSchedule(ctx context.Context, in port.ValidateUploadInput, window *schedule.Window) (schedule.Result, error) {
	day := time.Now()
	if window != nil {
		day = window.Start
	}

	periods, err := s.schedules.PeriodsForFacultyDay(ctx, in.FacultyID, day.Weekday())
	if err != nil {
		return schedule.Result{}, fmt.Errorf("loading schedule failed: %w", err)
	}

	if in.TargetPeriod != nil {
		narrowed := filterPeriod(periods, *in.TargetPeriod)
		if len(narrowed) == 0 {
			return schedule.Result{Message: fmt.Sprintf("Period %d is not in the schedule for this day.", *in.TargetPeriod)}, nil
		}
		return schedule.Match(window, narrowed), nil
	}
	return schedule.Match(window, periods), nil
}

// recordingWindow derives the wall-clock recording span. Creation time is
// stored in UTC; periods are wall-clock local, so the window shifts into
// server-local time before matching. No creation time means no window.
func recordingWindow(md mediainfo.VideoMetadata) *schedule.Window {
	if md.CreationTime == nil {
		return nil
	}
	start := md.CreationTime.In(time.Local)
	end := start
	if md.DurationSeconds != nil {
		end = start.Add(time.Duration(*md.DurationSeconds * float64(time.Second)))
	}
	return &schedule.Window{Start: start, End: end}
}

func filterPeriod(periods []model.PeriodTiming, number int) []model.PeriodTiming {
	var out []model.PeriodTiming
	for _, p := range periods {
		if p.PeriodNumber == number {
			out = append(out, p)
		}
	}
	return out
}

// moveFile promotes the staged object into the recordings bucket under its
// final key, extension included.
func (s *uploadValidatorSrv) moveFile(ctx context.Context, rec *model.Recording, info port.FileInfo) error {
	ext, err := MimeTypeToExtension(info.ContentType)
	if err != nil {
		return err
	}
	newObjectKey := rec.ObjectKey + ext

	if err := s.strg.CopyFile(ctx, StagingBucket, rec.ObjectKey, RecordingsBucket, newObjectKey); err != nil {
		return err
	}
	if err := s.strg.RemoveFile(ctx, StagingBucket, rec.ObjectKey); err != nil {
		log.Printf("failed to clean up file %q in staging: %v", rec.ObjectKey, err)
	}

	rec.ObjectKey = newObjectKey
	rec.Bucket = RecordingsBucket
	return nil
}

// applyValidation writes the extraction and matching outcome onto the
// recording. Pure assembly: the matcher's message is kept verbatim.
func applyValidation(rec *model.Recording, info port.FileInfo, md mediainfo.VideoMetadata, window *schedule.Window, result schedule.Result) {
	size := info.SizeBytes
	mime := info.ContentType
	rec.Status = model.RecordingStatusValidated
	rec.SizeBytes = &size
	rec.MimeType = &mime
	rec.Metadata = model.Metadata{VideoMetadata: md}

	rec.IsQualified = result.Qualified
	rec.MatchedPeriod = nil
	if result.Matched != nil {
		n := result.Matched.PeriodNumber
		rec.MatchedPeriod = &n
	}
	rec.ValidationMessage = result.Message
	rec.VideoStartTime = nil
	rec.VideoEndTime = nil
	if window != nil {
		start, end := window.Start, window.End
		rec.VideoStartTime = &start
		rec.VideoEndTime = &end
	}
}

func (s *uploadValidatorSrv) cleanupFile(objectKey string) error {
	return s.strg.RemoveFile(context.Background(), StagingBucket, objectKey)
}

func (s *uploadValidatorSrv) markAsFailed(ctx context.Context, rec *model.Recording, reason string) error {
	rec.Status = model.RecordingStatusFailed
	rec.FailureMessage = &reason
	return s.repo.Update(ctx, rec)
}

// buildValidateOutput shapes the persisted recording for the caller.
func buildValidateOutput(rec *model.Recording) *port.ValidateUploadOutput {
	return &port.ValidateUploadOutput{
		ID:         rec.ID,
		Status:     rec.Status,
		Metadata:   rec.Metadata,
		Validation: buildValidationOutput(rec),
	}
}

// buildValidationOutput copies the qualification decision for display.
func buildValidationOutput(rec *model.Recording) port.ValidationOutput {
	out := port.ValidationOutput{
		IsQualified:    rec.IsQualified,
		MatchedPeriod:  rec.MatchedPeriod,
		Message:        rec.ValidationMessage,
		VideoStartTime: rec.VideoStartTime,
		VideoEndTime:   rec.VideoEndTime,
	}
	return out
}
