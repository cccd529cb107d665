package recording

import (
	"context"
	"fmt"
	"time"

	"github.com/metaview/recordings-ms-go/internal/model"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type uploadLinkGeneratorSrv struct {
	repo  port.RecordingRepository
	strg  port.Storage
	genID port.UUIDGen
}

// compile-time check: *uploadLinkGeneratorSrv must satisfy port.UploadLinkGenerator
var _ port.UploadLinkGenerator = (*uploadLinkGeneratorSrv)(nil)

// NewUploadLinkGenerator constructs an UploadLinkGenerator implementation.
func NewUploadLinkGenerator(repo port.RecordingRepository, strg port.Storage, genID port.UUIDGen) port.UploadLinkGenerator {
	return &uploadLinkGeneratorSrv{repo, strg, genID}
}

// GenerateUploadLink registers a pending recording and returns a presigned
// PUT link into the staging bucket.
func (s *uploadLinkGeneratorSrv) GenerateUploadLink(ctx context.Context, in port.GenerateUploadLinkInput) (port.GenerateUploadLinkOutput, error) {
	now := time.Now().UTC()
	objectKey := fmt.Sprintf("%s_%d", in.Name, now.UnixNano())

	rec := &model.Recording{
		ID:               s.genID(),
		FacultyID:        in.FacultyID,
		Bucket:           StagingBucket,
		ObjectKey:        objectKey,
		OriginalFilename: in.Name,
		Status:           model.RecordingStatusPending,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}

	url, err := s.strg.GeneratePresignedUploadURL(ctx, StagingBucket, objectKey, UploadURLTTL)
	if err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}

	return port.GenerateUploadLinkOutput{
		ID:  rec.ID,
		URL: url,
	}, nil
}
