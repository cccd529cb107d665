package storage

import (
	"fmt"

	"github.com/metaview/recordings-ms-go/internal/usecase/recording"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return recording.ErrObjectNotFound
	case "NoSuchBucket":
		return recording.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return recording.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", recording.ErrInternal, err)
	}
}
