package port

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes    int64
	ContentType  string
	LastModified time.Time
}

// FileBlob is an open handle on a stored object, readable by byte range so
// large videos never have to sit in memory whole.
type FileBlob interface {
	io.ReaderAt
	io.Closer
	Size() int64
}

// Storage defines file storage operations.
type Storage interface {
	InitBucket(bucket string) error
	GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error)
	GeneratePresignedUploadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error)
	FileExists(ctx context.Context, bucket, fileKey string) (bool, error)
	StatFile(ctx context.Context, bucket, fileKey string) (FileInfo, error)
	RemoveFile(ctx context.Context, bucket, fileKey string) error
	OpenFile(ctx context.Context, bucket, fileKey string) (FileBlob, error)
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
	CopyFile(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error
}
