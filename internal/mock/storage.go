package mock

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/metaview/recordings-ms-go/internal/port"
)

// Blob implements port.FileBlob over an in-memory byte slice.
type Blob struct {
	*bytes.Reader
	CloseErr    error
	CloseCalled bool
}

func NewBlob(data []byte) *Blob {
	return &Blob{Reader: bytes.NewReader(data)}
}

func (b *Blob) Close() error {
	b.CloseCalled = true
	return b.CloseErr
}

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	OpenOut     *Blob
	ExistsOut   bool

	// captured inputs
	ObjectKey    string
	TTL          time.Duration
	SavedKey     string
	RemovedKeys  []string
	CopiedSrc    string
	CopiedDest   string
	CopiedSrcBkt string
	CopiedDstBkt string

	// errors
	InitBucketErr           error
	GenerateDownloadLinkErr error
	GenerateUploadLinkErr   error
	StatErr                 error
	RemoveErr               error
	OpenErr                 error
	SaveErr                 error
	CopyErr                 error
	FileExistsErr           error

	// call flags
	InitBucketCalled           bool
	GenerateDownloadLinkCalled bool
	GenerateUploadLinkCalled   bool
	StatCalled                 bool
	RemoveCalled               bool
	OpenCalled                 bool
	SaveCalled                 bool
	CopyCalled                 bool
	FileExistsCalled           bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.GenerateDownloadLinkCalled = true
	m.ObjectKey = fileKey
	m.TTL = expiry
	if m.GenerateDownloadLinkErr != nil {
		return "", m.GenerateDownloadLinkErr
	}
	return "https://example.com/download", nil
}

func (m *Storage) GeneratePresignedUploadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.GenerateUploadLinkCalled = true
	m.ObjectKey = fileKey
	m.TTL = expiry
	if m.GenerateUploadLinkErr != nil {
		return "", m.GenerateUploadLinkErr
	}
	return "https://example.com/upload", nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedKeys = append(m.RemovedKeys, bucket+"/"+fileKey)
	return m.RemoveErr
}

func (m *Storage) OpenFile(ctx context.Context, bucket, fileKey string) (port.FileBlob, error) {
	m.OpenCalled = true
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	if m.OpenOut != nil {
		return m.OpenOut, nil
	}
	return NewBlob([]byte("dummy")), nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.SavedKey = fileKey
	return m.SaveErr
}

func (m *Storage) CopyFile(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	m.CopyCalled = true
	m.CopiedSrcBkt = srcBucket
	m.CopiedSrc = srcKey
	m.CopiedDstBkt = destBucket
	m.CopiedDest = destKey
	return m.CopyErr
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}
