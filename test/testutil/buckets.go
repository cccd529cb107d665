package testutil

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// RecordingBuckets is the bucket layout the service expects: uploads land
// in staging, validated files move to recordings, qualified ones end up in
// archive.
var RecordingBuckets = []string{"staging", "recordings", "archive"}

type TestBuckets struct {
	Cleanup func() error
}

// SetupTestBuckets (re)creates the three service buckets on the raw client
// and returns a cleanup that empties and removes them again.
func SetupTestBuckets(client *minio.Client) (*TestBuckets, error) {
	ctx := context.Background()

	for _, b := range RecordingBuckets {
		emptyBucket(ctx, client, b)
		_ = client.RemoveBucket(ctx, b)

		if err := client.MakeBucket(ctx, b, minio.MakeBucketOptions{}); err != nil {
			exists, err2 := client.BucketExists(ctx, b)
			if err2 != nil || !exists {
				return nil, fmt.Errorf("could not create bucket %q: %w", b, err)
			}
		}
	}

	cleanup := func() error {
		for _, b := range RecordingBuckets {
			emptyBucket(ctx, client, b)
			if err := client.RemoveBucket(ctx, b); err != nil {
				return fmt.Errorf("could not remove bucket %q: %w", b, err)
			}
		}
		return nil
	}

	return &TestBuckets{Cleanup: cleanup}, nil
}

func emptyBucket(ctx context.Context, client *minio.Client, bucket string) {
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			continue
		}
		_ = client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
	}
}

// CountObjects returns how many objects currently live in a bucket.
func CountObjects(ctx context.Context, client *minio.Client, bucket string) int {
	n := 0
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			continue
		}
		n++
	}
	return n
}
