package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/redis/go-redis/v9"
)

func makeTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	// spin up in-memory Redis
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	t.Cleanup(mr.Close)
	// point the real client at it
	rdb := redis.NewClient(&redis.Options{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
	})
	return &Cache{client: rdb}, mr
}

func TestGetSetDeleteRecordingDetails(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	id := db.NewUUID()
	payload := []byte(`{"status":"validated","url":"https://example.com/download"}`)

	// 1) Cache miss
	got, err := c.GetRecordingDetails(ctx, 42, id)
	if err != nil {
		t.Fatalf("GetRecordingDetails miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetRecordingDetails miss: got %v; want nil", got)
	}

	// 2) Set then hit
	c.SetRecordingDetails(ctx, 42, id, payload, time.Now().Add(2*time.Minute))
	got, err = c.GetRecordingDetails(ctx, 42, id)
	if err != nil {
		t.Fatalf("GetRecordingDetails hit: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("GetRecordingDetails hit: got %s; want %s", got, payload)
	}

	// entries are scoped to the owning faculty
	other, err := c.GetRecordingDetails(ctx, 7, id)
	if err != nil {
		t.Fatalf("GetRecordingDetails other faculty: %v", err)
	}
	if other != nil {
		t.Errorf("GetRecordingDetails other faculty: got %s; want nil", other)
	}

	// the entry carries a TTL derived from validUntil
	ttl := mr.TTL(detailsKey(42, id.String()))
	if ttl <= 0 || ttl > 2*time.Minute {
		t.Errorf("TTL = %v; want within (0, 2m]", ttl)
	}

	// 3) Delete then miss again
	if err := c.DeleteRecordingDetails(ctx, 42, id); err != nil {
		t.Fatalf("DeleteRecordingDetails: %v", err)
	}
	got, err = c.GetRecordingDetails(ctx, 42, id)
	if err != nil {
		t.Fatalf("GetRecordingDetails after delete: %v", err)
	}
	if got != nil {
		t.Errorf("GetRecordingDetails after delete: got %s; want nil", got)
	}
}

func TestGetSetDeleteEtagRecordingDetails(t *testing.T) {
	c, _ := makeTestCache(t)
	ctx := context.Background()

	id := db.NewUUID()

	// 1) Cache miss
	etag, err := c.GetEtagRecordingDetails(ctx, 42, id)
	if err != nil {
		t.Fatalf("GetEtagRecordingDetails miss: %v", err)
	}
	if etag != "" {
		t.Errorf("GetEtagRecordingDetails miss: got %q; want empty", etag)
	}

	// 2) Set then hit
	c.SetEtagRecordingDetails(ctx, 42, id, `"abc12345"`, time.Now().Add(time.Minute))
	etag, err = c.GetEtagRecordingDetails(ctx, 42, id)
	if err != nil {
		t.Fatalf("GetEtagRecordingDetails hit: %v", err)
	}
	if etag != `"abc12345"` {
		t.Errorf("GetEtagRecordingDetails hit: got %q; want %q", etag, `"abc12345"`)
	}

	// 3) Delete then miss again
	if err := c.DeleteEtagRecordingDetails(ctx, 42, id); err != nil {
		t.Fatalf("DeleteEtagRecordingDetails: %v", err)
	}
	etag, err = c.GetEtagRecordingDetails(ctx, 42, id)
	if err != nil {
		t.Fatalf("GetEtagRecordingDetails after delete: %v", err)
	}
	if etag != "" {
		t.Errorf("GetEtagRecordingDetails after delete: got %q; want empty", etag)
	}
}

func TestRecordingDetailsExpiry(t *testing.T) {
	c, mr := makeTestCache(t)
	ctx := context.Background()

	id := db.NewUUID()
	c.SetRecordingDetails(ctx, 42, id, []byte("data"), time.Now().Add(time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetRecordingDetails(ctx, 42, id)
	if err != nil {
		t.Fatalf("GetRecordingDetails after expiry: %v", err)
	}
	if got != nil {
		t.Errorf("GetRecordingDetails after expiry: got %s; want nil", got)
	}
}

func TestGetRecordingDetails_Error(t *testing.T) {
	c, mr := makeTestCache(t)
	mr.Close()

	_, err := c.GetRecordingDetails(context.Background(), 42, db.NewUUID())
	if err == nil {
		t.Error("expected an error from a dead redis")
	}
}
