package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) ([]byte, error) {
	log.Printf("getting entry in cache for recording #%s...", id)

	val, err := c.client.Get(ctx, detailsKey(facultyID, id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) GetEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) (string, error) {
	log.Printf("getting etag entry in cache for recording #%s...", id)

	val, err := c.client.Get(ctx, etagKey(facultyID, id.String())).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) SetRecordingDetails(ctx context.Context, facultyID int64, id db.UUID, data []byte, validUntil time.Time) {
	log.Printf("creating entry in cache for recording #%s, valid until %s...", id, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, detailsKey(facultyID, id.String()), data, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for recording #%s: %v", id, err)
	}
}

func (c *Cache) SetEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID, etag string, validUntil time.Time) {
	log.Printf("creating etag entry in cache for recording #%s, valid until %s...", id, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, etagKey(facultyID, id.String()), etag, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for etag of recording #%s: %v", id, err)
	}
}

func (c *Cache) DeleteRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) error {
	log.Printf("deleting entry in cache for recording #%s...", id)

	if err := c.client.Del(ctx, detailsKey(facultyID, id.String())).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) DeleteEtagRecordingDetails(ctx context.Context, facultyID int64, id db.UUID) error {
	log.Printf("deleting etag entry in cache for recording #%s...", id)

	if err := c.client.Del(ctx, etagKey(facultyID, id.String())).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// Keys carry the owning faculty so a cached entry can only ever be served
// back to its owner.
func detailsKey(facultyID int64, id string) string {
	return fmt.Sprintf("recording:%d:%s", facultyID, id)
}

func etagKey(facultyID int64, id string) string {
	return fmt.Sprintf("etag:recording:%d:%s", facultyID, id)
}
