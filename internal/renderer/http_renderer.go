package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/metaview/recordings-ms-go/internal/db"
	"github.com/metaview/recordings-ms-go/internal/port"
)

type httpRenderer struct {
	cache port.Cache
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) port.HTTPRenderer {
	return &httpRenderer{cache: cache}
}

// RenderGetRecording fetches recording details either from cache or from the
// wrapped use case. It returns the JSON encoded output and a quoted ETag
// string. Cache entries live under the requesting faculty's key, so a
// request for someone else's recording always reaches the use case, which
// rejects it.
func (r *httpRenderer) RenderGetRecording(ctx context.Context, getter port.RecordingGetter, facultyID int64, id db.UUID) ([]byte, string, error) {
	raw, err := r.cache.GetRecordingDetails(ctx, facultyID, id)
	etag, errEtag := r.cache.GetEtagRecordingDetails(ctx, facultyID, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := getter.GetRecording(ctx, facultyID, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	r.cache.SetRecordingDetails(ctx, facultyID, id, raw, out.ValidUntil)
	r.cache.SetEtagRecordingDetails(ctx, facultyID, id, etag, out.ValidUntil)

	return raw, etag, nil
}
