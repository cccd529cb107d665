package recording

import (
	"fmt"
	"time"
)

// Bucket layout: uploads land in staging, validated files move to
// recordings, archived files end up in archive.
const (
	StagingBucket    = "staging"
	RecordingsBucket = "recordings"
	ArchiveBucket    = "archive"
)

const (
	MinFileSize = 1024                   // 1 KB
	MaxFileSize = 2 * 1024 * 1024 * 1024 // 2 GB
)

const (
	UploadURLTTL   = 15 * time.Minute
	DownloadURLTTL = 1 * time.Hour

	// ArchiveAfter is how long a qualified recording stays in the hot
	// bucket before the backlog sweeper archives it.
	ArchiveAfter = 1 * time.Hour
)

var AllowedMimeTypes = map[string]bool{
	"video/mp4":        true,
	"video/quicktime":  true,
	"video/x-msvideo":  true,
	"video/x-ms-wmv":   true,
	"video/x-flv":      true,
	"video/webm":       true,
	"video/x-matroska": true,
}

func IsMimeTypeAllowed(mimeType string) bool {
	return AllowedMimeTypes[mimeType]
}

var mimeExtensions = map[string]string{
	"video/mp4":        ".mp4",
	"video/quicktime":  ".mov",
	"video/x-msvideo":  ".avi",
	"video/x-ms-wmv":   ".wmv",
	"video/x-flv":      ".flv",
	"video/webm":       ".webm",
	"video/x-matroska": ".mkv",
}

func MimeTypeToExtension(mimeType string) (string, error) {
	ext, ok := mimeExtensions[mimeType]
	if !ok {
		return "", fmt.Errorf("no extension known for mime-type %q", mimeType)
	}
	return ext, nil
}
