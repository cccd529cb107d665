package mediainfo

import (
	"fmt"
	"time"
)

// Unknown is the sentinel for every display field whose value could not be
// established. Consumers rely on it being present instead of a missing or
// empty field.
const Unknown = "Unknown"

// AudioNone marks a file that rich analysis positively identified as having
// no audio track. Distinct from Unknown, which means analysis itself failed.
const AudioNone = "None"

// Source records which extraction stage produced the metadata.
type Source string

const (
	SourceRichAnalysis  Source = "RICH_ANALYSIS"
	SourceBasicFallback Source = "BASIC_FALLBACK"
	SourceNone          Source = "NONE"
)

// VideoMetadata is the result of inspecting one uploaded file. Display
// fields always carry a value or the Unknown sentinel; raw numeric fields
// are pointers and omitted when unknown. Built once per validation attempt
// and never mutated afterwards.
type VideoMetadata struct {
	Filename      string `json:"filename"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	MimeType      string `json:"mime_type"`

	Duration        string   `json:"duration"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Resolution      string   `json:"resolution"`
	Width           *int     `json:"width,omitempty"`
	Height          *int     `json:"height,omitempty"`
	FrameRate       string   `json:"frame_rate"`

	VideoCodec      string `json:"video_codec"`
	AudioCodec      string `json:"audio_codec"`
	ContainerFormat string `json:"container_format"`
	Bitrate         string `json:"bitrate"`

	CreationTime *time.Time `json:"creation_time,omitempty"`

	Source Source `json:"source"`
}

// NewUnknownMetadata seeds a metadata record with everything the caller
// knows before any byte of the file has been inspected.
func NewUnknownMetadata(filename string, sizeBytes int64, mimeType string) VideoMetadata {
	if mimeType == "" {
		mimeType = Unknown
	}
	return VideoMetadata{
		Filename:        filename,
		FileSizeBytes:   sizeBytes,
		MimeType:        mimeType,
		Duration:        Unknown,
		Resolution:      Unknown,
		FrameRate:       Unknown,
		VideoCodec:      Unknown,
		AudioCodec:      Unknown,
		ContainerFormat: Unknown,
		Bitrate:         Unknown,
		Source:          SourceNone,
	}
}

// FormatResolution renders "{w}x{h}" for positive dimensions, Unknown
// otherwise.
func FormatResolution(width, height int) string {
	if width <= 0 || height <= 0 {
		return Unknown
	}
	return fmt.Sprintf("%dx%d", width, height)
}
