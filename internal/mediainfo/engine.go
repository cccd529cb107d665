package mediainfo

import (
	"context"
	"errors"
	"io"
	"time"
)

// Blob is the chunked byte-range view of an uploaded file: a size accessor
// plus offset reads. Nothing in this package ever assumes the whole file
// fits in memory. *io.SectionReader and storage object handles satisfy it.
type Blob interface {
	io.ReaderAt
	Size() int64
}

var (
	// ErrEngineUnavailable means the analysis backend could not be reached
	// or opened at all.
	ErrEngineUnavailable = errors.New("analysis engine unavailable")
	// ErrUnsupportedMedia means the backend reached the bytes but could not
	// make sense of them.
	ErrUnsupportedMedia = errors.New("unsupported media")
)

// Report is the track list produced by a rich analysis backend, mirroring
// the usual General/Video/Audio track layout of media inspectors.
type Report struct {
	General GeneralTrack
	Video   []VideoTrack
	Audio   []AudioTrack
}

type GeneralTrack struct {
	Format          string
	DurationSeconds float64
	OverallBitrate  string
	EncodedDate     *time.Time
}

type VideoTrack struct {
	Format    string
	Width     int
	Height    int
	FrameRate float64
}

type AudioTrack struct {
	Format string
}

// Engine is one opened analysis handle. Analyze may read arbitrary byte
// ranges of the blob; Close must be called on every exit path once the
// handle has been opened, whatever Analyze returned.
type Engine interface {
	Analyze(ctx context.Context, blob Blob) (*Report, error)
	Close() error
}

// EngineOpener acquires an Engine. Each mirror of a remote analysis service
// is its own opener; openers are tried in order by the extractor.
type EngineOpener interface {
	Open(ctx context.Context) (Engine, error)
	Name() string
}
