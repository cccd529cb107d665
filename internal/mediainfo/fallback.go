package mediainfo

import (
	"context"
	"strings"
	"time"

	"github.com/metaview/recordings-ms-go/internal/mp4"
)

// DefaultFallbackTimeout bounds how long the basic probe may hold up the
// pipeline before resolving empty.
const DefaultFallbackTimeout = 5 * time.Second

// Partial is what the basic fallback could recover. Nil/empty fields mean
// the probe learned nothing about them; merging never downgrades a known
// value.
type Partial struct {
	DurationSeconds *float64
	Width           *int
	Height          *int
	Container       string
	CreationTime    *time.Time
}

// Empty reports whether the probe recovered nothing at all.
func (p Partial) Empty() bool {
	return p.DurationSeconds == nil && p.Width == nil && p.Height == nil && p.Container == "" && p.CreationTime == nil
}

// FallbackProber recovers a minimal metadata subset with native container
// parsing when rich analysis is unavailable. It never returns an error:
// failure is an empty Partial.
type FallbackProber interface {
	Probe(ctx context.Context, blob Blob, mimeType string) Partial
}

// BasicProbe scans container boxes natively under a hard timeout.
type BasicProbe struct {
	Timeout time.Duration
}

// compile-time check: *BasicProbe must satisfy FallbackProber
var _ FallbackProber = (*BasicProbe)(nil)

func NewBasicProbe(timeout time.Duration) *BasicProbe {
	if timeout <= 0 {
		timeout = DefaultFallbackTimeout
	}
	return &BasicProbe{Timeout: timeout}
}

// Probe parses just enough of the container to recover duration and
// dimensions. On timeout or parse failure it resolves with an empty
// Partial rather than hanging the caller; cancelling the context stops any
// in-flight reads on every exit path, including the timeout one.
func (b *BasicProbe) Probe(ctx context.Context, blob Blob, mimeType string) Partial {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultFallbackTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type probeResult struct {
		info *mp4.Info
		err  error
	}
	ch := make(chan probeResult, 1)
	go func() {
		info, err := mp4.Probe(ctx, blob, blob.Size())
		ch <- probeResult{info, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return Partial{}
		}
		return partialFromInfo(res.info, mimeType)
	case <-ctx.Done():
		return Partial{}
	}
}

func partialFromInfo(info *mp4.Info, mimeType string) Partial {
	var p Partial
	if info.DurationSeconds > 0 {
		d := info.DurationSeconds
		p.DurationSeconds = &d
	}
	if info.Width > 0 && info.Height > 0 {
		w, h := info.Width, info.Height
		p.Width = &w
		p.Height = &h
	}
	p.Container = containerFromMime(mimeType)
	if !info.CreationTime.IsZero() {
		ct := info.CreationTime
		p.CreationTime = &ct
	}
	return p
}

var containerNames = map[string]string{
	"mp4":        "MP4",
	"quicktime":  "QuickTime",
	"webm":       "WebM",
	"x-matroska": "Matroska",
	"x-msvideo":  "AVI",
	"x-ms-wmv":   "WMV",
	"x-flv":      "FLV",
}

// containerFromMime guesses the container from the declared MIME subtype.
func containerFromMime(mimeType string) string {
	_, sub, ok := strings.Cut(mimeType, "/")
	if !ok || sub == "" {
		return ""
	}
	sub = strings.ToLower(strings.TrimSpace(sub))
	if name, ok := containerNames[sub]; ok {
		return name
	}
	return strings.ToUpper(sub)
}
