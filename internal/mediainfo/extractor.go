package mediainfo

import (
	"context"
	"log"
	"time"
)

// DefaultAttemptTimeout bounds one mirror attempt (open + analyze), so the
// rich path as a whole is bounded by mirrors × timeout.
const DefaultAttemptTimeout = 10 * time.Second

// extractState tracks the fallback chain explicitly instead of threading
// control flow through error handling.
type extractState int

const (
	stateNotStarted extractState = iota
	stateRichAttempted
	stateFallbackAttempted
	stateDone
)

// extraction is the per-upload run. A fresh one is built for every Extract
// call, so a single Extractor is safe to share across requests.
type extraction struct {
	state extractState
	md    VideoMetadata
}

// Extractor produces the richest VideoMetadata it can for a file: remote
// analysis mirrors in order, then one shot at the native fallback probe.
// Extract never fails; the worst outcome is a metadata record full of
// Unknown sentinels with Source NONE.
type Extractor struct {
	openers        []EngineOpener
	probe          FallbackProber
	attemptTimeout time.Duration
}

func NewExtractor(openers []EngineOpener, probe FallbackProber, attemptTimeout time.Duration) *Extractor {
	if attemptTimeout <= 0 {
		attemptTimeout = DefaultAttemptTimeout
	}
	return &Extractor{openers: openers, probe: probe, attemptTimeout: attemptTimeout}
}

// Extract inspects the blob and returns a complete metadata record. The
// file-system modification time seeds CreationTime; an embedded timestamp
// from either extraction path replaces it when available.
func (e *Extractor) Extract(ctx context.Context, blob Blob, in ExtractInput) VideoMetadata {
	run := &extraction{state: stateNotStarted, md: NewUnknownMetadata(in.Filename, in.FileSizeBytes, in.MimeType)}
	if !in.ModTime.IsZero() {
		mod := in.ModTime
		run.md.CreationTime = &mod
	}

	report := e.tryMirrors(ctx, blob)
	run.state = stateRichAttempted
	if report != nil {
		applyReport(&run.md, report)
		run.md.Source = SourceRichAnalysis
		run.state = stateDone
		return run.md
	}

	// Fallback runs exactly once, only after every mirror has failed.
	var partial Partial
	if e.probe != nil {
		partial = e.probe.Probe(ctx, blob, in.MimeType)
	}
	run.state = stateFallbackAttempted

	if !partial.Empty() {
		applyPartial(&run.md, partial)
		run.md.Source = SourceBasicFallback
	} else {
		run.md.Source = SourceNone
	}
	run.state = stateDone
	return run.md
}

// ExtractInput carries what the caller already knows from storage before
// any byte of the file has been read.
type ExtractInput struct {
	Filename      string
	FileSizeBytes int64
	MimeType      string
	ModTime       time.Time
}

// tryMirrors walks the openers in order and returns the first successful
// report, or nil once every mirror has failed. Each attempt is bounded by
// the per-attempt timeout; a cancelled caller stops the walk.
func (e *Extractor) tryMirrors(ctx context.Context, blob Blob) *Report {
	for _, opener := range e.openers {
		attemptCtx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
		report, err := analyzeOnce(attemptCtx, opener, blob)
		cancel()
		if err == nil {
			return report
		}
		log.Printf("analysis mirror %q failed: %v", opener.Name(), err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil
}

// analyzeOnce opens an engine and guarantees it is closed again on every
// exit path, success or not.
func analyzeOnce(ctx context.Context, opener EngineOpener, blob Blob) (*Report, error) {
	eng, err := opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := eng.Close(); cerr != nil {
			log.Printf("closing engine %q: %v", opener.Name(), cerr)
		}
	}()
	return eng.Analyze(ctx, blob)
}

// applyReport maps a rich track report onto the metadata record.
func applyReport(md *VideoMetadata, r *Report) {
	if d := r.General.DurationSeconds; d > 0 {
		dur := d
		md.DurationSeconds = &dur
		md.Duration = FormatDuration(d)
	}
	if r.General.Format != "" {
		md.ContainerFormat = r.General.Format
	}
	if r.General.OverallBitrate != "" {
		md.Bitrate = r.General.OverallBitrate
	}
	if r.General.EncodedDate != nil {
		enc := *r.General.EncodedDate
		md.CreationTime = &enc
	}

	if len(r.Video) > 0 {
		v := r.Video[0]
		if v.Format != "" {
			md.VideoCodec = v.Format
		}
		if v.Width > 0 && v.Height > 0 {
			w, h := v.Width, v.Height
			md.Width = &w
			md.Height = &h
			md.Resolution = FormatResolution(v.Width, v.Height)
		}
		md.FrameRate = FormatFrameRate(v.FrameRate)
	}

	// A successful analysis with no audio track means there is no audio,
	// which is not the same as not knowing.
	if len(r.Audio) == 0 {
		md.AudioCodec = AudioNone
	} else if r.Audio[0].Format != "" {
		md.AudioCodec = r.Audio[0].Format
	}
}

// applyPartial merges fallback findings without ever downgrading a field
// that already has a value.
func applyPartial(md *VideoMetadata, p Partial) {
	if p.DurationSeconds != nil && md.DurationSeconds == nil {
		dur := *p.DurationSeconds
		md.DurationSeconds = &dur
		md.Duration = FormatDuration(dur)
	}
	if p.Width != nil && p.Height != nil && md.Width == nil {
		w, h := *p.Width, *p.Height
		md.Width = &w
		md.Height = &h
		md.Resolution = FormatResolution(w, h)
	}
	if p.Container != "" && md.ContainerFormat == Unknown {
		md.ContainerFormat = p.Container
	}
	// The container's embedded timestamp beats the mod-time seed, same as
	// a rich report's encoded date does.
	if p.CreationTime != nil {
		ct := *p.CreationTime
		md.CreationTime = &ct
	}
}
