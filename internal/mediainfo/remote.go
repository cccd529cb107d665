package mediainfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"
)

const (
	// Byte windows streamed to the analysis service. moov atoms sit at the
	// front of fast-start files and at the back of everything else, so both
	// ends are sent.
	defaultHeadWindow = int64(8 << 20)
	defaultTailWindow = int64(4 << 20)

	copyChunkSize = 512 << 10

	readyPath   = "/v1/ready"
	analyzePath = "/v1/analyze"
)

// RemoteOpener acquires analysis engines from one mirror of the remote
// analysis service. Mirrors are interchangeable; the extractor walks a list
// of openers in order.
type RemoteOpener struct {
	BaseURL string
	Client  *http.Client

	HeadWindow int64
	TailWindow int64
}

// NewRemoteOpeners builds one opener per mirror URL, sharing a client.
func NewRemoteOpeners(mirrors []string, client *http.Client) []EngineOpener {
	if client == nil {
		client = &http.Client{}
	}
	openers := make([]EngineOpener, 0, len(mirrors))
	for _, m := range mirrors {
		openers = append(openers, &RemoteOpener{BaseURL: m, Client: client})
	}
	return openers
}

func (o *RemoteOpener) Name() string { return o.BaseURL }

// Open checks the mirror is ready and hands back an engine bound to it.
// A dead mirror fails here, before any file bytes have been streamed.
func (o *RemoteOpener) Open(ctx context.Context) (Engine, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+readyPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	resp, err := o.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: mirror %s not ready (status %d)", ErrEngineUnavailable, o.BaseURL, resp.StatusCode)
	}

	head, tail := o.HeadWindow, o.TailWindow
	if head <= 0 {
		head = defaultHeadWindow
	}
	if tail <= 0 {
		tail = defaultTailWindow
	}
	return &remoteEngine{
		base:   o.BaseURL,
		client: o.client(),
		head:   head,
		tail:   tail,
	}, nil
}

func (o *RemoteOpener) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return http.DefaultClient
}

// remoteEngine is one opened handle on a mirror. Close cancels any in-flight
// analysis and makes the handle unusable, so release is unconditional even
// when the caller abandons a slow request.
type remoteEngine struct {
	base   string
	client *http.Client
	head   int64
	tail   int64

	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
}

type analyzeMeta struct {
	Size       int64 `json:"size"`
	HeadBytes  int64 `json:"head_bytes"`
	TailOffset int64 `json:"tail_offset,omitempty"`
	TailBytes  int64 `json:"tail_bytes,omitempty"`
}

type wireTrack struct {
	Type            string  `json:"type"`
	Format          string  `json:"format"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	OverallBitrate  string  `json:"overall_bitrate,omitempty"`
	EncodedDate     string  `json:"encoded_date,omitempty"`
	Width           int     `json:"width,omitempty"`
	Height          int     `json:"height,omitempty"`
	FrameRate       float64 `json:"frame_rate,omitempty"`
}

type wireReport struct {
	Tracks []wireTrack `json:"tracks"`
}

func (e *remoteEngine) Analyze(ctx context.Context, blob Blob) (*Report, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: engine already closed", ErrEngineUnavailable)
	}
	actx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
		cancel()
	}()

	meta, headN, tailOff, tailN := planWindows(blob.Size(), e.head, e.tail)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := writeAnalyzeBody(mw, blob, meta, headN, tailOff, tailN)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(actx, http.MethodPost, e.base+analyzePath, pr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: mirror %s: %v", ErrEngineUnavailable, e.base, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decoding
	case resp.StatusCode == http.StatusUnsupportedMediaType || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: mirror %s rejected the file (status %d)", ErrUnsupportedMedia, e.base, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: mirror %s returned status %d", ErrEngineUnavailable, e.base, resp.StatusCode)
	}

	var wire wireReport
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: decoding report from %s: %v", ErrEngineUnavailable, e.base, err)
	}
	report := buildReport(wire)
	if report == nil {
		return nil, fmt.Errorf("%w: mirror %s produced an empty report", ErrUnsupportedMedia, e.base)
	}
	return report, nil
}

func (e *remoteEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.cancel != nil {
		e.cancel()
	}
	return nil
}

// planWindows bounds how much of the file travels over the wire: a head
// window, plus a tail window when the file extends past the head.
func planWindows(size, head, tail int64) (analyzeMeta, int64, int64, int64) {
	headN := head
	if headN > size {
		headN = size
	}
	var tailOff, tailN int64
	if remaining := size - headN; remaining > 0 {
		tailN = tail
		if tailN > remaining {
			tailN = remaining
		}
		tailOff = size - tailN
	}
	meta := analyzeMeta{Size: size, HeadBytes: headN, TailOffset: tailOff, TailBytes: tailN}
	return meta, headN, tailOff, tailN
}

// writeAnalyzeBody streams the multipart request: a meta JSON field, then
// the head and tail windows copied chunk by chunk from the blob.
func writeAnalyzeBody(mw *multipart.Writer, blob Blob, meta analyzeMeta, headN, tailOff, tailN int64) error {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := mw.WriteField("meta", string(metaJSON)); err != nil {
		return err
	}

	buf := make([]byte, copyChunkSize)

	headPart, err := mw.CreateFormFile("head", "head.bin")
	if err != nil {
		return err
	}
	if _, err := io.CopyBuffer(headPart, io.NewSectionReader(blob, 0, headN), buf); err != nil {
		return err
	}

	if tailN > 0 {
		tailPart, err := mw.CreateFormFile("tail", "tail.bin")
		if err != nil {
			return err
		}
		if _, err := io.CopyBuffer(tailPart, io.NewSectionReader(blob, tailOff, tailN), buf); err != nil {
			return err
		}
	}
	return nil
}

// buildReport maps the wire shape onto Report. A report without at least a
// General track is treated as empty.
func buildReport(wire wireReport) *Report {
	var r Report
	var hasGeneral bool
	for _, t := range wire.Tracks {
		switch t.Type {
		case "General":
			hasGeneral = true
			r.General = GeneralTrack{
				Format:          t.Format,
				DurationSeconds: t.DurationSeconds,
				OverallBitrate:  t.OverallBitrate,
				EncodedDate:     parseEncodedDate(t.EncodedDate),
			}
		case "Video":
			r.Video = append(r.Video, VideoTrack{
				Format:    t.Format,
				Width:     t.Width,
				Height:    t.Height,
				FrameRate: t.FrameRate,
			})
		case "Audio":
			r.Audio = append(r.Audio, AudioTrack{Format: t.Format})
		}
	}
	if !hasGeneral {
		return nil
	}
	return &r
}

func parseEncodedDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05 MST", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}
