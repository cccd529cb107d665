package mp4

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

// --- synthetic box builders ---

func box(typ string, payload []byte) []byte {
	b := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(b[0:4], uint32(8+len(payload)))
	copy(b[4:8], typ)
	copy(b[8:], payload)
	return b
}

func box64(typ string, payload []byte) []byte {
	b := make([]byte, 16+len(payload))
	binary.BigEndian.PutUint32(b[0:4], 1)
	copy(b[4:8], typ)
	binary.BigEndian.PutUint64(b[8:16], uint64(16+len(payload)))
	copy(b[16:], payload)
	return b
}

func ftyp(brand string) []byte {
	payload := make([]byte, 8)
	copy(payload[0:4], brand)
	return box("ftyp", payload)
}

func mvhdV0(creation, timeScale, duration uint32) []byte {
	payload := make([]byte, 100)
	payload[0] = 0
	binary.BigEndian.PutUint32(payload[4:8], creation)
	binary.BigEndian.PutUint32(payload[12:16], timeScale)
	binary.BigEndian.PutUint32(payload[16:20], duration)
	return box("mvhd", payload)
}

func mvhdV1(creation uint64, timeScale uint32, duration uint64) []byte {
	payload := make([]byte, 112)
	payload[0] = 1
	binary.BigEndian.PutUint64(payload[4:12], creation)
	binary.BigEndian.PutUint32(payload[20:24], timeScale)
	binary.BigEndian.PutUint64(payload[24:32], duration)
	return box("mvhd", payload)
}

func tkhdV0(width, height uint32) []byte {
	payload := make([]byte, 84)
	payload[0] = 0
	binary.BigEndian.PutUint32(payload[76:80], width<<16)
	binary.BigEndian.PutUint32(payload[80:84], height<<16)
	return box("tkhd", payload)
}

func tkhdV1(width, height uint32) []byte {
	payload := make([]byte, 96)
	payload[0] = 1
	binary.BigEndian.PutUint32(payload[88:92], width<<16)
	binary.BigEndian.PutUint32(payload[92:96], height<<16)
	return box("tkhd", payload)
}

func trak(children ...[]byte) []byte {
	return box("trak", bytes.Join(children, nil))
}

func moov(children ...[]byte) []byte {
	return box("moov", bytes.Join(children, nil))
}

func probeBytes(t *testing.T, data []byte) (*Info, error) {
	t.Helper()
	r := bytes.NewReader(data)
	return Probe(context.Background(), r, r.Size())
}

// --- tests ---

func TestProbe_FastStartFile(t *testing.T) {
	wantCreation := time.Date(2026, 2, 12, 9, 5, 0, 0, time.UTC)
	creation := uint32(wantCreation.Unix() + mp4Epoch)

	data := bytes.Join([][]byte{
		ftyp("isom"),
		moov(
			mvhdV0(creation, 1000, 125400),
			trak(tkhdV0(1920, 1080)),
		),
		box("mdat", make([]byte, 2048)),
	}, nil)

	info, err := probeBytes(t, data)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.MajorBrand != "isom" {
		t.Errorf("MajorBrand = %q; want %q", info.MajorBrand, "isom")
	}
	if info.DurationSeconds != 125.4 {
		t.Errorf("DurationSeconds = %v; want 125.4", info.DurationSeconds)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d; want 1920x1080", info.Width, info.Height)
	}
	if !info.CreationTime.Equal(wantCreation) {
		t.Errorf("CreationTime = %v; want %v", info.CreationTime, wantCreation)
	}
}

func TestProbe_MoovAtEnd(t *testing.T) {
	data := bytes.Join([][]byte{
		ftyp("mp42"),
		box("mdat", make([]byte, 4096)),
		moov(
			mvhdV0(0, 600, 36600),
			trak(tkhdV0(1280, 720)),
		),
	}, nil)

	info, err := probeBytes(t, data)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.DurationSeconds != 61 {
		t.Errorf("DurationSeconds = %v; want 61", info.DurationSeconds)
	}
	if info.Width != 1280 || info.Height != 720 {
		t.Errorf("dimensions = %dx%d; want 1280x720", info.Width, info.Height)
	}
	if !info.CreationTime.IsZero() {
		t.Errorf("CreationTime = %v; want zero for unset", info.CreationTime)
	}
}

func TestProbe_ExtendedSizeMdat(t *testing.T) {
	data := bytes.Join([][]byte{
		ftyp("isom"),
		box64("mdat", make([]byte, 1024)),
		moov(
			mvhdV0(0, 1000, 5000),
			trak(tkhdV0(640, 480)),
		),
	}, nil)

	info, err := probeBytes(t, data)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.DurationSeconds != 5 {
		t.Errorf("DurationSeconds = %v; want 5", info.DurationSeconds)
	}
}

func TestProbe_Version1Headers(t *testing.T) {
	wantCreation := time.Date(2025, 11, 3, 14, 0, 0, 0, time.UTC)
	creation := uint64(wantCreation.Unix() + mp4Epoch)

	data := bytes.Join([][]byte{
		ftyp("isom"),
		moov(
			mvhdV1(creation, 90000, 90000*75),
			trak(tkhdV1(3840, 2160)),
		),
	}, nil)

	info, err := probeBytes(t, data)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.DurationSeconds != 75 {
		t.Errorf("DurationSeconds = %v; want 75", info.DurationSeconds)
	}
	if info.Width != 3840 || info.Height != 2160 {
		t.Errorf("dimensions = %dx%d; want 3840x2160", info.Width, info.Height)
	}
	if !info.CreationTime.Equal(wantCreation) {
		t.Errorf("CreationTime = %v; want %v", info.CreationTime, wantCreation)
	}
}

func TestProbe_SkipsNonVideoTracks(t *testing.T) {
	data := bytes.Join([][]byte{
		ftyp("isom"),
		moov(
			mvhdV0(0, 1000, 10000),
			trak(tkhdV0(0, 0)), // audio track: no dimensions
			trak(tkhdV0(1920, 1080)),
		),
	}, nil)

	info, err := probeBytes(t, data)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d; want 1920x1080", info.Width, info.Height)
	}
}

func TestProbe_NoMoov(t *testing.T) {
	data := bytes.Join([][]byte{
		ftyp("isom"),
		box("mdat", make([]byte, 256)),
	}, nil)

	_, err := probeBytes(t, data)
	if !errors.Is(err, ErrNoMovieHeader) {
		t.Errorf("err = %v; want ErrNoMovieHeader", err)
	}
}

func TestProbe_NotAContainer(t *testing.T) {
	_, err := probeBytes(t, []byte("this is not an mp4 file at all, just text"))
	if err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestProbe_TruncatedBox(t *testing.T) {
	// moov header claims 4096 bytes but the file ends right after it.
	data := append(ftyp("isom"), 0, 0, 16, 0)
	data = append(data, []byte("moov")...)

	_, err := probeBytes(t, data)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("err = %v; want ErrTruncated", err)
	}
}

func TestProbe_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := bytes.Join([][]byte{
		ftyp("isom"),
		moov(mvhdV0(0, 1000, 1000)),
	}, nil)
	r := bytes.NewReader(data)

	_, err := Probe(ctx, r, r.Size())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v; want context.Canceled", err)
	}
}

func TestProbe_FinalBoxExtendsToEOF(t *testing.T) {
	// size==0 means "to end of file"; legal for a trailing box.
	moovPayload := bytes.Join([][]byte{
		mvhdV0(0, 1000, 42000),
		trak(tkhdV0(854, 480)),
	}, nil)
	openEnded := make([]byte, 8+len(moovPayload))
	binary.BigEndian.PutUint32(openEnded[0:4], 0)
	copy(openEnded[4:8], "moov")
	copy(openEnded[8:], moovPayload)

	data := append(ftyp("isom"), openEnded...)

	info, err := probeBytes(t, data)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.DurationSeconds != 42 {
		t.Errorf("DurationSeconds = %v; want 42", info.DurationSeconds)
	}
}
