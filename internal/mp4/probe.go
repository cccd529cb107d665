// Package mp4 recovers header-level metadata from MP4/QuickTime containers
// by walking the box structure. It reads through an io.ReaderAt in bounded
// pieces: box headers in place, the moov payload buffered once, media data
// skipped by offset and never read.
package mp4

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// Info holds what a header scan can recover without decoding any samples.
type Info struct {
	MajorBrand      string
	TimeScale       uint32
	DurationSeconds float64
	Width           int
	Height          int
	CreationTime    time.Time // zero when the container carries none
}

var (
	ErrNoMovieHeader = errors.New("mp4: no movie header found")
	ErrTruncated     = errors.New("mp4: truncated box structure")
)

const (
	boxHeaderSize    = 8
	extendedBoxSize  = 16
	maxMoovSize      = 32 << 20
	maxSaneDimension = 10000

	// Seconds between the QuickTime epoch (1904-01-01) and the Unix epoch.
	mp4Epoch = 2082844800
)

// Probe scans the top-level boxes of the container. It returns an error for
// anything that is not a parseable MP4-family file; callers treat that as
// "nothing recovered", never as a fatal condition.
func Probe(ctx context.Context, r io.ReaderAt, size int64) (*Info, error) {
	info := &Info{}
	sawMoov := false

	var offset int64
	for offset+boxHeaderSize <= size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		boxSize, boxType, headerLen, err := readBoxHeader(r, offset, size)
		if err != nil {
			return nil, err
		}
		if offset+boxSize > size {
			return nil, fmt.Errorf("%w: box %q overruns file", ErrTruncated, boxType)
		}

		switch boxType {
		case "ftyp":
			if boxSize-headerLen >= 4 {
				var brand [4]byte
				if _, err := r.ReadAt(brand[:], offset+headerLen); err != nil {
					return nil, fmt.Errorf("%w: reading ftyp: %v", ErrTruncated, err)
				}
				info.MajorBrand = string(brand[:])
			}
		case "moov":
			payloadLen := boxSize - headerLen
			if payloadLen > maxMoovSize {
				return nil, fmt.Errorf("mp4: moov box of %d bytes exceeds limit", payloadLen)
			}
			buf := make([]byte, payloadLen)
			if _, err := r.ReadAt(buf, offset+headerLen); err != nil {
				return nil, fmt.Errorf("%w: reading moov: %v", ErrTruncated, err)
			}
			if err := parseMoov(buf, info); err != nil {
				return nil, err
			}
			sawMoov = true
		}

		offset += boxSize
	}

	if !sawMoov {
		return nil, ErrNoMovieHeader
	}
	return info, nil
}

// readBoxHeader returns the full box size (header included), its type and
// the header length. size==1 boxes carry a 64-bit size after the type;
// size==0 boxes extend to end of file.
func readBoxHeader(r io.ReaderAt, offset, fileSize int64) (int64, string, int64, error) {
	var hdr [boxHeaderSize]byte
	if _, err := r.ReadAt(hdr[:], offset); err != nil {
		return 0, "", 0, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	size32 := binary.BigEndian.Uint32(hdr[0:4])
	boxType := string(hdr[4:8])

	switch size32 {
	case 0:
		return fileSize - offset, boxType, boxHeaderSize, nil
	case 1:
		var ext [8]byte
		if _, err := r.ReadAt(ext[:], offset+boxHeaderSize); err != nil {
			return 0, "", 0, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		size64 := binary.BigEndian.Uint64(ext[:])
		if size64 < extendedBoxSize || size64 > math.MaxInt64 {
			return 0, "", 0, fmt.Errorf("%w: invalid extended size %d for box %q", ErrTruncated, size64, boxType)
		}
		return int64(size64), boxType, extendedBoxSize, nil
	default:
		if size32 < boxHeaderSize {
			return 0, "", 0, fmt.Errorf("%w: invalid size %d for box %q", ErrTruncated, size32, boxType)
		}
		return int64(size32), boxType, boxHeaderSize, nil
	}
}

// parseMoov walks the buffered moov payload: mvhd for timescale/duration/
// creation time, the first sane trak/tkhd for dimensions.
func parseMoov(buf []byte, info *Info) error {
	return walkChildren(buf, func(typ string, payload []byte) error {
		switch typ {
		case "mvhd":
			return parseMvhd(payload, info)
		case "trak":
			return walkChildren(payload, func(sub string, subPayload []byte) error {
				if sub == "tkhd" {
					parseTkhd(subPayload, info)
				}
				return nil
			})
		}
		return nil
	})
}

// walkChildren iterates the boxes packed inside a buffered payload.
func walkChildren(buf []byte, fn func(typ string, payload []byte) error) error {
	offset := 0
	for offset+boxHeaderSize <= len(buf) {
		size := int(binary.BigEndian.Uint32(buf[offset : offset+4]))
		typ := string(buf[offset+4 : offset+8])
		headerLen := boxHeaderSize

		switch size {
		case 0:
			size = len(buf) - offset
		case 1:
			if offset+extendedBoxSize > len(buf) {
				return fmt.Errorf("%w: extended header for %q", ErrTruncated, typ)
			}
			size64 := binary.BigEndian.Uint64(buf[offset+8 : offset+16])
			if size64 < extendedBoxSize || size64 > uint64(len(buf)-offset) {
				return fmt.Errorf("%w: extended size %d for box %q", ErrTruncated, size64, typ)
			}
			size = int(size64)
			headerLen = extendedBoxSize
		}

		if size < headerLen || offset+size > len(buf) {
			return fmt.Errorf("%w: box %q size %d", ErrTruncated, typ, size)
		}
		if err := fn(typ, buf[offset+headerLen:offset+size]); err != nil {
			return err
		}
		offset += size
	}
	return nil
}

func parseMvhd(payload []byte, info *Info) error {
	if len(payload) < 20 {
		return fmt.Errorf("%w: mvhd too small", ErrTruncated)
	}

	var creation, duration uint64
	var timeScale uint32
	if payload[0] == 0 {
		creation = uint64(binary.BigEndian.Uint32(payload[4:8]))
		timeScale = binary.BigEndian.Uint32(payload[12:16])
		duration = uint64(binary.BigEndian.Uint32(payload[16:20]))
	} else {
		if len(payload) < 32 {
			return fmt.Errorf("%w: mvhd v1 too small", ErrTruncated)
		}
		creation = binary.BigEndian.Uint64(payload[4:12])
		timeScale = binary.BigEndian.Uint32(payload[20:24])
		duration = binary.BigEndian.Uint64(payload[24:32])
	}

	if timeScale > 0 && duration > 0 {
		info.TimeScale = timeScale
		info.DurationSeconds = float64(duration) / float64(timeScale)
	}
	// Values at or below the epoch offset mean "unset" in practice.
	if creation > mp4Epoch {
		info.CreationTime = time.Unix(int64(creation-mp4Epoch), 0).UTC()
	}
	return nil
}

// parseTkhd extracts 16.16 fixed-point dimensions. Audio and hint tracks
// carry zero width/height, so the first non-zero, sane pair wins.
func parseTkhd(payload []byte, info *Info) {
	if len(payload) < 1 {
		return
	}

	var width, height uint32
	if payload[0] == 0 {
		if len(payload) < 84 {
			return
		}
		width = binary.BigEndian.Uint32(payload[76:80]) >> 16
		height = binary.BigEndian.Uint32(payload[80:84]) >> 16
	} else {
		if len(payload) < 96 {
			return
		}
		width = binary.BigEndian.Uint32(payload[88:92]) >> 16
		height = binary.BigEndian.Uint32(payload[92:96]) >> 16
	}

	if info.Width == 0 && width > 0 && width < maxSaneDimension {
		info.Width = int(width)
	}
	if info.Height == 0 && height > 0 && height < maxSaneDimension {
		info.Height = int(height)
	}
}
