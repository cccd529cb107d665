package testutil

import (
	"bytes"
	"encoding/binary"
	"strings"
	"time"

	recordingSvc "github.com/metaview/recordings-ms-go/internal/usecase/recording"
)

// Seconds between the QuickTime epoch (1904-01-01) and the Unix epoch.
const mp4Epoch = 2082844800

// GenerateMP4 builds a minimal but well-formed MP4: ftyp, a moov carrying
// the movie header and one video track header, then an mdat payload padding
// the file past the service's minimum upload size. A zero creation time
// leaves the mvhd creation field unset.
func GenerateMP4(creation time.Time, durationSeconds float64, width, height int) []byte {
	const timescale = 1000

	var creationField uint32
	if !creation.IsZero() {
		creationField = uint32(creation.Unix() + mp4Epoch)
	}

	moov := mp4Box("moov", bytes.Join([][]byte{
		mvhdBox(creationField, timescale, uint32(durationSeconds*timescale)),
		mp4Box("trak", tkhdBox(uint32(width), uint32(height))),
	}, nil))

	data := bytes.Join([][]byte{
		ftypBox("isom"),
		moov,
		mp4Box("mdat", make([]byte, 2048)),
	}, nil)

	if int64(len(data)) < recordingSvc.MinFileSize {
		pad := make([]byte, recordingSvc.MinFileSize-int64(len(data)))
		data = append(data, mp4Box("free", pad)...)
	}
	return data
}

// GenerateTextFile returns plain text sized past the minimum upload gate,
// for exercising the mime-type rejection path.
func GenerateTextFile() []byte {
	content := strings.Join([]string{
		"This is not a video recording.",
		strings.Repeat(".", int(recordingSvc.MinFileSize)),
	}, "\n")
	return []byte(content)
}

func mp4Box(typ string, payload []byte) []byte {
	b := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(b[0:4], uint32(8+len(payload)))
	copy(b[4:8], typ)
	copy(b[8:], payload)
	return b
}

func ftypBox(brand string) []byte {
	payload := make([]byte, 8)
	copy(payload[0:4], brand)
	return mp4Box("ftyp", payload)
}

func mvhdBox(creation, timescale, duration uint32) []byte {
	payload := make([]byte, 100)
	payload[0] = 0 // version 0 header
	binary.BigEndian.PutUint32(payload[4:8], creation)
	binary.BigEndian.PutUint32(payload[12:16], timescale)
	binary.BigEndian.PutUint32(payload[16:20], duration)
	return mp4Box("mvhd", payload)
}

func tkhdBox(width, height uint32) []byte {
	payload := make([]byte, 84)
	payload[0] = 0
	binary.BigEndian.PutUint32(payload[76:80], width<<16) // 16.16 fixed point
	binary.BigEndian.PutUint32(payload[80:84], height<<16)
	return mp4Box("tkhd", payload)
}
