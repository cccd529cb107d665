package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/metaview/recordings-ms-go/internal/mediainfo"
)

// Metadata stores the full extraction result as one JSON column.
type Metadata struct {
	mediainfo.VideoMetadata
}

func (m Metadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m.VideoMetadata)
	if err != nil {
		return nil, fmt.Errorf("marshal Metadata: %w", err)
	}
	return b, nil
}
func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Metadata.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, &m.VideoMetadata); err != nil {
		return fmt.Errorf("unmarshal Metadata: %w", err)
	}
	return nil
}
