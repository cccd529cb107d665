package mediainfo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatDuration renders seconds as "1h 2mn 3s". Both extraction paths use
// it, so fixtures and dashboards see one stable rendering wherever the
// number came from. The minute suffix is "mn" everywhere.
//
// NaN, infinities and negatives yield Unknown. Zero components are omitted
// except seconds, which are always shown: 0 → "0s", 3600 → "1h 0s".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return Unknown
	}

	total := int(seconds)
	h := total / 3600
	mn := (total % 3600) / 60
	s := total % 60

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if mn > 0 {
		parts = append(parts, fmt.Sprintf("%dmn", mn))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))

	return strings.Join(parts, " ")
}

// FormatFrameRate renders "{n} fps" rounded to two decimals with trailing
// zeros trimmed (29.97 fps, 30 fps). Non-positive rates yield Unknown.
func FormatFrameRate(fps float64) string {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return Unknown
	}
	rounded := math.Round(fps*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " fps"
}
