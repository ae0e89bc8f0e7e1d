package types

import (
	"fmt"
	"strings"
)

// ColorSample is one representative color of an image together with the
// fraction of pixels it accounts for. A full sample set for one image has
// weights summing to 1.0.
type ColorSample struct {
	Hex    string  `json:"color" dynamodbav:"color"`
	Weight float64 `json:"percentage" dynamodbav:"percentage"`
}

// RGB parses the sample's hex string ("#rrggbb" or "rrggbb") into channel
// values. Invalid strings return an error so callers can skip the sample.
func (c ColorSample) RGB() (r, g, b uint8, err error) {
	return ParseHexColor(c.Hex)
}

func ParseHexColor(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("expected 6 hex chars, got %q", s)
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return uint8(rv), uint8(gv), uint8(bv), nil
}

func HexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
