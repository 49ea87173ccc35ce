package export

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// defaultPalette is used for developers without a configured colour
var defaultPalette = []string{
	"#99B3E6", // blue
	"#B3E6E6", // light cyan
	"#D9BF99", // tan
	"#FFCCCC", // light pink
	"#F29999", // coral
	"#B3E6B3", // light green
	"#D9B3E6", // lavender
	"#B380CC", // purple
	"#CC6666", // maroon
	"#E6E699", // light yellow
}

// Palette maps developer names to "#RRGGBB" colours
type Palette map[string]string

// ColorFor returns the developer's colour, falling back to a stable palette entry.
// Gaps have no colour.
func (p Palette) ColorFor(name string) string {
	if name == "" {
		return ""
	}
	if c, ok := p[name]; ok {
		return strings.ToUpper(c)
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return defaultPalette[h.Sum32()%uint32(len(defaultPalette))]
}

// RGB is a colour with channels in the 0-1 range, as the Sheets API expects
type RGB struct {
	Red, Green, Blue float64
}

// ParseHex converts "#RRGGBB" into RGB
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid colour %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return RGB{
		Red:   float64((v>>16)&0xFF) / 255,
		Green: float64((v>>8)&0xFF) / 255,
		Blue:  float64(v&0xFF) / 255,
	}, nil
}
