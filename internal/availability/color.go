package availability

import (
	"fmt"
	"math"
)

// RGB is a display color for one grid cell.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Heat-map gradient endpoints, from the availability chart palette.
var (
	GradientStart = RGB{R: 237, G: 243, B: 252}
	GradientEnd   = RGB{R: 0, G: 74, B: 187}
)

// GradientColor linearly interpolates each channel between the gradient
// endpoints. The ratio is clamped to [0,1] first; equal ratios always yield
// equal colors.
func GradientColor(ratio float64) RGB {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	lerp := func(from, to uint8) uint8 {
		return uint8(math.Round(float64(from) + (float64(to)-float64(from))*ratio))
	}
	return RGB{
		R: lerp(GradientStart.R, GradientEnd.R),
		G: lerp(GradientStart.G, GradientEnd.G),
		B: lerp(GradientStart.B, GradientEnd.B),
	}
}

// String renders the CSS rgb() form used by the chart.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
