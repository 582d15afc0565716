package scene

import (
	"fmt"
	"strconv"
)

// ParseHexColor converts "#RRGGBB" into an RGB triple in 0..1
func ParseHexColor(hex string) ([3]float64, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return [3]float64{}, fmt.Errorf("invalid color %q: expected #RRGGBB", hex)
	}

	var rgb [3]float64
	for i := range rgb {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return [3]float64{}, fmt.Errorf("invalid color %q: %w", hex, err)
		}
		rgb[i] = float64(v) / 255.0
	}
	return rgb, nil
}
