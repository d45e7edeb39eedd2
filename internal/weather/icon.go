package weather

import "strings"

// Icon names the pictogram shown next to a forecast line.
type Icon string

const (
	IconSnow  Icon = "snow"
	IconRain  Icon = "rain"
	IconSunny Icon = "sunny"
	IconCloud Icon = "cloud"
)

// IconFor picks an icon from the Japanese forecast text. Snow wins over rain,
// rain over sun; everything else is cloud.
func IconFor(text string) Icon {
	switch {
	case strings.Contains(text, "雪"):
		return IconSnow
	case strings.Contains(text, "雨"):
		return IconRain
	case strings.Contains(text, "晴"):
		return IconSunny
	default:
		return IconCloud
	}
}
