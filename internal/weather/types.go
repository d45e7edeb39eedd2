package weather

// Area is a forecast office and the regional center it belongs to.
type Area struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Center string `json:"center"`
}

// AreaGroup is the set of offices listed under one center.
type AreaGroup struct {
	Center string `json:"center"`
	Areas  []Area `json:"areas"`
}

// DayForecast is one cached forecast line for an area.
type DayForecast struct {
	Date    string `json:"date"`
	Weather string `json:"weather"`
	Icon    Icon   `json:"icon"`
}

// AreasResponse is the JSON response for GET /weather/areas.
type AreasResponse struct {
	Centers []AreaGroup `json:"centers"`
}

// ForecastResponse is the JSON response for GET /weather/forecast/{code}.
type ForecastResponse struct {
	AreaCode string        `json:"area_code"`
	Days     []DayForecast `json:"days"`
}

// GroupByCenter folds a center-ordered area list into groups, starting a new
// group whenever the center changes.
func GroupByCenter(areas []Area) []AreaGroup {
	groups := make([]AreaGroup, 0)
	for _, a := range areas {
		if n := len(groups); n == 0 || groups[n-1].Center != a.Center {
			groups = append(groups, AreaGroup{Center: a.Center})
		}
		last := &groups[len(groups)-1]
		last.Areas = append(last.Areas, a)
	}
	return groups
}
