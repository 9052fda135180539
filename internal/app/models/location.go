package models

// Location is a named point on the globe.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// GeocodeResult is the gateway's answer to a free-text place query. Exactly
// one of the three shapes is populated: a resolved location, a list of
// alternative names for an ambiguous query, or neither (not found).
type GeocodeResult struct {
	Name         string   `json:"name,omitempty"`
	Lat          float64  `json:"lat,omitempty"`
	Lng          float64  `json:"lng,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// Resolved reports whether the result carries a directly usable location.
func (g *GeocodeResult) Resolved() bool {
	return g != nil && g.Name != "" && len(g.Alternatives) == 0
}

// MapView is the current camera state of the map surface.
type MapView struct {
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Zoom      float64 `json:"zoom"`
	TileStyle string  `json:"tile_style"`
}

// Coordinates is a bare lat/lng pair, used for the focal location that biases
// free-form queries toward the currently viewed place.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
