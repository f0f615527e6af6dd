package geoapify

// GeocodeAPIResponse is the FeatureCollection returned by /v1/geocode/search.
type GeocodeAPIResponse struct {
	Features []GeocodeFeature `json:"features"`
}

type GeocodeFeature struct {
	Properties struct {
		Lat       *float64 `json:"lat"`
		Lon       *float64 `json:"lon"`
		Formatted string   `json:"formatted"`
		Rank      struct {
			Confidence float64 `json:"confidence"`
		} `json:"rank"`
	} `json:"properties"`
}

// PlacesAPIResponse is the FeatureCollection returned by /v2/places.
type PlacesAPIResponse struct {
	Features []PlaceFeature `json:"features"`
}

type PlaceFeature struct {
	Geometry   *Geometry       `json:"geometry"`
	Properties PlaceProperties `json:"properties"`
}

// Geometry is a GeoJSON point; coordinates are [lon, lat].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type PlaceProperties struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Formatted  string   `json:"formatted"`
	Categories []string `json:"categories"`
	Rate       *float64 `json:"rate"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
}

// PlaceDetailsAPIResponse is the FeatureCollection returned by /v2/place-details.
type PlaceDetailsAPIResponse struct {
	Features []PlaceDetailsFeature `json:"features"`
}

type PlaceDetailsFeature struct {
	Properties PlaceDetailsProperties `json:"properties"`
}

type PlaceDetailsProperties struct {
	FeatureType  string        `json:"feature_type"`
	WikiAndMedia *WikiAndMedia `json:"wiki_and_media"`
	Description  string        `json:"description"`
	Website      string        `json:"website"`
	URL          string        `json:"url"`
	Phone        string        `json:"phone"`
	OpeningHours string        `json:"opening_hours"`
}

type WikiAndMedia struct {
	Image     string `json:"image"`
	Wikidata  string `json:"wikidata"`
	Wikipedia string `json:"wikipedia"`
}
