package model

// Place is a nearby point of interest as surfaced to the model.
type Place struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Address string  `json:"address"`
}

// WeatherReport holds the current conditions extracted from the weather provider.
type WeatherReport struct {
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
}
