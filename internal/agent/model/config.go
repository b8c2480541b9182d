package model

// ================ Config ================
type ConversationConfig struct {
	TTL   string `envconfig:"CONVERSATION_TTL" default:"15m"`
	Tools struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"10"`
	}
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.4"`
}

type GuidePromptConfig struct {
	CityName    string `envconfig:"PROMPT_CITY_NAME" default:"Kochi"`
	CityCountry string `envconfig:"PROMPT_CITY_COUNTRY" default:"India"`
	SeasonNote  string `envconfig:"PROMPT_SEASON_NOTE" default:"It is the middle of the monsoon season, so prefer indoor activities when it rains."`
}

type WeatherConfig struct {
	APIKey  string `envconfig:"OPENWEATHER_API_KEY" required:"true"`
	BaseURL string `envconfig:"WEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	City    string `envconfig:"WEATHER_CITY" default:"Kochi,IN"`
}

type PlacesConfig struct {
	APIKey       string `envconfig:"GOOGLE_PLACES_API_KEY" required:"true"`
	BaseURL      string `envconfig:"PLACES_BASE_URL" default:"https://maps.googleapis.com/maps/api/place/nearbysearch/json"`
	RadiusMeters int    `envconfig:"PLACES_RADIUS_METERS" default:"1500"`
}
