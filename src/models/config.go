package models

// MConfig Structure
type MConfig struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Storage  MStorageConfig  `yaml:"storage"`
	Network  MNetworkConfig  `yaml:"network"`
	Weather  MWeatherConfig  `yaml:"weather"`
	Pipeline MPipelineConfig `yaml:"pipeline"`

	LocationClusters []MLocationCluster `yaml:"location_clusters"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	MaxRetries     int    `yaml:"retries"`
	UserAgent      string `yaml:"user_agent"`
}

type MWeatherConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ForecastURL   string `yaml:"forecast_url"`
	AirQualityURL string `yaml:"air_quality_url"`
}

type MPipelineConfig struct {
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	BaselineDays        int    `yaml:"baseline_days"`
	SourceName          string `yaml:"source_name"`
	SourceBaseURL       string `yaml:"source_base_url"`
	SourceAccessToken   string `yaml:"source_access_token"`
}

// MLocationCluster is a named geofence supplied by the caller.
// A point belongs to the nearest cluster whose radius contains it.
type MLocationCluster struct {
	Key          string  `yaml:"key" json:"key"`
	Lat          float64 `yaml:"lat" json:"lat"`
	Lon          float64 `yaml:"lon" json:"lon"`
	RadiusMeters float64 `yaml:"radius_meters" json:"radiusMeters"`
}
