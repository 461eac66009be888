package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rohmanhakim/nps-scraper/pkg/fileutil"
	"github.com/rohmanhakim/nps-scraper/pkg/urlutil"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//===============
	// Sources
	//===============
	// Root of the parks directory site; the state dropdown is read from it
	siteRoot string
	// Radius search endpoint of the places API
	placesURL string
	// API key sent with every places query. Usually comes from the environment
	placesAPIKey string

	//===============
	// Cache
	//===============
	// Path of the JSON file holding every cached response
	cacheFile string
	// Keep responses in memory only, for this session
	noCache bool

	//===============
	// Fetch
	//===============
	// Maximum time of a single HTTP request
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Places search
	//===============
	// Search radius around the park's zipcode
	searchRadius int
	// Unit of searchRadius: "m" for miles, "km" for kilometers
	radiusUnits string
	// Maximum number of matches requested from the API
	maxMatches int
	// Maximum number of places shown
	maxResults int
}

type configDTO struct {
	SiteRoot     string `json:"siteRoot,omitempty" yaml:"siteRoot,omitempty"`
	PlacesURL    string `json:"placesUrl,omitempty" yaml:"placesUrl,omitempty"`
	PlacesAPIKey string `json:"placesApiKey,omitempty" yaml:"placesApiKey,omitempty"`
	CacheFile    string `json:"cacheFile,omitempty" yaml:"cacheFile,omitempty"`
	NoCache      bool   `json:"noCache,omitempty" yaml:"noCache,omitempty"`
	Timeout      string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "10s"
	UserAgent    string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	SearchRadius int    `json:"searchRadius,omitempty" yaml:"searchRadius,omitempty"`
	RadiusUnits  string `json:"radiusUnits,omitempty" yaml:"radiusUnits,omitempty"`
	MaxMatches   int    `json:"maxMatches,omitempty" yaml:"maxMatches,omitempty"`
	MaxResults   int    `json:"maxResults,omitempty" yaml:"maxResults,omitempty"`
}

// envDTO holds the settings read from the environment. The API key has two
// names; NPS_PLACES_API_KEY wins when both are set.
type envDTO struct {
	PlacesAPIKey   string `env:"NPS_PLACES_API_KEY"`
	MapQuestAPIKey string `env:"MAPQUEST_API_KEY"`
	CacheFile      string `env:"NPS_CACHE_FILE"`
	SiteRoot       string `env:"NPS_SITE_ROOT"`
	PlacesURL      string `env:"NPS_PLACES_URL"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	// Start with default config
	cfg := WithDefault()

	// Only override if non-zero value is provided
	if dto.SiteRoot != "" {
		cfg.siteRoot = dto.SiteRoot
	}
	if dto.PlacesURL != "" {
		cfg.placesURL = dto.PlacesURL
	}
	if dto.PlacesAPIKey != "" {
		cfg.placesAPIKey = dto.PlacesAPIKey
	}
	if dto.CacheFile != "" {
		cfg.cacheFile = dto.CacheFile
	}
	cfg.noCache = dto.NoCache
	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout: %s", ErrConfigParsingFail, err.Error())
		}
		cfg.timeout = timeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.SearchRadius != 0 {
		cfg.searchRadius = dto.SearchRadius
	}
	if dto.RadiusUnits != "" {
		cfg.radiusUnits = dto.RadiusUnits
	}
	if dto.MaxMatches != 0 {
		cfg.maxMatches = dto.MaxMatches
	}
	if dto.MaxResults != 0 {
		cfg.maxResults = dto.MaxResults
	}

	return cfg.Build()
}

// WithConfigFile reads a config file. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON. Absent keys keep their defaults.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	switch fileutil.GetFileExtension(path) {
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with default values for all fields.
// The places API key has no default.
func WithDefault() *Config {
	defaultConfig := Config{
		siteRoot:     "https://www.nps.gov",
		placesURL:    "http://www.mapquestapi.com/search/v2/radius",
		placesAPIKey: "",
		cacheFile:    "nationalsite_cache.json",
		noCache:      false,
		timeout:      time.Second * 10,
		userAgent:    "nps-scraper/1.0",
		searchRadius: 10,
		radiusUnits:  "m",
		maxMatches:   10,
		maxResults:   10,
	}
	return &defaultConfig
}

// WithEnv applies the settings found in environ. A nil environ reads the
// process environment. Unset variables leave the config untouched.
func (c *Config) WithEnv(environ map[string]string) (*Config, error) {
	dto := envDTO{}
	if err := env.ParseWithOptions(&dto, env.Options{Environment: environ}); err != nil {
		return c, fmt.Errorf("%w: environment: %s", ErrConfigParsingFail, err.Error())
	}

	switch {
	case dto.PlacesAPIKey != "":
		c.placesAPIKey = dto.PlacesAPIKey
	case dto.MapQuestAPIKey != "":
		c.placesAPIKey = dto.MapQuestAPIKey
	}
	if dto.CacheFile != "" {
		c.cacheFile = dto.CacheFile
	}
	if dto.SiteRoot != "" {
		c.siteRoot = dto.SiteRoot
	}
	if dto.PlacesURL != "" {
		c.placesURL = dto.PlacesURL
	}
	return c, nil
}

// ToBuilder returns a mutable copy of c, so a loaded config can take
// further overrides before being built again.
func (c Config) ToBuilder() *Config {
	return &c
}

func (c *Config) WithSiteRoot(root string) *Config {
	c.siteRoot = root
	return c
}

func (c *Config) WithPlacesURL(placesURL string) *Config {
	c.placesURL = placesURL
	return c
}

func (c *Config) WithPlacesAPIKey(key string) *Config {
	c.placesAPIKey = key
	return c
}

func (c *Config) WithCacheFile(path string) *Config {
	c.cacheFile = path
	return c
}

func (c *Config) WithNoCache(noCache bool) *Config {
	c.noCache = noCache
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithSearchRadius(radius int) *Config {
	c.searchRadius = radius
	return c
}

func (c *Config) WithRadiusUnits(units string) *Config {
	c.radiusUnits = units
	return c
}

func (c *Config) WithMaxMatches(matches int) *Config {
	c.maxMatches = matches
	return c
}

func (c *Config) WithMaxResults(results int) *Config {
	c.maxResults = results
	return c
}

func (c *Config) Build() (Config, error) {
	root, err := urlutil.NormalizeRoot(c.siteRoot)
	if err != nil {
		return Config{}, fmt.Errorf("%w: siteRoot: %s", ErrInvalidConfig, err.Error())
	}
	c.siteRoot = root.String()

	placesURL, err := url.Parse(c.placesURL)
	if err != nil || !urlutil.IsHTTP(*placesURL) {
		return Config{}, fmt.Errorf("%w: placesUrl %q is not an absolute http(s) URL", ErrInvalidConfig, c.placesURL)
	}
	if !c.noCache && c.cacheFile == "" {
		return Config{}, fmt.Errorf("%w: cacheFile cannot be empty", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.searchRadius <= 0 || c.maxMatches <= 0 || c.maxResults <= 0 {
		return Config{}, fmt.Errorf("%w: searchRadius, maxMatches and maxResults must be positive", ErrInvalidConfig)
	}
	if c.radiusUnits != "m" && c.radiusUnits != "km" {
		return Config{}, fmt.Errorf("%w: radiusUnits must be \"m\" or \"km\"", ErrInvalidConfig)
	}

	return *c, nil
}

func (c Config) SiteRoot() string {
	return c.siteRoot
}

func (c Config) PlacesURL() string {
	return c.placesURL
}

func (c Config) PlacesAPIKey() string {
	return c.placesAPIKey
}

func (c Config) CacheFile() string {
	return c.cacheFile
}

func (c Config) NoCache() bool {
	return c.noCache
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) SearchRadius() int {
	return c.searchRadius
}

func (c Config) RadiusUnits() string {
	return c.radiusUnits
}

func (c Config) MaxMatches() int {
	return c.maxMatches
}

func (c Config) MaxResults() int {
	return c.maxResults
}
