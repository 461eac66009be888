package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rohmanhakim/nps-scraper/internal/build"
	"github.com/rohmanhakim/nps-scraper/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	siteRoot     string
	placesURL    string
	apiKey       string
	cacheFile    string
	noCache      bool
	userAgent    string
	timeout      time.Duration
	searchRadius int
	maxResults   int
	verbose      bool
	logFormat    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nps-scraper",
	Short: "Browse national parks by state and find places near them.",
	Long: `nps-scraper reads the state directory and park pages of nps.gov,
lists the parks of a state, and searches the MapQuest radius API for places
around a chosen park.

Without a subcommand it starts an interactive prompt. Every page fetched
from nps.gov is kept in a local cache file and reused on later runs; places
searches always go to the network.`,
	Version:       build.FullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return RunPrompt(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), app.explorer)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// Run executes the command tree with args and the given streams.
func Run(args []string, in io.Reader, out io.Writer, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., /home/myuser/nps.yaml)")
	rootCmd.PersistentFlags().StringVar(&siteRoot, "site-root", "", "root URL of the parks directory site")
	rootCmd.PersistentFlags().StringVar(&placesURL, "places-url", "", "radius search endpoint of the places API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "places API key (prefer NPS_PLACES_API_KEY or MAPQUEST_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", "", "path of the JSON cache file")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "keep fetched pages in memory only")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.PersistentFlags().IntVar(&searchRadius, "radius", 0, "places search radius")
	rootCmd.PersistentFlags().IntVar(&maxResults, "max-results", 0, "maximum number of places shown")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug details to stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(statesCmd, parksCmd, nearbyCmd, cacheCmd)
	cacheCmd.AddCommand(cachePathCmd, cacheClearCmd)
}

// InitConfigWithError builds the config from, in increasing precedence,
// defaults, the config file, the environment and the command line flags.
func InitConfigWithError(logger *logrus.Logger) (config.Config, error) {
	configBuilder := config.WithDefault()

	if cfgFile != "" {
		logger.WithField("path", cfgFile).Debug("initializing config from file")
		fileCfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = fileCfg.ToBuilder()
	}

	configBuilder, err := configBuilder.WithEnv(nil)
	if err != nil {
		return config.Config{}, err
	}

	// Override with CLI flag values where provided
	if siteRoot != "" {
		configBuilder = configBuilder.WithSiteRoot(siteRoot)
	}

	if placesURL != "" {
		configBuilder = configBuilder.WithPlacesURL(placesURL)
	}

	if apiKey != "" {
		configBuilder = configBuilder.WithPlacesAPIKey(apiKey)
	}

	if cacheFile != "" {
		configBuilder = configBuilder.WithCacheFile(cacheFile)
	}

	if noCache {
		configBuilder = configBuilder.WithNoCache(noCache)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if searchRadius > 0 {
		configBuilder = configBuilder.WithSearchRadius(searchRadius)
	}

	if maxResults > 0 {
		configBuilder = configBuilder.WithMaxResults(maxResults)
	}

	return configBuilder.Build()
}

// ResetFlags resets all flag variables to their zero values.
// This is useful for testing to ensure a clean state between tests.
func ResetFlags() {
	cfgFile = ""
	siteRoot = ""
	placesURL = ""
	apiKey = ""
	cacheFile = ""
	noCache = false
	userAgent = ""
	timeout = 0
	searchRadius = 0
	maxResults = 0
	verbose = false
	logFormat = "text"
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetSiteRootForTest(root string) {
	siteRoot = root
}

func SetPlacesURLForTest(u string) {
	placesURL = u
}

func SetAPIKeyForTest(key string) {
	apiKey = key
}

func SetCacheFileForTest(path string) {
	cacheFile = path
}

func SetNoCacheForTest(disabled bool) {
	noCache = disabled
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetSearchRadiusForTest(radius int) {
	searchRadius = radius
}

func SetMaxResultsForTest(results int) {
	maxResults = results
}
