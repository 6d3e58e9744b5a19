package spec

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the config file LoadProject looks for.
const ConfigFileName = "netviability.yaml"

// Default returns a configuration with the built-in dictionaries and no file overlay.
func Default() *Config {
	return &Config{
		BasePath:   ".",
		Logging:    LoggingConfig{Level: "info", Format: "text"},
		Tracing:    TracingConfig{Exporter: "stdout", SampleRatio: 1},
		Parameters: DefaultParameters(),
	}
}

// Load reads a run configuration from a YAML file. The file overlays the
// built-in dictionaries: global parameters merge field by field, cost catalog
// entries merge by key, and country or decision-option entries replace the
// built-in entry of the same name. A .env file next to the config and the
// process environment are applied last.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "reading config file %s", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(ErrSchema, "parsing config YAML %s: %v", path, err)
	}

	dir := filepath.Dir(path)
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, eris.Wrapf(err, "loading %s", envPath)
		}
	}
	applyEnv(cfg)

	if !filepath.IsAbs(cfg.BasePath) {
		cfg.BasePath = filepath.Join(dir, cfg.BasePath)
	}
	for iso3, c := range cfg.Parameters.Countries {
		if c.ISO3 == "" {
			c.ISO3 = iso3
			cfg.Parameters.Countries[iso3] = c
		}
	}
	return cfg, nil
}

// LoadProject loads the run configuration from a project directory.
// It looks for netviability.yaml in the given directory.
func LoadProject(projectDir string) (*Config, error) {
	return Load(filepath.Join(projectDir, ConfigFileName))
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NETVIABILITY_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("NETVIABILITY_TRACING_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tracing.Enabled = enabled
		}
	}
	if v := os.Getenv("NETVIABILITY_TRACING_EXPORTER"); v != "" {
		cfg.Tracing.Exporter = strings.ToLower(v)
	}
	if v := os.Getenv("NETVIABILITY_OTLP_ENDPOINT"); v != "" {
		cfg.Tracing.Endpoint = v
	}
}

// SelectedCountries returns the ISO3 codes to run, honouring the countries filter.
func (c *Config) SelectedCountries() []string {
	return filterNames(c.Parameters.CountryCodes(), c.Countries)
}

// SelectedDecisionOptions returns the decision options to run, honouring the filter.
func (c *Config) SelectedDecisionOptions() []string {
	return filterNames(c.Parameters.DecisionOptionNames(), c.DecisionOptions)
}

func filterNames(all, keep []string) []string {
	if len(keep) == 0 {
		return all
	}
	want := make(map[string]bool, len(keep))
	for _, k := range keep {
		want[k] = true
	}
	out := make([]string, 0, len(keep))
	for _, a := range all {
		if want[a] {
			out = append(out, a)
		}
	}
	return out
}

// Paths resolves the raw/intermediate/processed layout under BasePath.
type Paths struct {
	Base string
}

func (c *Config) Paths() Paths { return Paths{Base: c.BasePath} }

// MetricsPath is where a run writes its Prometheus textfile.
func (c *Config) MetricsPath() string {
	if c.MetricsFile != "" {
		return c.MetricsFile
	}
	return filepath.Join(c.Paths().Processed(), "metrics.prom")
}

func (p Paths) Raw() string          { return filepath.Join(p.Base, "raw") }
func (p Paths) Intermediate() string { return filepath.Join(p.Base, "intermediate") }
func (p Paths) Processed() string    { return filepath.Join(p.Base, "processed") }
func (p Paths) Results() string      { return filepath.Join(p.Processed(), "results") }

func (p Paths) RegionalData(iso3 string) string {
	return filepath.Join(p.Intermediate(), iso3, "regional_data.csv")
}

func (p Paths) SubscriptionForecast(iso3 string) string {
	return filepath.Join(p.Intermediate(), iso3, "subscriptions", "subs_forecast.csv")
}

func (p Paths) SmartphoneForecast(iso3 string) string {
	return filepath.Join(p.Intermediate(), iso3, "smartphones", "smartphone_forecast.csv")
}

func (p Paths) CoreLookup(iso3 string) string {
	return filepath.Join(p.Intermediate(), iso3, "network", "core_lut.csv")
}

func (p Paths) CapacityLookup() string {
	return filepath.Join(p.Raw(), "capacity_lut_by_frequency.csv")
}
