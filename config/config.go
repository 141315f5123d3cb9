// Package config loads the configuration of a consolidation run.
//
// The configuration is read once at startup, in this order: built-in defaults,
// the configuration file (JSON, TOML or YAML, by extension), the .env file,
// PEC_* environment variables, and finally the optional external FX rates
// document. The resulting Config is validated and then passed by value to
// the components that need it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/PaesslerAG/jsonpath"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// DefaultFile is the configuration file read when none is given. Unlike an
// explicit file, it may be missing.
const DefaultFile = "config.json"

// EnvPrefix prefixes the environment variables overriding the configuration.
const EnvPrefix = "PEC"

// Config is the configuration of a run.
type Config struct {
	DataPath  string             `json:"data_path" toml:"data_path" yaml:"data_path" envconfig:"DATA_PATH" validate:"required"`
	FXRates   map[string]float64 `json:"fx_rates" toml:"fx_rates" yaml:"fx_rates" envconfig:"FX_RATES" validate:"required,dive,keys,iso4217,endkeys,gt=0"`
	Tolerance float64            `json:"tolerance" toml:"tolerance" yaml:"tolerance" envconfig:"TOLERANCE" validate:"gte=0"`

	// FXRatesFile is a JSON document, a local file or an http(s) URL,
	// holding more rates found at the JSONPath expression FXRatesPath ("$"
	// by default). They take precedence over FXRates.
	FXRatesFile string `json:"fx_rates_file" toml:"fx_rates_file" yaml:"fx_rates_file" envconfig:"FX_RATES_FILE"`
	FXRatesPath string `json:"fx_rates_path" toml:"fx_rates_path" yaml:"fx_rates_path" envconfig:"FX_RATES_PATH"`

	OutputDir   string `json:"output_dir" toml:"output_dir" yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	Format      string `json:"format" toml:"format" yaml:"format" envconfig:"FORMAT" validate:"oneof=csv xlsx"`
	LogLevel    string `json:"log_level" toml:"log_level" yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	MetricsFile string `json:"metrics_file" toml:"metrics_file" yaml:"metrics_file" envconfig:"METRICS_FILE"`

	S3  S3Config  `json:"s3" toml:"s3" yaml:"s3" envconfig:"S3"`
	LLM LLMConfig `json:"llm" toml:"llm" yaml:"llm" envconfig:"LLM"`
}

// S3Config describes the bucket the outputs are uploaded to. Uploads are
// disabled when Bucket is empty.
type S3Config struct {
	Bucket         string `json:"bucket" toml:"bucket" yaml:"bucket" envconfig:"BUCKET"`
	Prefix         string `json:"prefix" toml:"prefix" yaml:"prefix" envconfig:"PREFIX"`
	Region         string `json:"region" toml:"region" yaml:"region" envconfig:"REGION" validate:"required_with=Bucket"`
	Endpoint       string `json:"endpoint" toml:"endpoint" yaml:"endpoint" envconfig:"ENDPOINT"`
	AccessKey      string `json:"access_key" toml:"access_key" yaml:"access_key" envconfig:"ACCESS_KEY"`
	SecretKey      string `json:"secret_key" toml:"secret_key" yaml:"secret_key" envconfig:"SECRET_KEY"`
	ForcePathStyle bool   `json:"force_path_style" toml:"force_path_style" yaml:"force_path_style" envconfig:"FORCE_PATH_STYLE"`
}

// Enabled reports whether outputs are uploaded to S3.
func (c S3Config) Enabled() bool { return c.Bucket != "" }

// LLMConfig configures the deal narratives.
type LLMConfig struct {
	Model         string `json:"model" toml:"model" yaml:"model" envconfig:"MODEL" validate:"required"`
	MarketContext string `json:"market_context" toml:"market_context" yaml:"market_context" envconfig:"MARKET_CONTEXT"`
	Concurrency   int    `json:"concurrency" toml:"concurrency" yaml:"concurrency" envconfig:"CONCURRENCY" validate:"gte=1"`
	ReferenceYear int    `json:"reference_year" toml:"reference_year" yaml:"reference_year" envconfig:"REFERENCE_YEAR"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		DataPath:  "data.xlsx",
		FXRates:   map[string]float64{"USD": 1.0},
		Tolerance: 10.0,
		OutputDir: ".",
		Format:    "csv",
		LogLevel:  "info",
		LLM: LLMConfig{
			Model:       "gemini-2.5-flash",
			Concurrency: 4,
		},
	}
}

// Load returns the validated configuration read from path (DefaultFile when
// empty) and envFile.
func Load(path, envFile string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := decodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cannot load env file %q: %w", envFile, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot load config from env: %w", err)
	}

	if cfg.FXRatesFile != "" {
		rates, err := readRates(cfg.FXRatesFile, cfg.FXRatesPath)
		if err != nil {
			return Config{}, err
		}
		merged := maps.Clone(cfg.FXRates)
		if merged == nil {
			merged = make(map[string]float64, len(rates))
		}
		maps.Copy(merged, rates)
		cfg.FXRates = merged
	}

	cfg.FXRates = upperKeys(cfg.FXRates)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// upperKeys returns rates keyed by uppercase currency code. When a code is
// present in several cases, the uppercase key wins.
func upperKeys(rates map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(rates))
	for code, rate := range rates {
		upper := strings.ToUpper(strings.TrimSpace(code))
		if _, ok := out[upper]; ok && code != upper {
			continue
		}
		out[upper] = rate
	}
	return out
}

// decodeFile overlays the content of the file at path on cfg.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config file: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("cannot decode config file %q: %w", path, err)
	}
	return nil
}

// ratesClient fetches remote rates documents.
var ratesClient = daily(os.TempDir())

// readRates extracts a currency to rate object from a JSON document, read
// from a local file or an http(s) URL.
func readRates(file, path string) (map[string]float64, error) {
	if path == "" {
		path = "$"
	}
	var data []byte
	var err error
	if isURL(file) {
		data, err = get(ratesClient, file)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read fx rates file: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode fx rates file %q: %w", file, err)
	}
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q in fx rates file %q: %w", path, file, err)
	}
	// jsonpath returns a list for expressions with wildcards or filters,
	// keep the first match.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	obj, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fx rates at %q in %q is not an object: %T", path, file, jval)
	}
	rates := make(map[string]float64, len(obj))
	for code, v := range obj {
		rate, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("fx rate of %q in %q is not a number: %v", code, file, v)
		}
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
