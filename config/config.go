package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Logger holds logging settings.
type Logger struct {
	Level            string `mapstructure:"level"`
	Format           string `mapstructure:"format"`
	DisableTimestamp bool   `mapstructure:"disable_timestamp"`
}

// Config is the merged result of defaults, config file, ASK_* environment
// variables and flags, in increasing priority.
type Config struct {
	Data        string        `mapstructure:"data"`
	Identifier  string        `mapstructure:"identifier"`
	Format      string        `mapstructure:"format"`
	PreviewRows int           `mapstructure:"preview_rows"`
	Watch       bool          `mapstructure:"watch"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	CacheSize   int           `mapstructure:"cache_size"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
	HistoryFile string        `mapstructure:"history_file"`
	Log         Logger        `mapstructure:"log"`

	// Set from the command line only.
	ListColumns bool   `mapstructure:"-"`
	File        string `mapstructure:"-"` // config file used, if any
}

// Formats lists the accepted output formats.
var Formats = []string{"text", "csv", "json", "yaml"}

// ErrHelp is returned by Load when -h/--help was given.
var ErrHelp = pflag.ErrHelp

func setDefaults(v *viper.Viper) {
	v.SetDefault("data", "")
	v.SetDefault("identifier", "")
	v.SetDefault("format", "text")
	v.SetDefault("preview_rows", 5)
	v.SetDefault("watch", false)
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("cache_size", 256)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("history_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.disable_timestamp", false)
}

// Load parses args (without the program name) and returns the merged
// configuration plus the remaining positional arguments. Usage goes to
// usage when parsing fails or help is requested.
func Load(args []string, usage io.Writer) (*Config, []string, error) {
	fs := pflag.NewFlagSet("ask", pflag.ContinueOnError)
	fs.SetOutput(usage)
	fs.Usage = func() {
		fmt.Fprintln(usage, "usage: ask [flags] [question...]")
		fmt.Fprintln(usage, "example: ask --data people.csv 'salary of bilal khan'")
		fmt.Fprintln(usage, "without a question, ask starts an interactive prompt")
		fmt.Fprintln(usage)
		fs.PrintDefaults()
	}

	configFile := fs.StringP("config", "c", "", "config file (default: ask.{yaml,json,toml} in ., ~/.config/ask, /etc/ask)")
	listColumns := fs.Bool("columns", false, "list the dataset columns and exit")
	fs.StringP("data", "d", "", "dataset file (.csv .json .jsonl .avro .parquet .xlsx .db); empty uses the built-in sample")
	fs.StringP("identifier", "i", "", "identifier column (default: a column called name, else the first)")
	fs.StringP("format", "f", "text", "output format: "+strings.Join(Formats, ", "))
	fs.Int("preview-rows", 5, "rows shown by :preview")
	fs.BoolP("watch", "w", false, "reload the dataset file when it changes")
	fs.Duration("cache-ttl", 5*time.Minute, "how long answers stay memoized")
	fs.Int("cache-size", 256, "maximum memoized answers (0 disables memoization)")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	fs.String("history-file", "", "prompt history file (default: in the temp dir)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-format", "text", "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	setDefaults(v)

	bindings := map[string]string{
		"data":         "data",
		"identifier":   "identifier",
		"format":       "format",
		"preview_rows": "preview-rows",
		"watch":        "watch",
		"cache_ttl":    "cache-ttl",
		"cache_size":   "cache-size",
		"metrics_addr": "metrics-addr",
		"history_file": "history-file",
		"log.level":    "log-level",
		"log.format":   "log-format",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, nil, fmt.Errorf("cannot bind flag %s: %w", flag, err)
		}
	}

	v.SetEnvPrefix("ask")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("ask")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ask")
		v.AddConfigPath("/etc/ask")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("cannot parse config: %w", err)
	}
	cfg.ListColumns = *listColumns
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, fs.Args(), nil
}

// Validate checks values that cannot be expressed by types alone.
func (c *Config) Validate() error {
	if !validFormat(c.Format) {
		return fmt.Errorf("unknown format %q (supported: %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must not be negative, got %d", c.PreviewRows)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	return nil
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
