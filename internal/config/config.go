package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/dataset"
	"github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/internal/selection"
)

// DefaultDataPath is the file name the claims statistics are published under.
const DefaultDataPath = "건강보험심사평가원_감염병 건강보험 진료 통계_2023.csv"

// Global configuration structure.
type Global struct {
	DataPath     string `mapstructure:"data_path" yaml:"data_path"`
	Encoding     string `mapstructure:"encoding" yaml:"encoding"`
	Addr         string `mapstructure:"addr" yaml:"addr"`
	DefaultTheme string `mapstructure:"default_theme" yaml:"default_theme"`
	DefaultTopN  int    `mapstructure:"default_top_n" yaml:"default_top_n"`
	ExportsDir   string `mapstructure:"exports_dir" yaml:"exports_dir"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	// DevMode runs gin in debug mode.
	DevMode bool `mapstructure:"dev_mode" yaml:"dev_mode"`
}

// Keys lists the settable keys in display order.
var Keys = []string{"data_path", "encoding", "addr", "default_theme", "default_top_n", "exports_dir", "log_level", "dev_mode"}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".infectdash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.infectdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	return load(cfgFile, true)
}

// LoadFile is Load without environment overrides: the stored file over
// defaults. Use it before Save so env values are not written to disk.
func LoadFile(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, env bool) (*Global, error) {
	v := viper.New()
	if env {
		v.SetEnvPrefix("INFECTDASH")
		v.AutomaticEnv()
	}

	d := Defaults()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("encoding", d.Encoding)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("default_theme", d.DefaultTheme)
	v.SetDefault("default_top_n", d.DefaultTopN)
	v.SetDefault("exports_dir", d.ExportsDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("dev_mode", d.DevMode)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ExportsDir == "" {
		c.ExportsDir = "."
	}
	return &c, nil
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		DataPath:     DefaultDataPath,
		Encoding:     string(dataset.CP949),
		Addr:         "127.0.0.1:8501",
		DefaultTheme: string(selection.DefaultTheme),
		DefaultTopN:  selection.DefaultTopN,
		ExportsDir:   ".",
		LogLevel:     "info",
	}
}

// Get returns the string form of a key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "data_path":
		return c.DataPath, nil
	case "encoding":
		return c.Encoding, nil
	case "addr":
		return c.Addr, nil
	case "default_theme":
		return c.DefaultTheme, nil
	case "default_top_n":
		return strconv.Itoa(c.DefaultTopN), nil
	case "exports_dir":
		return c.ExportsDir, nil
	case "log_level":
		return c.LogLevel, nil
	case "dev_mode":
		return strconv.FormatBool(c.DevMode), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set validates and assigns one key.
func (c *Global) Set(key, val string) error {
	switch key {
	case "data_path":
		c.DataPath = val
	case "encoding":
		enc, err := dataset.ParseEncoding(val)
		if err != nil {
			return err
		}
		c.Encoding = string(enc)
	case "addr":
		c.Addr = val
	case "default_theme":
		th, err := selection.ParseTheme(val)
		if err != nil {
			return err
		}
		c.DefaultTheme = string(th)
	case "default_top_n":
		i, err := strconv.Atoi(val)
		if err != nil || i < selection.MinTopN || i > selection.MaxTopN {
			return fmt.Errorf("invalid default_top_n: %s (use %d-%d)", val, selection.MinTopN, selection.MaxTopN)
		}
		c.DefaultTopN = i
	case "exports_dir":
		c.ExportsDir = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "dev_mode":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for dev_mode: %w", err)
		}
		c.DevMode = b
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// SelectionOptions are the configured selection defaults. An invalid theme in
// the file falls back to the built-in default.
func (c *Global) SelectionOptions() selection.Options {
	th, err := selection.ParseTheme(c.DefaultTheme)
	if err != nil {
		th = selection.DefaultTheme
	}
	return selection.Options{Theme: th, TopN: c.DefaultTopN}
}
