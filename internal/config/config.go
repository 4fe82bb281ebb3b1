package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	UI     UIConfig     `mapstructure:"ui"`
	Data   DataConfig   `mapstructure:"data"`
	Log    LogConfig    `mapstructure:"log"`
	Export ExportConfig `mapstructure:"export"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
	DrawerWidth  int    `mapstructure:"drawer_width"`
	MaxCellWidth int    `mapstructure:"max_cell_width"`
}

type DataConfig struct {
	Source         string `mapstructure:"source"`
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "default",
			MouseEnabled: true,
			DrawerWidth:  42,
			MaxCellWidth: 40,
		},
		Data: DataConfig{
			Source:         "",
			DateFormat:     "2006-01-02 15:04:05",
			CurrencySymbol: "$",
		},
		Log: LogConfig{
			Level: "info",
			File:  defaultLogFile(),
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "csv",
		},
	}
}

// Load loads configuration from path, or from the standard locations when
// path is empty. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 1. User config directory
		if configDir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(configDir)
		}

		// 2. Current directory
		v.AddConfigPath(".")

		// 3. Default config directory
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaults()
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("ui.drawer_width", d.UI.DrawerWidth)
	v.SetDefault("ui.max_cell_width", d.UI.MaxCellWidth)
	v.SetDefault("data.source", d.Data.Source)
	v.SetDefault("data.date_format", d.Data.DateFormat)
	v.SetDefault("data.currency_symbol", d.Data.CurrencySymbol)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.format", d.Export.Format)
}

// Validate checks values that would otherwise break rendering or export
func (c *Config) Validate() error {
	if c.UI.DrawerWidth < 20 {
		return fmt.Errorf("ui.drawer_width must be at least 20, got %d", c.UI.DrawerWidth)
	}
	if c.UI.MaxCellWidth < 4 {
		return fmt.Errorf("ui.max_cell_width must be at least 4, got %d", c.UI.MaxCellWidth)
	}
	switch c.Export.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("export.format must be csv or json, got %q", c.Export.Format)
	}
	return nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazygrid"), nil
}

func defaultLogFile() string {
	return filepath.Join(os.TempDir(), "lazygrid.log")
}
