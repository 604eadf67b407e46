package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Compression names accepted in Config.Compression.
const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

type Config struct {
	ConfigFile    string `mapstructure:"config_file"`
	Key           string `mapstructure:"key"`
	Compression   string `mapstructure:"compression"`
	EncodedSuffix string `mapstructure:"encoded_suffix"`
	DecodedSuffix string `mapstructure:"decoded_suffix"`
	APIListenAddr string `mapstructure:"api_listen_address"`
	JournalFile   string `mapstructure:"journal_file"`
}

func DefaultConfig() *Config {
	return &Config{
		ConfigFile:    "crypticoder",
		Compression:   CompressionNone,
		EncodedSuffix: ".enc",
		DecodedSuffix: ".dec",
		APIListenAddr: "127.0.0.1:7780",
		JournalFile:   "crypticoder.db",
	}
}

// Load reads configuration from the file at path, or from the default search
// paths when path is empty, then from CRYPTICODER_* environment variables.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetDefault("config_file", cfg.ConfigFile)
	v.SetDefault("key", cfg.Key)
	v.SetDefault("compression", cfg.Compression)
	v.SetDefault("encoded_suffix", cfg.EncodedSuffix)
	v.SetDefault("decoded_suffix", cfg.DecodedSuffix)
	v.SetDefault("api_listen_address", cfg.APIListenAddr)
	v.SetDefault("journal_file", cfg.JournalFile)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(cfg.ConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/crypticoder/")
		v.AddConfigPath("$HOME/.crypticoder")
	}
	v.SetEnvPrefix("CRYPTICODER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that viper cannot.
func (c *Config) Validate() error {
	switch c.Compression {
	case CompressionNone, CompressionGzip, CompressionZstd:
	case "":
		c.Compression = CompressionNone
	default:
		return fmt.Errorf("config: unknown compression %q (want none, gzip or zstd)", c.Compression)
	}
	if c.EncodedSuffix == "" || c.DecodedSuffix == "" {
		return errors.New("config: output suffixes must not be empty")
	}
	if c.EncodedSuffix == c.DecodedSuffix {
		return errors.New("config: encoded and decoded suffixes must differ")
	}
	return nil
}
