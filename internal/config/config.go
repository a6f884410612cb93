// Package config loads the command line tool's configuration.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable. "storage.dsn" is read
// from STATIONPREFS_STORAGE_DSN.
const EnvPrefix = "STATIONPREFS"

type Config struct {
	Storage      StorageConfig     `mapstructure:"storage"`
	Cache        CacheConfig       `mapstructure:"cache"`
	Notify       NotifyConfig      `mapstructure:"notify"`
	Logging      LoggingConfig     `mapstructure:"logging"`
	SystemCheck  SystemCheckConfig `mapstructure:"system_check"`
	Timezone     string            `mapstructure:"timezone"`
	ProductLabel string            `mapstructure:"product_label"`
}

type StorageConfig struct {
	Driver   string         `mapstructure:"driver"`
	DSN      string         `mapstructure:"dsn"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
}

type DynamoDBConfig struct {
	Table    string `mapstructure:"table"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

type CacheConfig struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
	Redis  RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type NotifyConfig struct {
	Driver string            `mapstructure:"driver"`
	Redis  NotifyRedisConfig `mapstructure:"redis"`
	Kafka  KafkaConfig       `mapstructure:"kafka"`
}

type NotifyRedisConfig struct {
	Addr    string `mapstructure:"addr"`
	Channel string `mapstructure:"channel"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	MaxFiles  int    `mapstructure:"max_files"`
}

type SystemCheckConfig struct {
	Command      string        `mapstructure:"command"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "stationprefs.db",
			DynamoDB: DynamoDBConfig{
				Table: "station-preferences",
			},
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    24 * time.Hour,
		},
		Notify: NotifyConfig{
			Driver: "log",
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
		SystemCheck: SystemCheckConfig{
			Command:      "/usr/bin/airtime-check-system",
			ProbeTimeout: 5 * time.Second,
		},
		ProductLabel: "Airtime",
	}
}

// Load reads a .env file if present, then the config file, then environment
// variables. An explicit path must exist; otherwise stationprefs.{yaml,toml,json}
// is looked up in the working directory and /etc/stationprefs.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("stationprefs")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/stationprefs")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if b := v.GetString("notify.kafka.brokers"); b != "" {
		cfg.Notify.Kafka.Brokers = strings.Split(b, ",")
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize lower-cases the names the factories match exactly.
func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	c.Cache.Driver = strings.ToLower(c.Cache.Driver)
	c.Notify.Driver = strings.ToLower(c.Notify.Driver)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
}

// Validate rejects driver names nothing can open.
func (c *Config) Validate() error {
	if err := oneOf("storage.driver", c.Storage.Driver, "memory", "sqlite", "postgres", "dynamodb"); err != nil {
		return err
	}
	if err := oneOf("cache.driver", c.Cache.Driver, "", "none", "memory", "redis"); err != nil {
		return err
	}
	if err := oneOf("notify.driver", c.Notify.Driver, "", "none", "log", "redis", "kafka"); err != nil {
		return err
	}
	if err := oneOf("logging.format", c.Logging.Format, "", "text", "json"); err != nil {
		return err
	}
	if c.Storage.Driver != "memory" && c.Storage.Driver != "dynamodb" && c.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required for the %s driver", c.Storage.Driver)
	}
	return nil
}

func oneOf(name, got string, allowed ...string) error {
	for _, a := range allowed {
		if got == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q", name, got)
}

// bindEnvs registers every key of cfg so viper consults the environment for
// keys that appear in no config file.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(append([]string{}, parts...), tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
