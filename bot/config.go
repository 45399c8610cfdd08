package bot

import (
	"os"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
)

type Config struct {
	Auth  AuthConfig  `toml:"auth"`
	Cache CacheConfig `toml:"cache"`
}

type AuthConfig struct {
	Discord string `toml:"discord"`
	Redis   string `toml:"redis"`
	Sentry  string `toml:"sentry"`

	Influx AuthInfluxConfig `toml:"influx"`
}

type AuthInfluxConfig struct {
	URL          string `toml:"url"`
	Token        string `toml:"token"`
	Organization string `toml:"organization"`
	Database     string `toml:"database"`
}

type CacheConfig struct {
	// MaxMessages is the per-channel message log size. 0 uses the default.
	MaxMessages int `toml:"max_messages"`

	// NoPersist disables mirroring messages and online sets to Redis.
	NoPersist bool `toml:"no_persist"`
}

func ReadConfig(path string) (c Config, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "read config file")
	}

	err = toml.Unmarshal(b, &c)
	if err != nil {
		return c, errors.Wrap(err, "unmarshal config")
	}
	return c, nil
}
