package config

import (
	"os"
	"path"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/daedaleanai/pnrcore/log"
)

// Config holds the handful of settings the placer reads from the environment
// rather than from per-invocation flags.
type Config struct {
	// DefaultSeed seeds the PRNG when --seed is not passed on the command line.
	DefaultSeed int64 `yaml:"defaultSeed"`
	// DefaultForce mirrors --force: continue past the downgradable error kinds.
	DefaultForce bool `yaml:"defaultForce"`
}

var config *Config

const configFileName = "config"
const configFileType = "yaml"

func configDirs() []string {
	dirs := []string{}
	if d := os.Getenv("PNRCORE_CONFIG_DIR"); d != "" {
		dirs = append(dirs, d)
	}
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		dirs = append(dirs, path.Join(d, "pnrcore"))
	}
	if home, err := homedir.Dir(); err == nil {
		dirs = append(dirs, path.Join(home, ".config", "pnrcore"))
	}
	return dirs
}

func loadConfiguration() Config {
	var cfg Config

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	for _, dir := range configDirs() {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Debug("No pnrcore configuration file found, using defaults: %s", err)
		return cfg
	}
	if err := v.Unmarshal(&cfg); err != nil {
		log.Debug("Error decoding configuration file `%s`: %s. Using default configuration", v.ConfigFileUsed(), err)
		return Config{}
	}

	log.Debug("Loaded configuration from `%s`", v.ConfigFileUsed())
	return cfg
}

// GetConfig lazily loads and caches the configuration.
func GetConfig() Config {
	if config == nil {
		loaded := loadConfiguration()
		config = &loaded
	}
	return *config
}
