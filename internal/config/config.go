package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Output   OutputConfig `mapstructure:"output"`
	Tone     ToneConfig   `mapstructure:"tone"`
	Server   ServerConfig `mapstructure:"server"`
	LogLevel string       `mapstructure:"log_level"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type ToneConfig struct {
	SampleRate int     `mapstructure:"sample_rate"`
	Format     string  `mapstructure:"format"`
	Seconds    float64 `mapstructure:"seconds"`
}

type ServerConfig struct {
	ListenAddr      string  `mapstructure:"listen_addr"`
	Workers         int     `mapstructure:"workers"`
	RequestTimeout  int     `mapstructure:"request_timeout"`
	ShutdownTimeout int     `mapstructure:"shutdown_timeout"`
	MaxSeconds      float64 `mapstructure:"max_seconds"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Dir: ".",
		},
		Tone: ToneConfig{
			SampleRate: 8000,
			Format:     "pcm8",
			Seconds:    3,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         2,
			RequestTimeout:  10,
			ShutdownTimeout: 30,
			MaxSeconds:      30,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("output-dir", defaults.Output.Dir, "Directory fixtures are written to")
	fs.Int("tone-sample-rate", defaults.Tone.SampleRate, "Output sample rate in Hz")
	fs.String("tone-format", defaults.Tone.Format, "Default output encoding (pcm8|alaw)")
	fs.Float64("tone-seconds", defaults.Tone.Seconds, "Default tone duration in seconds")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-workers", defaults.Server.Workers, "Max concurrent tone generations")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request generation deadline in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.Float64("server-max-seconds", defaults.Server.MaxSeconds, "Longest tone the server will generate")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("TONEGEN")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tonegen")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("output.dir", c.Output.Dir)
	v.SetDefault("tone.sample_rate", c.Tone.SampleRate)
	v.SetDefault("tone.format", c.Tone.Format)
	v.SetDefault("tone.seconds", c.Tone.Seconds)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("server.max_seconds", c.Server.MaxSeconds)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("output.dir", "output-dir")
	v.RegisterAlias("tone.sample_rate", "tone-sample-rate")
	v.RegisterAlias("tone.format", "tone-format")
	v.RegisterAlias("tone.seconds", "tone-seconds")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.workers", "server-workers")
	v.RegisterAlias("server.request_timeout", "server-request-timeout")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
	v.RegisterAlias("server.max_seconds", "server-max-seconds")
	v.RegisterAlias("log_level", "log-level")
}
