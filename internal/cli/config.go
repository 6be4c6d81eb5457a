package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crossgrid/internal/server"
	"github.com/matzehuels/crossgrid/pkg/cache"
	"github.com/matzehuels/crossgrid/pkg/generate"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// duration reads and writes "10s"-style strings in TOML.
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the on-disk configuration. Command-line flags override it.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Cache    CacheConfig    `toml:"cache"`
	Server   server.Config  `toml:"server"`
}

// GenerateConfig holds the defaults for `crossgrid generate`.
type GenerateConfig struct {
	ResultLimit    int      `toml:"result_limit"`
	IterationLimit int      `toml:"iteration_limit"`
	Timeout        duration `toml:"timeout"`
	Format         string   `toml:"format"`
	FirstSeedOnly  bool     `toml:"first_seed_only"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend string            `toml:"backend"` // file, redis or none
	Dir     string            `toml:"dir"`     // file backend; defaults to the XDG cache dir
	Prefix  string            `toml:"prefix"`  // key prefix, useful on a shared redis
	Redis   cache.RedisConfig `toml:"redis"`
}

func defaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			ResultLimit:    generate.DefaultResultLimit,
			IterationLimit: generate.DefaultIterationLimit,
			Timeout:        duration{generate.DefaultTimeLimit},
			Format:         generate.FormatText,
		},
		Cache: CacheConfig{
			Backend: backendFile,
			Redis:   cache.RedisConfig{Addr: "localhost:6379"},
		},
		Server: server.Config{Addr: server.DefaultAddr},
	}
}

// Options converts the generate section into generate.Options.
func (c GenerateConfig) Options() generate.Options {
	return generate.Options{
		ResultLimit:    c.ResultLimit,
		IterationLimit: c.IterationLimit,
		TimeLimit:      c.Timeout.Duration,
		Format:         c.Format,
		FirstSeedOnly:  c.FirstSeedOnly,
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	switch cfg.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return cfg, fmt.Errorf("config %s: unknown cache backend %q", path, cfg.Cache.Backend)
	}
	return cfg, nil
}

func encodeConfig(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// configPath returns $XDG_CONFIG_HOME/crossgrid/config.toml.
func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.configFile)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := encodeConfig(c.Config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.configFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.configFile)
			}
			data, err := encodeConfig(defaultConfig())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(c.configFile), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(c.configFile, data, 0o644); err != nil {
				return err
			}
			printSuccess("Wrote default configuration")
			printFile(c.configFile)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
