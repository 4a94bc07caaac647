package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/atomicstack/topicwall/internal/app"
	"github.com/atomicstack/topicwall/internal/topics"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig       = "TOPICWALL_CONFIG"
	envDefaultTopic = "TOPICWALL_DEFAULT_TOPIC"
	envShowCounter  = "TOPICWALL_SHOW_COUNTER"
	envSort         = "TOPICWALL_SORT"
	envURI          = "TOPICWALL_URI"
	envClientID     = "TOPICWALL_CLIENT_ID"
	envFeed         = "TOPICWALL_FEED"
	envWidth        = "TOPICWALL_WIDTH"
	envHeight       = "TOPICWALL_HEIGHT"
	envShowFooter   = "TOPICWALL_FOOTER"
	envTrace        = "TOPICWALL_TRACE"
	envLogFile      = "TOPICWALL_LOG_FILE"
)

// fileConfig is the optional TOML layer. Values sit below env and flags.
type fileConfig struct {
	DefaultTopic string `toml:"default_topic"`
	ShowCounter  bool   `toml:"show_counter"`
	Sort         string `toml:"sort"`
	URI          string `toml:"uri"`
	ClientID     string `toml:"client_id"`
	Feed         string `toml:"feed"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	Footer       bool   `toml:"footer"`
	Trace        bool   `toml:"trace"`
	LogFile      string `toml:"log_file"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := configPath(args, env)
	file := fileConfig{Sort: topics.Alphabetical.String()}
	if path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return Config{}, errors.Wrapf(err, "read config file %s", path)
		}
	}

	fs := pflag.NewFlagSet("topicwall", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.StringP("config", "c", path, "path to a TOML config file")
	defaultTopic := fs.String("default-topic", envOrDefault(env, envDefaultTopic, file.DefaultTopic), "topic filter used when the URI has no fragment")
	showCounter := fs.Bool("show-counter", envOrBool(env, envShowCounter, file.ShowCounter), "show a per-topic message counter")
	sortName := fs.String("sort", envOrDefault(env, envSort, file.Sort), "placement of new topics: alphabetical or chronological")
	uri := fs.String("uri", envOrDefault(env, envURI, file.URI), "endpoint URI shown in the status bar; its #fragment sets the topic")
	clientID := fs.String("client-id", envOrDefault(env, envClientID, file.ClientID), "client identifier (generated when empty)")
	feed := fs.String("feed", envOrDefault(env, envFeed, file.Feed), "JSON-lines file to read messages from")
	width := fs.Int("width", envOrInt(env, envWidth, file.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, file.Footer), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	policy, err := topics.ParsePolicy(*sortName)
	if err != nil {
		return Config{}, err
	}
	id := strings.TrimSpace(*clientID)
	if id == "" {
		id = "topicwall-" + uuid.NewString()[:8]
	}

	cfg := Config{
		App: app.Config{
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			ShowCounter:  *showCounter,
			Policy:       policy,
			DefaultTopic: *defaultTopic,
			URI:          *uri,
			ClientID:     id,
			FeedPath:     *feed,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"config":       path,
			"defaultTopic": *defaultTopic,
			"showCounter":  strconv.FormatBool(*showCounter),
			"sort":         policy.String(),
			"uri":          *uri,
			"clientId":     id,
			"feed":         *feed,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath finds --config ahead of the full parse so the file can supply
// flag defaults.
func configPath(args []string, env map[string]string) string {
	path := envOrDefault(env, envConfig, "")
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				path = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			path = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c="):
			path = strings.TrimPrefix(arg, "-c=")
		}
	}
	return path
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the application cannot start with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return errors.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return errors.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.URI != "" {
		if _, err := url.Parse(cfg.App.URI); err != nil {
			return errors.Wrap(err, "invalid uri")
		}
	}
	if cfg.App.FeedPath != "" {
		if info, err := os.Stat(cfg.App.FeedPath); err == nil && info.IsDir() {
			return errors.Errorf("feed %s is a directory", cfg.App.FeedPath)
		}
	}
	return nil
}
