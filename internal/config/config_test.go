package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/topicwall/internal/topics"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)

	require.Equal(t, topics.Alphabetical, cfg.App.Policy)
	require.False(t, cfg.App.ShowCounter)
	require.False(t, cfg.App.ShowFooter)
	require.Empty(t, cfg.App.DefaultTopic)
	require.True(t, strings.HasPrefix(cfg.App.ClientID, "topicwall-"))
	require.Len(t, cfg.App.ClientID, len("topicwall-")+8)
	require.Equal(t, "alphabetical", cfg.Flags["sort"])
}

func TestLoadArgsFlags(t *testing.T) {
	cfg, err := LoadArgs([]string{
		"--default-topic", "home/#",
		"--sort=chronological",
		"--show-counter",
		"--uri", "ws://broker:9001/mqtt#sensors/+",
		"--client-id", "wall-1",
		"--feed", "feed.jsonl",
		"--width", "100",
		"--height", "30",
		"--footer",
		"--trace",
		"--log-file", "trace.log",
	}, nil)
	require.NoError(t, err)

	require.Equal(t, "home/#", cfg.App.DefaultTopic)
	require.Equal(t, topics.Chronological, cfg.App.Policy)
	require.True(t, cfg.App.ShowCounter)
	require.Equal(t, "ws://broker:9001/mqtt#sensors/+", cfg.App.URI)
	require.Equal(t, "wall-1", cfg.App.ClientID)
	require.Equal(t, "feed.jsonl", cfg.App.FeedPath)
	require.Equal(t, 100, cfg.App.Width)
	require.Equal(t, 30, cfg.App.Height)
	require.True(t, cfg.App.ShowFooter)
	require.True(t, cfg.Logging.Trace)
	require.Equal(t, "trace.log", cfg.Logging.FilePath)
	require.Equal(t, "true", cfg.Flags["showCounter"])
	require.Len(t, cfg.Args, 18)
}

func TestEnvironmentFallbacks(t *testing.T) {
	env := []string{
		"TOPICWALL_DEFAULT_TOPIC=env/#",
		"TOPICWALL_SORT=chronological",
		"TOPICWALL_WIDTH=90",
		"TOPICWALL_HEIGHT=not-a-number",
		"TOPICWALL_SHOW_COUNTER=true",
		"TOPICWALL_CLIENT_ID=env-client",
	}
	cfg, err := LoadArgs(nil, env)
	require.NoError(t, err)
	require.Equal(t, "env/#", cfg.App.DefaultTopic)
	require.Equal(t, topics.Chronological, cfg.App.Policy)
	require.Equal(t, 90, cfg.App.Width)
	require.Equal(t, 0, cfg.App.Height)
	require.True(t, cfg.App.ShowCounter)
	require.Equal(t, "env-client", cfg.App.ClientID)

	cfg, err = LoadArgs([]string{"--default-topic", "flag/#"}, env)
	require.NoError(t, err)
	require.Equal(t, "flag/#", cfg.App.DefaultTopic)
}

func TestConfigFileSitsBelowEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topicwall.toml")
	body := `default_topic = "file/#"
sort = "chronological"
show_counter = true
width = 70
client_id = "file-client"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadArgs([]string{"--config", path}, nil)
	require.NoError(t, err)
	require.Equal(t, path, cfg.File)
	require.Equal(t, "file/#", cfg.App.DefaultTopic)
	require.Equal(t, topics.Chronological, cfg.App.Policy)
	require.True(t, cfg.App.ShowCounter)
	require.Equal(t, 70, cfg.App.Width)
	require.Equal(t, "file-client", cfg.App.ClientID)

	cfg, err = LoadArgs([]string{"--width", "50"}, []string{
		"TOPICWALL_CONFIG=" + path,
		"TOPICWALL_DEFAULT_TOPIC=env/#",
	})
	require.NoError(t, err)
	require.Equal(t, "env/#", cfg.App.DefaultTopic)
	require.Equal(t, 50, cfg.App.Width)
	require.Equal(t, topics.Chronological, cfg.App.Policy)
}

func TestLoadArgsErrors(t *testing.T) {
	_, err := LoadArgs([]string{"--sort", "random"}, nil)
	require.Error(t, err)

	_, err = LoadArgs([]string{"--no-such-flag"}, nil)
	require.Error(t, err)

	_, err = LoadArgs([]string{"-c", filepath.Join(t.TempDir(), "missing.toml")}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config file")
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	bad := cfg
	bad.App.Width = -1
	require.Error(t, Validate(bad))

	bad = cfg
	bad.App.Height = -5
	require.Error(t, Validate(bad))

	bad = cfg
	bad.App.URI = "ws://[::1"
	require.Error(t, Validate(bad))

	bad = cfg
	bad.App.FeedPath = t.TempDir()
	require.Error(t, Validate(bad))
}
