package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\npresentation: server\nhttp-port: \"8080\"\ngame:\n  mode: bot\n  computer-delay: 250ms\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: values from the file should be used
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, PresentationServer, conf.Presentation)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, "bot", conf.Game.Mode)
		assert.Equal(t, 250*time.Millisecond, conf.Game.ComputerDelay)
	})

	t.Run("Falls back to defaults without a file", func(t *testing.T) {
		// Given: no config file anywhere
		isolateXDG(t)

		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults should be used
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, PresentationTerminal, conf.Presentation)
		assert.Equal(t, "pvp", conf.Game.Mode)
		assert.Equal(t, 500*time.Millisecond, conf.Game.ComputerDelay)
	})

	t.Run("Reads the XDG config file when the local one is missing", func(t *testing.T) {
		// Given: a config file only under the XDG config home
		home := isolateXDG(t)
		require.NoError(t, os.MkdirAll(filepath.Join(home, "tictactoe"), 0o700))
		require.NoError(t, os.WriteFile(filepath.Join(home, xdgConfigFile), []byte("presentation: server\n"), 0o600))

		// When: loading a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the XDG file should be used
		require.NoError(t, err)
		assert.Equal(t, PresentationServer, conf.Presentation)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		isolateXDG(t)
		t.Setenv("GAME_MODE", "bot")

		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, "bot", conf.Game.Mode)
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("game: [not, a, map"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}

// isolateXDG points the XDG config dirs at empty temp dirs and returns the config home.
func isolateXDG(t *testing.T) string {
	t.Helper()

	// registered first so it runs after t.Setenv has restored the environment
	t.Cleanup(xdg.Reload)

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()

	return home
}
