package main

import (
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/shimmeringbee/remote/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func Test_constructFilter(t *testing.T) {
	t.Run("errors on an unknown level", func(t *testing.T) {
		_, err := constructFilter(config.BaseLogging{Level: "loud"}, discard.Discard())
		assert.Error(t, err)
	})

	t.Run("accepts every known level and the empty default", func(t *testing.T) {
		for _, level := range []string{"", "panic", "fatal", "error", "warn", "info", "debug", "trace"} {
			_, err := constructFilter(config.BaseLogging{Level: level}, discard.Discard())
			assert.NoError(t, err, level)
		}
	})
}

func Test_configureLogging(t *testing.T) {
	base := logwrap.New(discard.Discard())

	t.Run("succeeds when nothing is configured", func(t *testing.T) {
		_, closer, err := configureLogging(t.TempDir(), t.TempDir(), base)
		require.NoError(t, err)

		assert.NoError(t, closer.Close())
	})

	t.Run("builds a file logger from configuration", func(t *testing.T) {
		cfgDir := t.TempDir()
		logDir := t.TempDir()

		writeFile(t, filepath.Join(cfgDir, "file.json"), `{"Type": "file", "Config": {"Filename": "remote.log", "Level": "debug"}}`)

		_, closer, err := configureLogging(cfgDir, logDir, base)
		require.NoError(t, err)
		assert.NoError(t, closer.Close())
	})

	t.Run("errors on a bad level", func(t *testing.T) {
		cfgDir := t.TempDir()
		writeFile(t, filepath.Join(cfgDir, "bad.json"), `{"Type": "stdout", "Config": {"Level": "loud"}}`)

		_, _, err := configureLogging(cfgDir, t.TempDir(), base)
		assert.Error(t, err)
	})

	t.Run("returns the file closers already opened when a later configuration fails", func(t *testing.T) {
		cfgDir := t.TempDir()
		writeFile(t, filepath.Join(cfgDir, "a-file.json"), `{"Type": "file", "Config": {"Filename": "remote.log"}}`)
		writeFile(t, filepath.Join(cfgDir, "b-bad.json"), `{"Type": "stdout", "Config": {"Level": "loud"}}`)

		_, closer, err := configureLogging(cfgDir, t.TempDir(), base)
		assert.Error(t, err)

		closers, ok := closer.(multiCloser)
		require.True(t, ok)
		assert.Len(t, closers, 1)
		assert.NoError(t, closer.Close())
	})
}
