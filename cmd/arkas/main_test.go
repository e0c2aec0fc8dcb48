package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/arkas/internal/common"
)

func TestSetupLogging(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("logging.level", "debug")
	viper.Set("logging.format", "json")
	require.NoError(t, setupLogging())

	viper.Set("logging.level", "loud")
	assert.ErrorIs(t, setupLogging(), common.ErrInvalidConfig)

	viper.Set("logging.level", "info")
	viper.Set("logging.format", "xml")
	assert.ErrorIs(t, setupLogging(), common.ErrInvalidConfig)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, versionCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "arkas dev")
}

func TestRootCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"budget"},
		{"worksheet", "submit"},
		{"worksheet", "list"},
		{"worksheet", "delete"},
		{"worksheet", "export"},
		{"worksheet", "migrate"},
		{"serve"},
		{"auth", "sheets"},
		{"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
