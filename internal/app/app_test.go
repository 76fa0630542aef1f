package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/qwallet/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Database.Path = filepath.Join(t.TempDir(), "qwallet.db")
	cfg.Log.Level = "error"

	a, cleanup, err := NewApp(cfg, os.DirFS("../.."))
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, a.Service.Contacts)
	assert.NotNil(t, a.Service.Node)
	assert.Same(t, cfg, a.Service.Config)
	assert.FileExists(t, cfg.Database.Path)

	_, err = a.Service.Contacts.AddContact("alice", "QdSnUy6sUiEnaN87dWmE92g1uQjrvPgrWG", "")
	require.NoError(t, err)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	t.Run("log level", func(t *testing.T) {
		cfg := config.NewDefault()
		cfg.Log.Level = "loud"
		_, _, err := NewApp(cfg, os.DirFS("../.."))
		assert.ErrorContains(t, err, "logger")
	})

	t.Run("node url", func(t *testing.T) {
		cfg := config.NewDefault()
		cfg.Node.URL = "not a url"
		_, _, err := NewApp(cfg, os.DirFS("../.."))
		assert.ErrorContains(t, err, "node client")
	})
}
