package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AXAMINE_HOME", t.TempDir())

	require.NoError(t, Load(""))

	assert.Equal(t, DefaultEndpoint, C.Service.Endpoint)
	assert.Equal(t, DefaultTimeout, C.Service.Timeout.Duration)
	assert.Equal(t, DefaultGreeting, C.UI.Greeting)
	assert.Equal(t, DefaultMode, C.UI.Mode)
	assert.True(t, C.UI.Markdown)
	assert.Equal(t, Home(), C.LogDir)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
debug = true

[service]
endpoint = "http://chat.internal/api/chat"
timeout = "5s"

[service.headers]
X-Team = "cardio"

[ui]
greeting = "Hi"
mode = "neurologist"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	t.Setenv("AXAMINE_MODE", "report")
	require.NoError(t, Load(path))

	assert.Equal(t, "http://chat.internal/api/chat", C.Service.Endpoint)
	assert.Equal(t, 5*time.Second, C.Service.Timeout.Duration)
	assert.Equal(t, "cardio", C.Service.Headers["X-Team"])
	assert.Equal(t, "Hi", C.UI.Greeting)
	assert.Equal(t, "report", C.UI.Mode)
	assert.True(t, C.Debug)
	assert.Equal(t, path, C.Path())
}

func TestLoadBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[service]\ntimeout = \"soon\"\n"), 0644))

	assert.Error(t, Load(path))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, Load(path))

	C.UI.Mode = "image"
	C.Service.Timeout = Duration{12 * time.Second}
	require.NoError(t, Save())

	require.NoError(t, Load(path))
	assert.Equal(t, "image", C.UI.Mode)
	assert.Equal(t, 12*time.Second, C.Service.Timeout.Duration)
}
