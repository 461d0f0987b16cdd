package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_url": "https://api.example.com/api/v1",
		"timeout_seconds": 20,
		"output": "yaml",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.example.com/api/v1", cfg.APIURL)
	assert.Equal(t, 20, cfg.TimeoutSeconds)
	assert.Equal(t, "yaml", cfg.Output)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "valid config", cfg: Config{APIURL: DefaultAPIURL, Output: "json", ConsolePort: 3000, DownloadDir: dir}},
		{name: "bad url", cfg: Config{APIURL: "not a url"}, wantErr: "APIURL"},
		{name: "bad output", cfg: Config{Output: "xml"}, wantErr: "Output"},
		{name: "negative timeout", cfg: Config{TimeoutSeconds: -1}, wantErr: "TimeoutSeconds"},
		{name: "port out of range", cfg: Config{ConsolePort: 70000}, wantErr: "ConsolePort"},
		{name: "missing download dir", cfg: Config{DownloadDir: filepath.Join(dir, "nope")}, wantErr: "download_dir not found"},
		{name: "download dir is a file", cfg: Config{DownloadDir: file}, wantErr: "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIURL:         DefaultAPIURL,
		Output:         "table",
		TimeoutSeconds: 30,
		ConsolePort:    3000,
	}

	partial := Config{
		APIURL:  "https://api.example.com",
		IDToken: "tok",
	}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "https://api.example.com", merged.APIURL)
	assert.Equal(t, "tok", merged.IDToken)
	assert.Equal(t, "table", merged.Output)
	assert.Equal(t, 30, merged.TimeoutSeconds)
	assert.Equal(t, 3000, merged.ConsolePort)
}

func TestFromEnv_PrefersJobdeskURL(t *testing.T) {
	t.Setenv(EnvPublicAPIURL, "https://public.example.com")
	t.Setenv(EnvAPIURL, "")
	assert.Equal(t, "https://public.example.com", FromEnv().APIURL)

	t.Setenv(EnvAPIURL, "https://jobdesk.example.com")
	assert.Equal(t, "https://jobdesk.example.com", FromEnv().APIURL)
}

func TestFromEnv_IgnoresBadInts(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	t.Setenv(EnvATSTimeout, "120")
	cfg := FromEnv()
	assert.Equal(t, 0, cfg.TimeoutSeconds)
	assert.Equal(t, 120, cfg.ATSTimeoutSeconds)
}

func TestResolve_Precedence(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvPublicAPIURL, "")
	t.Setenv(EnvIDToken, "env-token")
	t.Setenv(EnvOutput, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvATSTimeout, "")
	t.Setenv(EnvDownloadDir, "")

	file := &Config{APIURL: "https://file.example.com", IDToken: "file-token", Output: "json"}
	flags := Config{Output: "yaml"}

	cfg := Resolve(flags, file)
	assert.Equal(t, "https://file.example.com", cfg.APIURL)
	assert.Equal(t, "env-token", cfg.IDToken)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, DefaultATSTimeoutSeconds, cfg.ATSTimeoutSeconds)
	assert.Equal(t, 3000, cfg.ConsolePort)

	cfg = Resolve(Config{}, nil)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "table", cfg.Output)
}

func TestTimeouts(t *testing.T) {
	cfg := Config{TimeoutSeconds: 15}
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.Equal(t, DefaultATSTimeoutSeconds*time.Second, cfg.ATSTimeout())

	cfg.ATSTimeoutSeconds = 60
	assert.Equal(t, time.Minute, cfg.ATSTimeout())
	assert.Equal(t, time.Duration(0), (&Config{}).Timeout())
}
