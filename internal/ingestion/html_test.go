package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/1", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/jobs/1", PlatformWorkday},
		{"https://www.linkedin.com/jobs/view/123", PlatformLinkedIn},
		{"https://example.com/careers", PlatformUnknown},
		{"", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPlatform(tt.url), tt.url)
	}
}

const greenhousePage = `<!DOCTYPE html>
<html><head>
<link rel="canonical" href="https://boards.greenhouse.io/acme/jobs/42">
<title>Backend Engineer</title>
</head><body>
<nav>Jobs | About | Login</nav>
<div class="job__description body">
<h2>About the role</h2>
<p>You will build   payment   APIs.</p>
<ul><li>Go</li><li>PostgreSQL</li></ul>
<form class="application-form"><input name="email"></form>
</div>
<footer>© Acme</footer>
</body></html>`

func TestExtractText_Greenhouse(t *testing.T) {
	text, err := ExtractText(greenhousePage)
	require.NoError(t, err)

	assert.Contains(t, text, "About the role")
	assert.Contains(t, text, "You will build payment APIs.")
	assert.Contains(t, text, "- Go")
	assert.Contains(t, text, "- PostgreSQL")
	assert.NotContains(t, text, "Login")
	assert.NotContains(t, text, "© Acme")
	assert.NotContains(t, text, "email")
}

func TestExtractText_FallsBackToBody(t *testing.T) {
	text, err := ExtractText(`<html><body><p>Plain posting</p><script>var x = 1;</script></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Plain posting", text)
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, LooksLikeHTML(greenhousePage))
	assert.True(t, LooksLikeHTML("  <div>hi</div>"))
	assert.False(t, LooksLikeHTML("We are hiring a Go engineer. 5 < 6."))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.html")
	require.NoError(t, os.WriteFile(path, []byte(greenhousePage), 0o644))

	t.Run("literal", func(t *testing.T) {
		text, err := Load("Senior   Go engineer", nil)
		require.NoError(t, err)
		assert.Equal(t, "Senior Go engineer", text)
	})

	t.Run("stdin", func(t *testing.T) {
		text, err := Load("-", strings.NewReader("Line one\r\n\r\n\r\n\r\nLine two"))
		require.NoError(t, err)
		assert.Equal(t, "Line one\n\nLine two", text)
	})

	t.Run("html file", func(t *testing.T) {
		text, err := Load("@"+path, nil)
		require.NoError(t, err)
		assert.Contains(t, text, "payment APIs")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("@"+filepath.Join(dir, "nope.txt"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file not found")
	})

	t.Run("blank", func(t *testing.T) {
		_, err := Load("   \n ", nil)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})
}
