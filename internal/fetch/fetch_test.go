package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Data Analyst</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Data Analyst</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not-a-valid-url", "example.com/jobs", "ftp://example.com/job", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := URL(context.Background(), raw, nil)
			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_MaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.MaxBytes = 100
	result, err := URL(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Len(t, result.HTML, 100)
}

func TestExtractMainText_StripsNoise(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Machine Learning Engineer</h1>
				<p>Build models in Python.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Machine Learning Engineer")
	assert.Contains(t, text, "Build models in Python.")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	text, err := ExtractMainText(`<html><body><div>Some content here.</div></body></html>`, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_JobPostingSelectorsWin(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="sidebar">Sidebar junk</div>
			<main>Site chrome</main>
			<div class="job-description">
				<h2>Requirements</h2>
				<ul><li>5 years experience in Go</li><li>SQL</li></ul>
			</div>
		</body>
	</html>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Requirements\n5 years experience in Go\nSQL", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<html><body><div class="job-description"><p>Role summary</p><form>Apply now</form></div></body></html>`

	text, err := ExtractMainText(html, JobPostingSelectors(), "form")
	require.NoError(t, err)
	assert.Equal(t, "Role summary", text)
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", cleanWhitespace("  a \t b \n\n   \n c  "))
}
