package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jonathan/resume-analyzer/internal/cache"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"go.uber.org/zap"
)

// ErrNoDescription is returned when a page yields no description text.
var ErrNoDescription = errors.New("no job description text found")

// DefaultCacheTTL is how long fetched descriptions are reused.
const DefaultCacheTTL = 6 * time.Hour

// JobDescription is the cleaned text of a job posting page.
type JobDescription struct {
	URL       string   `json:"url"`
	Platform  Platform `json:"platform"`
	Text      string   `json:"text"`
	Rendered  bool     `json:"rendered"`
	FromCache bool     `json:"-"`
}

// JobFetcher fetches job descriptions with an optional browser fallback and
// an optional cache.
type JobFetcher struct {
	Options  *Options
	Renderer Renderer
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// NewJobFetcher returns a fetcher with default options and no browser or cache.
func NewJobFetcher(logger *zap.Logger) *JobFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobFetcher{Options: DefaultOptions(), CacheTTL: DefaultCacheTTL, Logger: logger}
}

// FetchJobDescription downloads urlStr and returns its description text.
func (f *JobFetcher) FetchJobDescription(ctx context.Context, urlStr string) (*JobDescription, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	key := cache.Key("jobdesc", urlStr)
	if f.Cache != nil {
		if cached, ok := f.lookup(ctx, key); ok {
			return cached, nil
		}
	}

	platform := DetectPlatform(urlStr)
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)

	result, err := URL(ctx, urlStr, f.Options)
	if err != nil {
		return nil, err
	}
	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	desc := &JobDescription{URL: urlStr, Platform: platform}
	if f.Renderer != nil && ShouldUseBrowser(text) {
		f.Logger.Info("description too short, falling back to browser",
			zap.String("url", urlStr), zap.Int("chars", len(text)))
		html, renderErr := f.Renderer.Render(ctx, urlStr)
		if renderErr != nil {
			f.Logger.Warn("browser rendering failed, keeping HTTP content", zap.Error(renderErr))
		} else if rendered, extractErr := ExtractMainText(html, content, noise...); extractErr == nil && len(rendered) > len(text) {
			text = rendered
			desc.Rendered = true
		}
	}

	desc.Text = ingestion.CleanText(text)
	if desc.Text == "" {
		return nil, &Error{URL: urlStr, Message: "empty page", Cause: ErrNoDescription}
	}

	if f.Cache != nil {
		f.store(ctx, key, desc)
	}
	return desc, nil
}

func (f *JobFetcher) lookup(ctx context.Context, key string) (*JobDescription, bool) {
	raw, ok, err := f.Cache.Get(ctx, key)
	if err != nil {
		f.Logger.Warn("job description cache lookup failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var desc JobDescription
	if err := json.Unmarshal([]byte(raw), &desc); err != nil {
		return nil, false
	}
	desc.FromCache = true
	return &desc, true
}

func (f *JobFetcher) store(ctx context.Context, key string, desc *JobDescription) {
	payload, err := json.Marshal(desc)
	if err != nil {
		return
	}
	ttl := f.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if err := f.Cache.Set(ctx, key, string(payload), ttl); err != nil {
		f.Logger.Warn("job description cache write failed", zap.Error(err))
	}
}
