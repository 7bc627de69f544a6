// Package pipeline orchestrates smart import: it turns a URL, pasted text,
// or an uploaded file reference into a ParsedCase. Extraction misses degrade
// to warnings; only input validation and the url fetch path produce errors.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/casewiki/casewiki/internal/cache"
	"github.com/casewiki/casewiki/internal/extract"
	"github.com/casewiki/casewiki/internal/model"
	"github.com/casewiki/casewiki/internal/util"
)

// Importer runs the smart-import pipeline for one source at a time. Every
// call is independent; concurrent imports of different inputs are safe.
type Importer struct {
	fetcher   *Fetcher
	pageCache cache.Cache         // nil when caching is disabled
	robots    *util.RobotsChecker // nil when robots checks are disabled
	cfg       *model.Config
}

// NewImporter creates an importer from the given configuration
func NewImporter(cfg *model.Config) *Importer {
	im := &Importer{
		fetcher: NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes),
		cfg:     cfg,
	}
	if cfg.Cache.Enabled {
		im.pageCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}
	if cfg.Robots.Enabled {
		im.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	return im
}

// Import dispatches on the source type and returns a ParsedCase with source
// metadata. Unknown source types are rejected, never coerced.
func (im *Importer) Import(ctx context.Context, req model.ImportRequest) (*model.ImportResult, error) {
	start := time.Now()

	var result *model.ImportResult
	switch req.Type {
	case model.SourceURL:
		r, err := im.importURL(ctx, req.Content)
		if err != nil {
			return nil, err
		}
		result = r
	case model.SourceText:
		text := CollapseWhitespace(req.Content)
		result = &model.ImportResult{
			Case:       extract.Parse(text),
			SourceType: req.Type,
		}
	case model.SourceImage, model.SourcePDF:
		// Honest failure pending real OCR/PDF parsing: the placeholder is
		// worded to match no extraction pattern, so every field misses.
		result = &model.ImportResult{
			Case:       extract.Parse(placeholderFor(req.Type, req.Content)),
			SourceType: req.Type,
			SourceURL:  req.Content,
		}
	default:
		return nil, errInvalidInput("unsupported source type: %q", req.Type)
	}

	result.ElapsedMS = time.Since(start).Milliseconds()
	return result, nil
}

func (im *Importer) importURL(ctx context.Context, rawURL string) (*model.ImportResult, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, errInvalidInput("invalid URL %q: %v", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errInvalidInput("unsupported URL scheme %q, only http and https are allowed", parsed.Scheme)
	}

	if im.robots != nil {
		allowed, err := im.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, errRobotsDenied(rawURL)
		}
	}

	result := &model.ImportResult{
		SourceType: model.SourceURL,
		SourceURL:  rawURL,
	}

	key := cache.Key(rawURL)
	if im.pageCache != nil {
		if text, found := im.pageCache.Get(key); found {
			result.Case = extract.Parse(text)
			result.CacheHit = true
			return result, nil
		}
	}

	fetched, err := im.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	text := CleanHTML(fetched.Body)
	if im.pageCache != nil {
		im.pageCache.Set(key, text, im.cfg.Cache.TTL)
	}

	result.Case = extract.Parse(text)
	result.FinalURL = fetched.FinalURL
	result.StatusCode = fetched.StatusCode
	return result, nil
}

// placeholderFor synthesizes the stand-in text for image and PDF sources.
// The wording deliberately avoids every extraction pattern.
func placeholderFor(t model.SourceType, fileURL string) string {
	kind := "图片"
	if t == model.SourcePDF {
		kind = "PDF"
	}
	return fmt.Sprintf("%s文件暂不支持自动识别，请人工核对原件。文件地址：%s", kind, fileURL)
}
