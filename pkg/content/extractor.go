// Package content downloads an article page and pulls its readable text with an ordered chain of
// extraction strategies. The first strategy producing enough text wins.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/go-pkgz/lgr"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/renewscope/pkg/domain"
)

// ErrNoContent is returned when no strategy produced usable text
var ErrNoContent = errors.New("no usable content")

const defaultMaxBodySize = 10 * 1024 * 1024

// Options defines extractor settings, zero values are replaced by defaults
type Options struct {
	Timeout       time.Duration
	UserAgent     string
	MinTextLength int
	MaxBodySize   int64
}

// strategy turns a downloaded page into content, a nil result means nothing usable was found
type strategy struct {
	name string
	fn   func(body []byte, pageURL *url.URL) (*domain.ExtractedContent, error)
}

// HTTPExtractor downloads pages and extracts article content
type HTTPExtractor struct {
	client     *http.Client
	opts       Options
	strategies []strategy
}

// NewHTTPExtractor creates a content extractor with trafilatura, readability and generic strategies
func NewHTTPExtractor(opts Options) *HTTPExtractor {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = domain.MinTextLength
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}
	return &HTTPExtractor{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
		strategies: []strategy{
			{name: "trafilatura", fn: extractTrafilatura},
			{name: "readability", fn: extractReadability},
			{name: "generic", fn: extractGeneric},
		},
	}
}

// Extract retrieves the page and returns the first usable result of the strategy chain.
// Errors wrap ErrNoContent when the page was downloaded but no strategy produced enough text.
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (*domain.ExtractedContent, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", urlStr)
	}

	body, err := e.download(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	for _, s := range e.strategies {
		res := e.run(s, body, parsedURL)
		if res == nil {
			continue
		}
		res.URL = urlStr
		res.Strategy = s.name
		return res, nil
	}
	return nil, fmt.Errorf("extract %s: %w", urlStr, ErrNoContent)
}

func (e *HTTPExtractor) download(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	SetBrowserHeaders(req, e.opts.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if permanentStatus(resp.StatusCode) {
			return nil, fmt.Errorf("status code %d for URL %s: %w", resp.StatusCode, urlStr, ErrNoContent)
		}
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}
	if ct := resp.Header.Get("Content-Type"); !isHTML(ct) {
		return nil, fmt.Errorf("unsupported content type %q for URL %s: %w", ct, urlStr, ErrNoContent)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.opts.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", urlStr, err)
	}
	return body, nil
}

// permanentStatus reports client errors which won't change on retry, 408 and 429 are transient
func permanentStatus(code int) bool {
	return code >= 400 && code < 500 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests
}

// run executes one strategy, errors and panics are logged and treated as no result
func (e *HTTPExtractor) run(s strategy, body []byte, pageURL *url.URL) (res *domain.ExtractedContent) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[DEBUG] %s strategy panicked on %s: %v", s.name, pageURL, r)
			res = nil
		}
	}()

	c, err := s.fn(body, pageURL)
	if err != nil {
		lgr.Printf("[DEBUG] %s strategy failed on %s: %v", s.name, pageURL, err)
		return nil
	}
	if c == nil {
		return nil
	}
	c.Text = normalizeSpace(c.Text)
	c.Title = normalizeSpace(c.Title)
	if len(c.Text) < e.opts.MinTextLength {
		lgr.Printf("[DEBUG] %s strategy got %d chars from %s, too short", s.name, len(c.Text), pageURL)
		return nil
	}
	return c
}

func extractTrafilatura(body []byte, pageURL *url.URL) (*domain.ExtractedContent, error) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}
	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}
	if result == nil {
		return nil, nil
	}
	res := &domain.ExtractedContent{Text: result.ContentText, Title: result.Metadata.Title}
	if d := result.Metadata.Date; !d.IsZero() {
		res.Published = &d
	}
	return res, nil
}

func extractReadability(body []byte, pageURL *url.URL) (*domain.ExtractedContent, error) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}
	res := &domain.ExtractedContent{Text: article.TextContent, Title: article.Title}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return res, nil //nolint:nilerr // metadata is optional
	}
	if t := metaTitle(doc); t != "" {
		res.Title = t
	}
	res.Published = metaDate(doc)
	if res.Published == nil && article.PublishedTime != nil && !article.PublishedTime.IsZero() {
		res.Published = article.PublishedTime
	}
	return res, nil
}

var (
	noiseSelector     = "script, style, noscript, nav, header, footer, aside, form, iframe"
	containerSelector = "[id*=content], [class*=content], [id*=article], [class*=article], [class*=post], " +
		"[id*=main], [class*=main], [class*=story], [class*=entry]"
)

func extractGeneric(body []byte, _ *url.URL) (*domain.ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	res := &domain.ExtractedContent{Title: metaTitle(doc), Published: metaDate(doc)}

	doc.Find(noiseSelector).Remove()
	container := pickContainer(doc)
	if container == nil {
		return nil, nil
	}

	var parts []string
	container.Find("p").Each(func(_ int, s *goquery.Selection) {
		if h, err := s.Html(); err == nil {
			parts = append(parts, h)
		}
	})
	if len(parts) == 0 {
		h, err := container.Html()
		if err != nil {
			return nil, fmt.Errorf("render container: %w", err)
		}
		parts = append(parts, h)
	}

	policy := bluemonday.StrictPolicy()
	res.Text = html.UnescapeString(policy.Sanitize(strings.Join(parts, "\n")))
	return res, nil
}

// pickContainer returns <article>, else the content-like element with the most text, else the largest <div>
func pickContainer(doc *goquery.Document) *goquery.Selection {
	if a := doc.Find("article").First(); a.Length() > 0 {
		return a
	}
	if best := largest(doc.Find(containerSelector)); best != nil {
		return best
	}
	return largest(doc.Find("div"))
}

func largest(sel *goquery.Selection) *goquery.Selection {
	var best *goquery.Selection
	bestLen := 0
	sel.Each(func(_ int, s *goquery.Selection) {
		if l := len(strings.TrimSpace(s.Text())); l > bestLen {
			best, bestLen = s, l
		}
	})
	return best
}

func metaTitle(doc *goquery.Document) string {
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

var dateSelectors = []struct{ selector, attr string }{
	{`meta[property="article:published_time"]`, "content"},
	{`meta[name="date"]`, "content"},
	{`meta[name="pubdate"]`, "content"},
	{`meta[itemprop="datePublished"]`, "content"},
	{`time[datetime]`, "datetime"},
}

func metaDate(doc *goquery.Document) *time.Time {
	for _, ds := range dateSelectors {
		v, ok := doc.Find(ds.selector).First().Attr(ds.attr)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		t, err := dateparse.ParseAny(strings.TrimSpace(v))
		if err != nil {
			continue
		}
		return &t
	}
	return nil
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "html") || strings.Contains(ct, "xml")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
