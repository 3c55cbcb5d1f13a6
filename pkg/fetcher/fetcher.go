// Package fetcher harvests candidate article links from news source pages and feeds.
// All failures are soft: a source that can't be fetched or parsed yields no candidates.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mmcdole/gofeed"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/renewscope/pkg/content"
)

const (
	maxPageSize      = 5 * 1024 * 1024
	robotsAgent      = "renewscope"
	hopConcurrency   = 4
	defaultRobotsLRU = 256
)

// Options defines fetcher settings, zero values are replaced by defaults
type Options struct {
	Timeout       time.Duration
	UserAgent     string
	MaxCandidates int
	CategoryHops  int
	RespectRobots bool
}

// Fetcher collects candidate article URLs from a source page
type Fetcher struct {
	client *http.Client
	opts   Options
	robots *lru.Cache[string, *robotstxt.RobotsData]
}

// New makes a fetcher
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = 30
	}
	cache, _ := lru.New[string, *robotstxt.RobotsData](defaultRobotsLRU) // fails on non-positive size only
	return &Fetcher{client: &http.Client{Timeout: opts.Timeout}, opts: opts, robots: cache}
}

// CandidateURLs returns absolute, deduplicated links from the source page that look like articles,
// in discovery order. Feed sources return their item links.
func (f *Fetcher) CandidateURLs(ctx context.Context, sourceURL string) []string {
	base, err := url.Parse(sourceURL)
	if err != nil || base.Host == "" {
		lgr.Printf("[WARN] invalid source url %q: %v", sourceURL, err)
		return nil
	}
	if !f.Allowed(ctx, sourceURL) {
		lgr.Printf("[WARN] source %s disallowed by robots.txt", sourceURL)
		return nil
	}

	body, contentType, err := f.get(ctx, sourceURL)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch source %s: %v", sourceURL, err)
		return nil
	}

	if isFeed(contentType, body) {
		res := f.feedLinks(base, body)
		lgr.Printf("[DEBUG] feed %s, %d candidates", sourceURL, len(res))
		return res
	}

	links, err := pageLinks(base, body)
	if err != nil {
		lgr.Printf("[WARN] failed to parse source %s: %v", sourceURL, err)
		return nil
	}

	seen := map[string]bool{}
	var res, categories []string
	for _, link := range links {
		if seen[link] {
			continue
		}
		seen[link] = true
		u, _ := url.Parse(link) // already parsed in pageLinks
		if !sameSite(base, u) {
			continue
		}
		if f.opts.CategoryHops > 0 && isCategoryPage(u) {
			categories = append(categories, link)
			continue
		}
		if isArticleLike(u) {
			res = append(res, link)
		}
	}

	if f.opts.CategoryHops > 0 && len(categories) > 0 {
		res = append(res, f.hop(ctx, base, categories, seen)...)
	}

	if len(res) > f.opts.MaxCandidates {
		res = res[:f.opts.MaxCandidates]
	}
	lgr.Printf("[DEBUG] source %s, %d candidates", sourceURL, len(res))
	return res
}

// hop fetches up to CategoryHops category pages concurrently and harvests their article links.
// Results keep category order and skip links already seen on the source page.
func (f *Fetcher) hop(ctx context.Context, base *url.URL, categories []string, seen map[string]bool) []string {
	if len(categories) > f.opts.CategoryHops {
		categories = categories[:f.opts.CategoryHops]
	}
	results := make([][]string, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hopConcurrency)
	for i, catURL := range categories {
		g.Go(func() error {
			if !f.Allowed(gctx, catURL) {
				return nil
			}
			body, _, err := f.get(gctx, catURL)
			if err != nil {
				lgr.Printf("[DEBUG] failed to fetch category page %s: %v", catURL, err)
				return nil
			}
			links, err := pageLinks(base, body)
			if err != nil {
				lgr.Printf("[DEBUG] failed to parse category page %s: %v", catURL, err)
				return nil
			}
			results[i] = links
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	var res []string
	for _, links := range results {
		for _, link := range links {
			if seen[link] {
				continue
			}
			seen[link] = true
			u, _ := url.Parse(link)
			if sameSite(base, u) && !isCategoryPage(u) && isArticleLike(u) {
				res = append(res, link)
			}
		}
	}
	return res
}

func (f *Fetcher) feedLinks(base *url.URL, body []byte) []string {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		lgr.Printf("[WARN] failed to parse feed %s: %v", base, err)
		return nil
	}
	seen := map[string]bool{}
	var res []string
	for _, item := range feed.Items {
		link, ok := resolve(base, item.Link)
		if !ok || seen[link] {
			continue
		}
		seen[link] = true
		res = append(res, link)
		if len(res) >= f.opts.MaxCandidates {
			break
		}
	}
	return res
}

// Allowed reports whether robots.txt of the url's host permits fetching it.
// Always true when robots checks are disabled or robots.txt can't be loaded.
func (f *Fetcher) Allowed(ctx context.Context, rawURL string) bool {
	if !f.opts.RespectRobots {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	key := u.Scheme + "://" + u.Host
	data, ok := f.robots.Get(key)
	if !ok {
		data = f.loadRobots(ctx, key)
		f.robots.Add(key, data)
	}
	if data == nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, robotsAgent)
}

func (f *Fetcher) loadRobots(ctx context.Context, hostURL string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hostURL+"/robots.txt", http.NoBody)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", f.userAgent())
	resp, err := f.client.Do(req)
	if err != nil {
		lgr.Printf("[DEBUG] can't load robots.txt for %s: %v", hostURL, err)
		return nil
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		lgr.Printf("[DEBUG] can't parse robots.txt for %s: %v", hostURL, err)
		return nil
	}
	return data
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (body []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	content.SetBrowserHeaders(req, f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, rawURL)
	}
	body, err = io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (f *Fetcher) userAgent() string {
	if f.opts.UserAgent != "" {
		return f.opts.UserAgent
	}
	return content.DefaultUserAgent
}

// pageLinks returns all resolved links of the page that pass exclusion rules, duplicates included
func pageLinks(base *url.URL, body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var res []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if link, ok := resolve(base, href); ok {
			res = append(res, link)
		}
	})
	return res, nil
}

var socialHosts = []string{
	"facebook.com", "twitter.com", "x.com", "linkedin.com", "instagram.com", "youtube.com", "youtu.be",
	"whatsapp.com", "t.me", "telegram.me", "pinterest.com", "reddit.com", "tumblr.com", "koo.in",
}

var binaryExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".zip", ".rar", ".doc", ".docx",
	".xls", ".xlsx", ".ppt", ".pptx", ".mp3", ".mp4", ".avi", ".mov", ".exe", ".dmg",
}

// resolve makes href absolute against base and applies exclusion rules
func resolve(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false // mailto, tel, javascript and the like
	}
	u.Fragment = ""
	host := strings.ToLower(u.Hostname())
	for _, s := range socialHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return "", false
		}
	}
	path := strings.ToLower(u.Path)
	for _, ext := range binaryExtensions {
		if strings.HasSuffix(path, ext) {
			return "", false
		}
	}
	return u.String(), true
}

// sameSite compares registrable domains, so www.example.com and news.example.com are the same site
func sameSite(a, b *url.URL) bool {
	if a == nil || b == nil {
		return false
	}
	ha, hb := strings.ToLower(a.Hostname()), strings.ToLower(b.Hostname())
	if ha == hb {
		return true
	}
	da, errA := publicsuffix.EffectiveTLDPlusOne(ha)
	db, errB := publicsuffix.EffectiveTLDPlusOne(hb)
	return errA == nil && errB == nil && da == db
}

var (
	articleWords = []string{"article", "news", "story", "press-release"}
	datePathRe   = regexp.MustCompile(`(?:^|/)\d{4}[/-]\d{2}(?:/|-|$)`)
	categoryRe   = regexp.MustCompile(`/(?:category|tag|topics)/`)
)

func isArticleLike(u *url.URL) bool {
	path := strings.ToLower(u.Path)
	for _, w := range articleWords {
		if strings.Contains(path, w) {
			return true
		}
	}
	return datePathRe.MatchString(path)
}

func isCategoryPage(u *url.URL) bool {
	return categoryRe.MatchString(strings.ToLower(u.Path))
}

func isFeed(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "rss") || strings.Contains(ct, "atom") {
		return true
	}
	if strings.Contains(ct, "html") {
		return false
	}
	head := bytes.ToLower(body[:min(len(body), 512)])
	return bytes.Contains(head, []byte("<rss")) || bytes.Contains(head, []byte("<feed")) ||
		bytes.Contains(head, []byte("<rdf:rdf"))
}
