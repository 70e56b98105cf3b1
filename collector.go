package trends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const (
	hashtagListPath = "/creative_radar_api/v1/popular_trend/hashtag/list"
	songRankPath    = "/creative_radar_api/v1/popular_trend/sound/rank_list"

	// Creative Center caps list pages at 20 items.
	listPageSize = 20

	defaultHashtagLimit  = 50
	defaultTrendingLimit = 20
	defaultBreakoutLimit = 10
)

var creativeCenterURL, _ = url.Parse("https://ads.tiktok.com")

// Collector pulls trend rankings from the TikTok Creative Center list API.
// The API needs only session cookies, which a headless browser visit can
// bootstrap; requests themselves go through a plain HTTP client.
type Collector struct {
	client    *http.Client
	proxy     string
	userAgent string
	baseURL   string // defaults to "https://ads.tiktok.com"
	log       *zap.Logger

	// Browser for session bootstrap only.
	browser      *rod.Browser
	page         *rod.Page
	browserMu    sync.Mutex
	sessionReady atomic.Bool

	// refreshSession re-establishes a rejected session. Replaceable for testing.
	refreshSession func() error

	// Rate limiting between list API pages. ~30/min → 2s min.
	listDelay time.Duration
	lastList  time.Time
	listMu    sync.Mutex

	hashtagLimit  int
	trendingLimit int
	breakoutLimit int
}

// defaultTransport returns an http.Transport optimized for scraping:
// connection pooling, keep-alive, and TLS handshake caching.
func defaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
}

// NewCollector creates a Collector with sensible defaults. The browser is
// not launched until InitSession is called.
func NewCollector() *Collector {
	jar, _ := cookiejar.New(nil)
	c := &Collector{
		client: &http.Client{
			Jar:       jar,
			Timeout:   15 * time.Second,
			Transport: defaultTransport(),
		},
		baseURL:       "https://ads.tiktok.com",
		userAgent:     defaultUserAgent,
		log:           zap.NewNop(),
		listDelay:     2 * time.Second,
		hashtagLimit:  defaultHashtagLimit,
		trendingLimit: defaultTrendingLimit,
		breakoutLimit: defaultBreakoutLimit,
	}
	c.refreshSession = c.ensureSession
	return c
}

// WithListDelay sets the minimum delay between list API requests.
func (c *Collector) WithListDelay(d time.Duration) *Collector {
	c.listDelay = d
	return c
}

// WithLimits sets how many hashtags, trending songs, and breakout songs a
// collection run fetches. Zero values keep the defaults.
func (c *Collector) WithLimits(hashtags, trending, breakout int) *Collector {
	if hashtags > 0 {
		c.hashtagLimit = hashtags
	}
	if trending > 0 {
		c.trendingLimit = trending
	}
	if breakout > 0 {
		c.breakoutLimit = breakout
	}
	return c
}

// WithLogger sets the logger.
func (c *Collector) WithLogger(log *zap.Logger) *Collector {
	c.log = log
	return c
}

// SetProxy configures an HTTP/HTTPS or SOCKS5 proxy for the HTTP client.
// Connection pooling and keep-alive settings are preserved.
func (c *Collector) SetProxy(proxyAddr string) error {
	if proxyAddr == "" {
		c.client.Transport = defaultTransport()
		c.proxy = ""
		return nil
	}

	u, err := url.Parse(proxyAddr)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	base := defaultTransport()

	switch u.Scheme {
	case "http", "https":
		base.Proxy = http.ProxyURL(u)
		c.client.Transport = base
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("socks5 proxy: %w", err)
		}
		dc, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5: context dialer not supported")
		}
		base.DialContext = dc.DialContext
		c.client.Transport = base
	default:
		return fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}

	c.proxy = proxyAddr
	return nil
}

// doRequest builds and executes a list API request with standard headers.
// No built-in rate limiting — callers use waitForList.
func (c *Collector) doRequest(ctx context.Context, urlStr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", c.baseURL+"/business/creativecenter/inspiration/popular/hashtag/pc/en")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	}

	return resp, nil
}

// waitForList enforces rate limiting between list API pages.
func (c *Collector) waitForList() {
	c.listMu.Lock()
	defer c.listMu.Unlock()
	c.throttle(&c.lastList, c.listDelay)
}

// throttle sleeps if needed to enforce min delay + jitter between requests.
func (c *Collector) throttle(lastReq *time.Time, delay time.Duration) {
	if delay == 0 {
		return
	}
	elapsed := time.Since(*lastReq)
	jitter := time.Duration(rand.Int64N(int64(500 * time.Millisecond)))
	wait := delay + jitter - elapsed
	if wait > 0 {
		time.Sleep(wait)
	}
	*lastReq = time.Now()
}

// FetchHashtags pulls ranked hashtags for a timeframe, paginating until the
// limit is reached or the API reports no more pages.
func (c *Collector) FetchHashtags(ctx context.Context, tf Timeframe, limit int) ([]HashtagRecord, error) {
	period := "7"
	if tf == Timeframe30d {
		period = "30"
	}

	var all []HashtagRecord
	for page := 1; len(all) < limit; page++ {
		urlStr := fmt.Sprintf(
			"%s%s?page=%d&limit=%d&period=%s&order_by=popular",
			c.baseURL, hashtagListPath, page, listPageSize, period,
		)

		c.waitForList()

		resp, err := c.doRequest(ctx, urlStr)
		if err != nil {
			return all, fmt.Errorf("fetch hashtags %s page %d: %w", tf, page, err)
		}

		var result hashtagListResponse
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			return all, fmt.Errorf("decode hashtag list: %w", err)
		}
		if result.Code != 0 {
			return all, fmt.Errorf("%w: hashtag list code %d: %s", ErrInvalidResponse, result.Code, result.Msg)
		}

		for _, raw := range result.Data.List {
			all = append(all, parseHashtagItem(raw))
		}
		if !result.Data.Pagination.HasMore || len(result.Data.List) == 0 {
			break
		}
	}

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// FetchSongs pulls one of the two song charts, paginating like FetchHashtags.
func (c *Collector) FetchSongs(ctx context.Context, chart SongType, limit int) ([]SongRecord, error) {
	rankType := "popular"
	if chart == SongBreakout {
		rankType = "surge"
	}

	var all []SongRecord
	for page := 1; len(all) < limit; page++ {
		urlStr := fmt.Sprintf(
			"%s%s?page=%d&limit=%d&period=7&rank_type=%s",
			c.baseURL, songRankPath, page, listPageSize, rankType,
		)

		c.waitForList()

		resp, err := c.doRequest(ctx, urlStr)
		if err != nil {
			return all, fmt.Errorf("fetch %s songs page %d: %w", chart, page, err)
		}

		var result songListResponse
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			return all, fmt.Errorf("decode song list: %w", err)
		}
		if result.Code != 0 {
			return all, fmt.Errorf("%w: song list code %d: %s", ErrInvalidResponse, result.Code, result.Msg)
		}

		for _, raw := range result.Data.List {
			all = append(all, parseSongItem(raw))
		}
		if !result.Data.Pagination.HasMore || len(result.Data.List) == 0 {
			break
		}
	}

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Collect runs a full collection pass: both hashtag windows plus both song
// charts, stamped with the collection time. When the API rejects the
// current session mid-pass, the browser session is refreshed once and the
// failed fetch retried before giving up.
func (c *Collector) Collect(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	hashtags7d, err := fetchWithSessionRetry(c, func() ([]HashtagRecord, error) {
		return c.FetchHashtags(ctx, Timeframe7d, c.hashtagLimit)
	})
	if err != nil {
		return snap, err
	}
	hashtags30d, err := fetchWithSessionRetry(c, func() ([]HashtagRecord, error) {
		return c.FetchHashtags(ctx, Timeframe30d, c.hashtagLimit)
	})
	if err != nil {
		return snap, err
	}
	trending, err := fetchWithSessionRetry(c, func() ([]SongRecord, error) {
		return c.FetchSongs(ctx, SongTrending, c.trendingLimit)
	})
	if err != nil {
		return snap, err
	}
	breakout, err := fetchWithSessionRetry(c, func() ([]SongRecord, error) {
		return c.FetchSongs(ctx, SongBreakout, c.breakoutLimit)
	})
	if err != nil {
		return snap, err
	}

	c.log.Info("collection complete",
		zap.Int("hashtags_7d", len(hashtags7d)),
		zap.Int("hashtags_30d", len(hashtags30d)),
		zap.Int("trending_songs", len(trending)),
		zap.Int("breakout_songs", len(breakout)))

	return Snapshot{
		Hashtags7d:    hashtags7d,
		Hashtags30d:   hashtags30d,
		TrendingSongs: trending,
		BreakoutSongs: breakout,
		LastUpdated:   time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}

// fetchWithSessionRetry runs one fetch, refreshing the browser session and
// retrying once when the API rejects the current session.
func fetchWithSessionRetry[T any](c *Collector, fetch func() (T, error)) (T, error) {
	out, err := fetch()
	if !errors.Is(err, ErrInvalidResponse) {
		return out, err
	}
	c.log.Warn("session rejected, refreshing", zap.Error(err))
	if err := c.refreshSession(); err != nil {
		return out, err
	}
	return fetch()
}

// GetCookies returns the current session cookies for ads.tiktok.com.
func (c *Collector) GetCookies() []*http.Cookie {
	return c.client.Jar.Cookies(creativeCenterURL)
}

// SetCookies sets session cookies on the HTTP client.
func (c *Collector) SetCookies(cookies []*http.Cookie) {
	c.client.Jar.SetCookies(creativeCenterURL, cookies)
}

// SaveCookies writes session cookies to a JSON file.
func (c *Collector) SaveCookies(path string) error {
	data, err := json.Marshal(c.GetCookies())
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadCookies reads cookies from a JSON file and sets them on the client.
func (c *Collector) LoadCookies(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read cookies file: %w", err)
	}
	var cookies []*http.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("unmarshal cookies: %w", err)
	}
	c.SetCookies(cookies)
	c.sessionReady.Store(true)
	return nil
}

// HasSession reports whether the collector has session cookies.
func (c *Collector) HasSession() bool {
	return c.sessionReady.Load()
}

// Close releases all resources including the headless browser if running.
func (c *Collector) Close() error {
	return c.closeBrowser()
}
